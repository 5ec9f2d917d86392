package whatsapp

import (
	"strings"
	"testing"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		want  string
	}{
		{
			name:  "local number gets country code",
			phone: "03001234567",
			want:  "923001234567",
		},
		{
			name:  "international form keeps country code",
			phone: "+923001234567",
			want:  "923001234567",
		},
		{
			name:  "formatting characters are stripped",
			phone: "0300-123 4567",
			want:  "923001234567",
		},
		{
			name:  "already normalized",
			phone: "923001234567",
			want:  "923001234567",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePhone(tt.phone); got != tt.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tt.phone, got, tt.want)
			}
		})
	}
}

func TestDeepLink(t *testing.T) {
	link := DeepLink("03001234567", "Dear Ali,\n\nPayment reminder")

	if !strings.HasPrefix(link, "https://wa.me/923001234567?text=") {
		t.Errorf("DeepLink() = %q, want wa.me URL with normalized phone", link)
	}

	// wa.me requires %20 for spaces; '+' renders literally in the chat box
	if strings.Contains(link, "+") {
		t.Errorf("DeepLink() = %q, contains '+', spaces must be %%20", link)
	}
	if !strings.Contains(link, "Dear%20Ali") {
		t.Errorf("DeepLink() = %q, want %%20-encoded spaces", link)
	}
	if !strings.Contains(link, "%0A") {
		t.Errorf("DeepLink() = %q, want encoded newlines", link)
	}
}
