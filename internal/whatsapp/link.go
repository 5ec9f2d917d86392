package whatsapp

import (
	"net/url"
	"strings"
)

// NormalizePhone strips everything except digits from a phone number and
// prefixes the Pakistan country code when a local number is given
// (03XXXXXXXXX -> 923XXXXXXXXX).
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if strings.HasPrefix(digits, "0") && len(digits) == 11 {
		digits = "92" + digits[1:]
	}
	return digits
}

// DeepLink builds a wa.me URL that opens a chat with the given phone number
// and the message pre-filled. This is the messaging boundary: the caller
// supplies content and phone, never transport details.
func DeepLink(phone, message string) string {
	// wa.me expects %20 for spaces, not '+'
	encoded := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return "https://wa.me/" + NormalizePhone(phone) + "?text=" + encoded
}
