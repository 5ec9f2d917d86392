package whatsapp

import (
	"strings"
	"testing"
	"time"

	"payfam-backend/internal/models"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{500, "500"},
		{2000, "2,000"},
		{12500, "12,500"},
		{1250000, "1,250,000"},
		{-1500, "-1,500"},
		{0, "0"},
	}

	for _, tt := range tests {
		if got := formatAmount(tt.amount); got != tt.want {
			t.Errorf("formatAmount(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestMonthName(t *testing.T) {
	if got := MonthName(1); got != "January" {
		t.Errorf("MonthName(1) = %q, want January", got)
	}
	if got := MonthName(12); got != "December" {
		t.Errorf("MonthName(12) = %q, want December", got)
	}
	if got := MonthName(0); got != "" {
		t.Errorf("MonthName(0) = %q, want empty", got)
	}
	if got := MonthName(13); got != "" {
		t.Errorf("MonthName(13) = %q, want empty", got)
	}
}

func TestReminderMessage(t *testing.T) {
	dueDate := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)

	due := &models.MonthlyDue{
		Month:      3,
		Year:       2025,
		AmountDue:  2000,
		AmountPaid: 0,
		Status:     models.StatusDue,
		DueDate:    dueDate,
	}

	msg := ReminderMessage("Ahmed Khan", due)
	for _, want := range []string{"Ahmed Khan", "March 2025", "Rs. 2,000", "2025-03-05"} {
		if !strings.Contains(msg, want) {
			t.Errorf("ReminderMessage() missing %q:\n%s", want, msg)
		}
	}

	due.AmountPaid = 500
	due.Status = models.StatusPartial
	msg = ReminderMessage("Ahmed Khan", due)
	for _, want := range []string{"Partial payment", "Rs. 500", "Outstanding: Rs. 1,500"} {
		if !strings.Contains(msg, want) {
			t.Errorf("partial ReminderMessage() missing %q:\n%s", want, msg)
		}
	}

	due.Status = models.StatusOverdue
	msg = ReminderMessage("Ahmed Khan", due)
	if !strings.Contains(msg, "OVERDUE") {
		t.Errorf("overdue ReminderMessage() missing OVERDUE marker:\n%s", msg)
	}
}

func TestReceiptMessage(t *testing.T) {
	txn := &models.PaymentTransaction{
		ReceiptNumber: "RCP-000042",
		Amount:        2000,
		PaymentDate:   time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		Method:        models.MethodCash,
	}

	msg := ReceiptMessage("Ahmed Khan", txn)
	for _, want := range []string{"PAYMENT RECEIPT", "Ahmed Khan", "RCP-000042", "Rs. 2,000", "2025-03-03", "cash", "Reference: N/A"} {
		if !strings.Contains(msg, want) {
			t.Errorf("ReceiptMessage() missing %q:\n%s", want, msg)
		}
	}

	txn.Reference = "TRX-9981"
	msg = ReceiptMessage("Ahmed Khan", txn)
	if !strings.Contains(msg, "Reference: TRX-9981") {
		t.Errorf("ReceiptMessage() missing reference:\n%s", msg)
	}
}
