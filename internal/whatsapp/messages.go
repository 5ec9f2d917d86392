package whatsapp

import (
	"fmt"
	"strings"
	"time"

	"payfam-backend/internal/models"
)

var monthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// MonthName returns the English month name for a 1-based month number
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthNames[month-1]
}

// formatAmount renders an amount with thousands separators (12,500)
func formatAmount(amount float64) string {
	s := fmt.Sprintf("%.0f", amount)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, ",")
	if neg {
		out = "-" + out
	}
	return out
}

// ReminderMessage builds the reminder text for a due based on its status.
// The wording per status mirrors what managers have been sending by hand.
func ReminderMessage(memberName string, due *models.MonthlyDue) string {
	period := fmt.Sprintf("%s %d", MonthName(due.Month), due.Year)

	switch due.Status {
	case models.StatusPaid:
		paidOn := ""
		if due.PaidOn != nil {
			paidOn = due.PaidOn.Format("2006-01-02")
		}
		return fmt.Sprintf(
			"Dear %s,\n\nYour payment for %s has been received.\n\nAmount Paid: Rs. %s\nPaid On: %s\n\nThank you!",
			memberName, period, formatAmount(due.AmountPaid), paidOn)
	case models.StatusPartial:
		return fmt.Sprintf(
			"Dear %s,\n\nPartial payment received for %s.\n\nAmount Due: Rs. %s\nAmount Paid: Rs. %s\nOutstanding: Rs. %s\nDue Date: %s\n\nPlease pay the remaining amount.",
			memberName, period,
			formatAmount(due.AmountDue), formatAmount(due.AmountPaid),
			formatAmount(due.Outstanding()), due.DueDate.Format("2006-01-02"))
	case models.StatusOverdue:
		return fmt.Sprintf(
			"Dear %s,\n\nOVERDUE PAYMENT REMINDER\n\nYour payment for %s is overdue.\n\nAmount Due: Rs. %s\nDue Date: %s\n\nPlease make payment at your earliest convenience.",
			memberName, period,
			formatAmount(due.AmountDue), due.DueDate.Format("2006-01-02"))
	default:
		return fmt.Sprintf(
			"Dear %s,\n\nPayment reminder for %s.\n\nAmount Due: Rs. %s\nDue Date: %s\n\nPlease make payment before the due date.",
			memberName, period,
			formatAmount(due.AmountDue), due.DueDate.Format("2006-01-02"))
	}
}

// ReceiptMessage builds the receipt text sent right after a payment is recorded
func ReceiptMessage(memberName string, txn *models.PaymentTransaction) string {
	reference := txn.Reference
	if reference == "" {
		reference = "N/A"
	}
	return fmt.Sprintf(
		"*PAYMENT RECEIPT*\n\nMember: %s\nReceipt #: %s\nAmount Paid: Rs. %s\nPayment Date: %s\nPayment Method: %s\nReference: %s\n\nThank you for your payment!",
		memberName,
		txn.ReceiptNumber,
		formatAmount(txn.Amount),
		txn.PaymentDate.Format("2006-01-02"),
		txn.Method,
		reference)
}

// FormatDate is a convenience for the handlers that surface message previews
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
