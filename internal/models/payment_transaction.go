package models

import "time"

// Payment methods accepted for ledger transactions
const (
	MethodCash         = "cash"
	MethodBankTransfer = "bank_transfer"
	MethodCheque       = "cheque"
	MethodOnline       = "online"
)

// PaymentTransaction is one immutable recorded payment event funding a
// monthly due. Rows are append-only; amount_paid on the owning due is
// derived by summing them.
type PaymentTransaction struct {
	ID            int       `json:"id"`
	ReceiptNumber string    `json:"receipt_number"`
	MonthlyDueID  int       `json:"monthly_due_id"`
	MemberID      int       `json:"member_id"`
	Amount        float64   `json:"amount"`
	PaymentDate   time.Time `json:"payment_date"`
	Method        string    `json:"payment_method"`
	Reference     string    `json:"reference,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	RecordedBy    int       `json:"recorded_by_user_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// RecordPaymentRequest represents the request body for appending a payment
type RecordPaymentRequest struct {
	MemberID    int     `json:"member_id"`
	Amount      float64 `json:"amount"`
	PaymentDate string  `json:"payment_date"`
	Method      string  `json:"payment_method"`
	Reference   string  `json:"reference"`
	Notes       string  `json:"notes"`
}

// ValidMethod reports whether m is an accepted payment method
func ValidMethod(m string) bool {
	switch m {
	case MethodCash, MethodBankTransfer, MethodCheque, MethodOnline:
		return true
	}
	return false
}
