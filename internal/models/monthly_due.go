package models

import "time"

// DueStatus summarizes a monthly due's payment state relative to its due date.
type DueStatus string

const (
	StatusDue     DueStatus = "due"
	StatusPartial DueStatus = "partial"
	StatusPaid    DueStatus = "paid"
	StatusOverdue DueStatus = "overdue"
)

// MonthlyDue is one member's obligation for one calendar month. At most one
// row exists per (member_id, month, year); AmountPaid is always the sum of
// the payment transactions referencing the row.
type MonthlyDue struct {
	ID         int        `json:"id"`
	MemberID   int        `json:"member_id"`
	Month      int        `json:"month"`
	Year       int        `json:"year"`
	AmountDue  float64    `json:"amount_due"`
	AmountPaid float64    `json:"amount_paid"`
	Status     DueStatus  `json:"status"`
	DueDate    time.Time  `json:"due_date"`
	PaidOn     *time.Time `json:"paid_on,omitempty"`
	Notes      string     `json:"notes,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Outstanding returns amount_due - amount_paid. Negative means overpaid.
func (d *MonthlyDue) Outstanding() float64 {
	return d.AmountDue - d.AmountPaid
}

// DeriveStatus computes a due's status from its stored fields. It is the
// single source of truth: the persisted status column must always match
// re-deriving it through this function.
//
// Overpayment (amountPaid > amountDue) counts as paid; the excess is not
// refunded or carried forward.
func DeriveStatus(amountDue, amountPaid float64, dueDate, now time.Time) DueStatus {
	switch {
	case amountPaid > 0 && amountPaid >= amountDue:
		return StatusPaid
	case amountPaid > 0:
		if pastDue(dueDate, now) {
			return StatusOverdue
		}
		return StatusPartial
	default:
		if pastDue(dueDate, now) {
			return StatusOverdue
		}
		return StatusDue
	}
}

// pastDue compares at calendar-day granularity in the due date's zone.
// The due date is a date, not an instant: any time on the 5th is still on
// time, the 6th is late.
func pastDue(dueDate, now time.Time) bool {
	n := now.In(dueDate.Location())
	today := time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, dueDate.Location())
	return today.After(dueDate)
}
