package models

import (
	"testing"
	"time"
)

func TestDeriveStatus(t *testing.T) {
	dueDate := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)
	beforeDue := time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC)
	afterDue := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		amountDue  float64
		amountPaid float64
		now        time.Time
		want       DueStatus
	}{
		{
			name:       "nothing paid before due date",
			amountDue:  2000,
			amountPaid: 0,
			now:        beforeDue,
			want:       StatusDue,
		},
		{
			name:       "nothing paid after due date",
			amountDue:  2000,
			amountPaid: 0,
			now:        afterDue,
			want:       StatusOverdue,
		},
		{
			name:       "partial payment before due date",
			amountDue:  2000,
			amountPaid: 500,
			now:        beforeDue,
			want:       StatusPartial,
		},
		{
			name:       "partial payment after due date",
			amountDue:  2000,
			amountPaid: 500,
			now:        afterDue,
			want:       StatusOverdue,
		},
		{
			name:       "exact payment before due date",
			amountDue:  2000,
			amountPaid: 2000,
			now:        beforeDue,
			want:       StatusPaid,
		},
		{
			name:       "full payment after due date still reads paid",
			amountDue:  2000,
			amountPaid: 2000,
			now:        afterDue,
			want:       StatusPaid,
		},
		{
			name:       "overpayment reads paid, never a separate state",
			amountDue:  2000,
			amountPaid: 2500,
			now:        beforeDue,
			want:       StatusPaid,
		},
		{
			name:       "on the due date itself is not yet overdue",
			amountDue:  2000,
			amountPaid: 0,
			now:        dueDate,
			want:       StatusDue,
		},
		{
			name:       "noon on the due date is still on time",
			amountDue:  5000,
			amountPaid: 0,
			now:        time.Date(2025, 3, 5, 12, 0, 0, 0, time.UTC),
			want:       StatusDue,
		},
		{
			name:       "partial payment at noon on the due date stays partial",
			amountDue:  5000,
			amountPaid: 2000,
			now:        time.Date(2025, 3, 5, 12, 0, 0, 0, time.UTC),
			want:       StatusPartial,
		},
		{
			name:       "last minute of the due date is still on time",
			amountDue:  2000,
			amountPaid: 500,
			now:        time.Date(2025, 3, 5, 23, 59, 59, 0, time.UTC),
			want:       StatusPartial,
		},
		{
			name:       "first minute of the next day is overdue",
			amountDue:  2000,
			amountPaid: 500,
			now:        time.Date(2025, 3, 6, 0, 0, 1, 0, time.UTC),
			want:       StatusOverdue,
		},
		{
			name:       "zero fee with no payment before due date",
			amountDue:  0,
			amountPaid: 0,
			now:        beforeDue,
			want:       StatusDue,
		},
		{
			name:       "zero fee with any payment reads paid",
			amountDue:  0,
			amountPaid: 100,
			now:        afterDue,
			want:       StatusPaid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveStatus(tt.amountDue, tt.amountPaid, dueDate, tt.now)
			if got != tt.want {
				t.Errorf("DeriveStatus(%.0f, %.0f) = %v, want %v", tt.amountDue, tt.amountPaid, got, tt.want)
			}
		})
	}
}

func TestOutstanding(t *testing.T) {
	due := &MonthlyDue{AmountDue: 2000, AmountPaid: 500}
	if got := due.Outstanding(); got != 1500 {
		t.Errorf("Outstanding() = %v, want 1500", got)
	}

	// Overpayment leaves a negative outstanding, it is not clamped
	over := &MonthlyDue{AmountDue: 2000, AmountPaid: 2500}
	if got := over.Outstanding(); got != -500 {
		t.Errorf("Outstanding() = %v, want -500", got)
	}
}

func TestValidMethod(t *testing.T) {
	for _, m := range []string{MethodCash, MethodBankTransfer, MethodCheque, MethodOnline} {
		if !ValidMethod(m) {
			t.Errorf("ValidMethod(%q) = false, want true", m)
		}
	}
	if ValidMethod("bitcoin") {
		t.Error("ValidMethod(\"bitcoin\") = true, want false")
	}
	if ValidMethod("") {
		t.Error("ValidMethod(\"\") = true, want false")
	}
}
