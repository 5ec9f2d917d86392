package services

import (
	"strings"
	"testing"

	"payfam-backend/internal/models"
)

func TestComputeTotals(t *testing.T) {
	rows := []ReportRow{
		{MemberName: "A", AmountDue: 2000, AmountPaid: 2000, Status: models.StatusPaid},
		{MemberName: "B", AmountDue: 2000, AmountPaid: 2500, Status: models.StatusPaid},
		{MemberName: "C", AmountDue: 1500, AmountPaid: 500, Status: models.StatusPartial},
		{MemberName: "D", AmountDue: 1000, AmountPaid: 0, Status: models.StatusDue},
		{MemberName: "E", AmountDue: 3000, AmountPaid: 500, Status: models.StatusOverdue},
	}

	totals := ComputeTotals(rows)

	// Paid rows contribute what was actually received, overpayment included
	if totals.TotalPaid != 4500 {
		t.Errorf("TotalPaid = %v, want 4500", totals.TotalPaid)
	}
	// Due and partial rows count what is still owed: the partial row's 500
	// already received must not show up as unpaid
	if totals.TotalUnpaid != 2000 {
		t.Errorf("TotalUnpaid = %v, want 2000", totals.TotalUnpaid)
	}
	// Overdue rows likewise count the outstanding remainder
	if totals.TotalOverdue != 2500 {
		t.Errorf("TotalOverdue = %v, want 2500", totals.TotalOverdue)
	}
}

func TestComputeTotalsEmpty(t *testing.T) {
	totals := ComputeTotals(nil)
	if totals.TotalPaid != 0 || totals.TotalUnpaid != 0 || totals.TotalOverdue != 0 {
		t.Errorf("ComputeTotals(nil) = %+v, want all zeros", totals)
	}
}

func TestGenerateCSV(t *testing.T) {
	report := &MonthlyReport{
		Month: 3,
		Year:  2025,
		Rows: []ReportRow{
			{MemberName: "Ahmed Khan", AmountDue: 2000, AmountPaid: 2000, Status: models.StatusPaid, PaidOn: "2025-03-03"},
			{MemberName: "Sara Ali", AmountDue: 1500, AmountPaid: 0, Status: models.StatusOverdue},
		},
	}
	report.Totals = ComputeTotals(report.Rows)

	svc := &ReportService{}
	data, err := svc.GenerateCSV(report)
	if err != nil {
		t.Fatalf("GenerateCSV() error = %v", err)
	}

	out := string(data)
	for _, want := range []string{
		"Member Name,Amount Due,Amount Paid,Status,Paid On",
		"Ahmed Khan,2000.00,2000.00,paid,2025-03-03",
		"Sara Ali,1500.00,0.00,overdue,",
		"Total Paid,2000.00",
		"Total Unpaid,0.00",
		"Total Overdue,1500.00",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("GenerateCSV() missing %q:\n%s", want, out)
		}
	}
}

func TestGeneratePDF(t *testing.T) {
	report := &MonthlyReport{
		Month:       3,
		Year:        2025,
		GeneratedAt: "2025-03-10 14:00",
		Rows: []ReportRow{
			{MemberName: "Ahmed Khan", AmountDue: 2000, AmountPaid: 2000, Status: models.StatusPaid, PaidOn: "2025-03-03"},
		},
	}
	report.Totals = ComputeTotals(report.Rows)

	svc := &ReportService{}
	data, err := svc.GeneratePDF(report)
	if err != nil {
		t.Fatalf("GeneratePDF() error = %v", err)
	}
	if len(data) == 0 || !strings.HasPrefix(string(data), "%PDF") {
		t.Errorf("GeneratePDF() did not produce a PDF document")
	}
}
