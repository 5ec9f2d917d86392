package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log"

	"payfam-backend/internal/models"
	"payfam-backend/internal/storage"
	"payfam-backend/internal/timeutil"
	"payfam-backend/internal/whatsapp"

	"github.com/jung-kurt/gofpdf/v2"
)

// ReportRow is one member's line in the monthly report
type ReportRow struct {
	MemberName string           `json:"member_name"`
	AmountDue  float64          `json:"amount_due"`
	AmountPaid float64          `json:"amount_paid"`
	Status     models.DueStatus `json:"status"`
	PaidOn     string           `json:"paid_on"`
}

// ReportTotals carries the three bottom-line figures of a monthly report.
// TotalPaid counts receipts on fully settled dues; TotalUnpaid and
// TotalOverdue count what is still owed, so partial payments shrink them.
type ReportTotals struct {
	TotalPaid    float64 `json:"total_paid"`
	TotalUnpaid  float64 `json:"total_unpaid"`
	TotalOverdue float64 `json:"total_overdue"`
}

// MonthlyReport is the full export payload for one calendar month
type MonthlyReport struct {
	Month       int          `json:"month"`
	Year        int          `json:"year"`
	GeneratedAt string       `json:"generated_at"`
	Rows        []ReportRow  `json:"rows"`
	Totals      ReportTotals `json:"totals"`
}

// ReportService assembles monthly dues reports and renders them as CSV or PDF
type ReportService struct {
	DueService *DueService
	Archiver   *storage.ReportArchiver
}

func NewReportService(dueService *DueService, archiver *storage.ReportArchiver) *ReportService {
	return &ReportService{DueService: dueService, Archiver: archiver}
}

// ComputeTotals folds report rows into the three report figures
func ComputeTotals(rows []ReportRow) ReportTotals {
	var t ReportTotals
	for _, row := range rows {
		switch row.Status {
		case models.StatusPaid:
			t.TotalPaid += row.AmountPaid
		case models.StatusOverdue:
			t.TotalOverdue += row.AmountDue - row.AmountPaid
		default:
			t.TotalUnpaid += row.AmountDue - row.AmountPaid
		}
	}
	return t
}

// BuildMonthlyReport collects every due of the period into report rows.
// Only periods with materialized dues appear; a member with no due row for
// the month has simply never been billed for it.
func (s *ReportService) BuildMonthlyReport(ctx context.Context, month, year int) (*MonthlyReport, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month must be between 1 and 12", ErrValidation)
	}
	if year < 2000 || year > 2100 {
		return nil, fmt.Errorf("%w: year %d out of range", ErrValidation, year)
	}

	dues, err := s.DueService.ListPeriodDues(ctx, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to load dues for report: %w", err)
	}

	rows := make([]ReportRow, 0, len(dues))
	for _, d := range dues {
		paidOn := ""
		if d.PaidOn != nil {
			paidOn = d.PaidOn.Format("2006-01-02")
		}
		rows = append(rows, ReportRow{
			MemberName: d.MemberName,
			AmountDue:  d.AmountDue,
			AmountPaid: d.AmountPaid,
			Status:     d.Status,
			PaidOn:     paidOn,
		})
	}

	return &MonthlyReport{
		Month:       month,
		Year:        year,
		GeneratedAt: timeutil.Now().Format("2006-01-02 15:04"),
		Rows:        rows,
		Totals:      ComputeTotals(rows),
	}, nil
}

// GenerateCSV renders a monthly report as CSV
func (s *ReportService) GenerateCSV(report *MonthlyReport) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write([]string{"Member Name", "Amount Due", "Amount Paid", "Status", "Paid On"})
	for _, row := range report.Rows {
		w.Write([]string{
			row.MemberName,
			fmt.Sprintf("%.2f", row.AmountDue),
			fmt.Sprintf("%.2f", row.AmountPaid),
			string(row.Status),
			row.PaidOn,
		})
	}
	w.Write([]string{})
	w.Write([]string{"Total Paid", fmt.Sprintf("%.2f", report.Totals.TotalPaid)})
	w.Write([]string{"Total Unpaid", fmt.Sprintf("%.2f", report.Totals.TotalUnpaid)})
	w.Write([]string{"Total Overdue", fmt.Sprintf("%.2f", report.Totals.TotalOverdue)})

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to write CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// GeneratePDF renders a monthly report as a PDF document
func (s *ReportService) GeneratePDF(report *MonthlyReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	period := fmt.Sprintf("%s %d", whatsapp.MonthName(report.Month), report.Year)

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, fmt.Sprintf("Monthly Dues Report - %s", period), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", report.GeneratedAt), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Table header
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(60, 7, "Member", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Amount Due", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Amount Paid", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Status", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 7, "Paid On", "1", 1, "C", true, 0, "")

	// Table rows
	pdf.SetFont("Arial", "", 10)
	for _, row := range report.Rows {
		name := row.MemberName
		if len(name) > 30 {
			name = name[:27] + "..."
		}
		pdf.CellFormat(60, 6, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", row.AmountDue), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", row.AmountPaid), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, string(row.Status), "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 6, row.PaidOn, "1", 1, "C", false, 0, "")
	}
	pdf.Ln(5)

	// Totals box
	pdf.SetFont("Arial", "B", 12)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(190, 8, "Summary", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.SetFillColor(200, 255, 200)
	pdf.CellFormat(63, 8, fmt.Sprintf("Total Paid: Rs. %.2f", report.Totals.TotalPaid), "1", 0, "C", true, 0, "")
	pdf.SetFillColor(255, 245, 200)
	pdf.CellFormat(63, 8, fmt.Sprintf("Total Unpaid: Rs. %.2f", report.Totals.TotalUnpaid), "1", 0, "C", true, 0, "")
	pdf.SetFillColor(255, 200, 200)
	pdf.CellFormat(64, 8, fmt.Sprintf("Total Overdue: Rs. %.2f", report.Totals.TotalOverdue), "1", 1, "C", true, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportMonthlyReport builds and renders a report in the requested format.
// Returns the file contents, a suggested filename and the content type.
func (s *ReportService) ExportMonthlyReport(ctx context.Context, month, year int, format string) ([]byte, string, string, error) {
	report, err := s.BuildMonthlyReport(ctx, month, year)
	if err != nil {
		return nil, "", "", err
	}

	var (
		data        []byte
		filename    string
		contentType string
	)
	switch format {
	case "pdf":
		data, err = s.GeneratePDF(report)
		filename = fmt.Sprintf("dues-report-%d-%02d.pdf", year, month)
		contentType = "application/pdf"
	case "csv", "":
		data, err = s.GenerateCSV(report)
		filename = fmt.Sprintf("dues-report-%d-%02d.csv", year, month)
		contentType = "text/csv"
	default:
		return nil, "", "", fmt.Errorf("%w: unknown report format %q", ErrValidation, format)
	}
	if err != nil {
		return nil, "", "", err
	}

	if s.Archiver != nil {
		if err := s.Archiver.Upload(ctx, filename, contentType, data); err != nil {
			log.Printf("[Archive] failed to archive %s: %v", filename, err)
		}
	}

	return data, filename, contentType, nil
}
