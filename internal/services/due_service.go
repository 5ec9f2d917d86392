package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"payfam-backend/internal/cache"
	"payfam-backend/internal/metrics"
	"payfam-backend/internal/models"
	"payfam-backend/internal/repositories"
	"payfam-backend/internal/timeutil"

	"github.com/jackc/pgx/v5"
)

// DueService is the ledger engine: it resolves due periods, appends payment
// transactions, and keeps each due's derived status consistent with its
// ledger. All mutation goes through RecordPayment; nothing edits amount_paid
// directly.
type DueService struct {
	DueRepo    *repositories.MonthlyDueRepository
	TxnRepo    *repositories.PaymentTransactionRepository
	MemberRepo *repositories.MemberRepository
}

func NewDueService(
	dueRepo *repositories.MonthlyDueRepository,
	txnRepo *repositories.PaymentTransactionRepository,
	memberRepo *repositories.MemberRepository,
) *DueService {
	return &DueService{
		DueRepo:    dueRepo,
		TxnRepo:    txnRepo,
		MemberRepo: memberRepo,
	}
}

// ValidatePaymentRequest rejects malformed input before any write
func ValidatePaymentRequest(req *models.RecordPaymentRequest) error {
	if req.MemberID <= 0 {
		return fmt.Errorf("%w: member_id is required", ErrValidation)
	}
	if req.Amount <= 0 {
		return fmt.Errorf("%w: amount must be greater than zero", ErrValidation)
	}
	if req.Method != "" && !models.ValidMethod(req.Method) {
		return fmt.Errorf("%w: unknown payment method %q", ErrValidation, req.Method)
	}
	if req.PaymentDate != "" {
		if _, err := timeutil.ParseInPKT(timeutil.DateLayout, req.PaymentDate); err != nil {
			return fmt.Errorf("%w: payment_date must be YYYY-MM-DD", ErrValidation)
		}
	}
	return nil
}

// ResolveDuePeriod locates or materializes the monthly due a payment dated
// paymentDate belongs to. Materialization snapshots the member's current
// monthly fee as amount_due and sets the due date to the 5th of the month.
func (s *DueService) ResolveDuePeriod(ctx context.Context, memberID int, paymentDate time.Time) (*models.MonthlyDue, error) {
	member, err := s.MemberRepo.Get(ctx, memberID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to load member: %w", err)
	}
	if !member.Active {
		return nil, ErrMemberInactive
	}

	month, year := timeutil.PeriodOf(paymentDate)
	due, created, err := s.DueRepo.FindOrCreate(ctx, memberID, month, year,
		member.MonthlyFee, timeutil.DueDateFor(month, year))
	if err != nil {
		return nil, err
	}
	if created {
		metrics.DuesMaterialized.Inc()
	}
	return due, nil
}

// RecordPayment appends a transaction to the ledger and atomically updates
// the owning due's amount_paid, status, and paid_on.
func (s *DueService) RecordPayment(ctx context.Context, req *models.RecordPaymentRequest, recordedBy int) (*models.PaymentTransaction, *models.MonthlyDue, error) {
	if err := ValidatePaymentRequest(req); err != nil {
		return nil, nil, err
	}

	now := timeutil.Now()
	paymentDate := now
	if req.PaymentDate != "" {
		paymentDate, _ = timeutil.ParseInPKT(timeutil.DateLayout, req.PaymentDate)
	}
	method := req.Method
	if method == "" {
		method = models.MethodCash
	}

	due, err := s.ResolveDuePeriod(ctx, req.MemberID, paymentDate)
	if err != nil {
		return nil, nil, err
	}

	txn := &models.PaymentTransaction{
		MonthlyDueID: due.ID,
		MemberID:     req.MemberID,
		Amount:       req.Amount,
		PaymentDate:  paymentDate,
		Method:       method,
		Reference:    req.Reference,
		Notes:        req.Notes,
		RecordedBy:   recordedBy,
	}

	updated, err := s.DueRepo.ApplyPayment(ctx, txn, now)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to record payment: %w", err)
	}

	metrics.PaymentsRecorded.Inc()
	s.invalidateStats(ctx, updated.Month, updated.Year)

	return txn, updated, nil
}

// GetDue fetches one due, re-deriving status when the stored value has gone
// stale (a due/partial row whose due date has passed reads as overdue even
// if the persisted column was not refreshed yet).
func (s *DueService) GetDue(ctx context.Context, id int) (*models.MonthlyDue, error) {
	due, err := s.DueRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDueNotFound
		}
		return nil, err
	}
	due.Status = models.DeriveStatus(due.AmountDue, due.AmountPaid, due.DueDate, timeutil.Now())
	return due, nil
}

// ListMemberDues returns one member's dues for a year, defaulting to the
// current year when none is given. Stale statuses are refreshed in storage
// first so readers and the persisted rows agree.
func (s *DueService) ListMemberDues(ctx context.Context, memberID, year int) ([]*models.MonthlyDue, error) {
	if _, err := s.DueRepo.RefreshOverdue(ctx, timeutil.Now()); err != nil {
		return nil, fmt.Errorf("failed to refresh overdue statuses: %w", err)
	}
	return s.DueRepo.ListByMember(ctx, memberID, resolveDuesYear(year, timeutil.Now()))
}

// resolveDuesYear substitutes the current year for an absent filter. A zero
// year comes from an omitted ?year= parameter and must not be queried as-is.
func resolveDuesYear(year int, now time.Time) int {
	if year == 0 {
		return now.Year()
	}
	return year
}

// ListPeriodDues returns all dues of one calendar month joined with member
// names, the report export shape.
func (s *DueService) ListPeriodDues(ctx context.Context, month, year int) ([]*repositories.DueWithMember, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month must be 1-12", ErrValidation)
	}
	if _, err := s.DueRepo.RefreshOverdue(ctx, timeutil.Now()); err != nil {
		return nil, fmt.Errorf("failed to refresh overdue statuses: %w", err)
	}
	return s.DueRepo.ListByPeriod(ctx, month, year)
}

// ListDueTransactions returns the ledger entries funding one due
func (s *DueService) ListDueTransactions(ctx context.Context, dueID int) ([]*models.PaymentTransaction, error) {
	return s.TxnRepo.ListByDue(ctx, dueID)
}

// ListMemberTransactions returns a member's full payment history
func (s *DueService) ListMemberTransactions(ctx context.Context, memberID int) ([]*models.PaymentTransaction, error) {
	return s.TxnRepo.ListByMember(ctx, memberID)
}

// DashboardStats is the landing-page aggregate: organization-wide numbers
// for the current period.
type DashboardStats struct {
	TotalMembers     int     `json:"total_members"`
	TotalCollected   float64 `json:"total_collected"`
	TotalOutstanding float64 `json:"total_outstanding"`
	OverdueCount     int     `json:"overdue_count"`
	Month            int     `json:"month"`
	Year             int     `json:"year"`
}

// GetDashboardStats computes current-period org totals, cached briefly in
// Redis and invalidated whenever a payment lands in that period.
func (s *DueService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	month, year := timeutil.PeriodOf(timeutil.Now())
	key := fmt.Sprintf(cache.DashboardStatsKeyFmt, month, year)

	var stats DashboardStats
	if cache.GetJSON(ctx, key, &stats) {
		return &stats, nil
	}

	if _, err := s.DueRepo.RefreshOverdue(ctx, timeutil.Now()); err != nil {
		return nil, err
	}

	summary, err := s.DueRepo.GetPeriodSummary(ctx, month, year)
	if err != nil {
		return nil, err
	}

	members, err := s.MemberRepo.List(ctx, true)
	if err != nil {
		return nil, err
	}

	stats = DashboardStats{
		TotalMembers:     len(members),
		TotalCollected:   summary.TotalCollected,
		TotalOutstanding: summary.TotalOutstanding,
		OverdueCount:     summary.OverdueCount,
		Month:            month,
		Year:             year,
	}

	cache.SetJSON(ctx, key, &stats, 30*time.Second)
	return &stats, nil
}

// GetPeriodSummary returns org-wide totals for an arbitrary period
func (s *DueService) GetPeriodSummary(ctx context.Context, month, year int) (*repositories.PeriodSummary, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month must be 1-12", ErrValidation)
	}
	if _, err := s.DueRepo.RefreshOverdue(ctx, timeutil.Now()); err != nil {
		return nil, err
	}
	return s.DueRepo.GetPeriodSummary(ctx, month, year)
}

func (s *DueService) invalidateStats(ctx context.Context, month, year int) {
	cache.Invalidate(ctx, fmt.Sprintf(cache.DashboardStatsKeyFmt, month, year))
}
