package repositories

import (
	"context"
	"fmt"
	"time"

	"payfam-backend/internal/models"
	"payfam-backend/internal/timeutil"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MonthlyDueRepository struct {
	DB *pgxpool.Pool
}

func NewMonthlyDueRepository(db *pgxpool.Pool) *MonthlyDueRepository {
	return &MonthlyDueRepository{DB: db}
}

const dueColumns = `id, member_id, month, year, amount_due, amount_paid, status,
       due_date, paid_on, COALESCE(notes, ''), created_at, updated_at`

func scanDue(row interface{ Scan(...any) error }) (*models.MonthlyDue, error) {
	var d models.MonthlyDue
	err := row.Scan(&d.ID, &d.MemberID, &d.Month, &d.Year, &d.AmountDue, &d.AmountPaid,
		&d.Status, &d.DueDate, &d.PaidOn, &d.Notes, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// FindOrCreate locates the due for (memberID, month, year), materializing it
// when absent. The insert uses ON CONFLICT DO NOTHING against the unique
// (member_id, month, year) constraint, so two concurrent calls for a
// not-yet-existing period cannot create two rows: the loser of the race gets
// no row back from the insert and falls through to fetching the winner's.
func (r *MonthlyDueRepository) FindOrCreate(ctx context.Context, memberID, month, year int, amountDue float64, dueDate time.Time) (*models.MonthlyDue, bool, error) {
	row := r.DB.QueryRow(ctx,
		`INSERT INTO monthly_dues(member_id, month, year, amount_due, amount_paid, status, due_date)
         VALUES($1, $2, $3, $4, 0, 'due', $5)
         ON CONFLICT (member_id, month, year) DO NOTHING
         RETURNING `+dueColumns,
		memberID, month, year, amountDue, dueDate)

	due, err := scanDue(row)
	if err == nil {
		return due, true, nil
	}
	if err != pgx.ErrNoRows {
		return nil, false, fmt.Errorf("failed to create monthly due: %w", err)
	}

	// Lost the race (or the row already existed): reuse the existing due.
	due, err = r.GetByPeriod(ctx, memberID, month, year)
	if err != nil {
		return nil, false, fmt.Errorf("failed to fetch existing monthly due: %w", err)
	}
	return due, false, nil
}

func (r *MonthlyDueRepository) Get(ctx context.Context, id int) (*models.MonthlyDue, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+dueColumns+` FROM monthly_dues WHERE id=$1`, id)
	return scanDue(row)
}

func (r *MonthlyDueRepository) GetByPeriod(ctx context.Context, memberID, month, year int) (*models.MonthlyDue, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+dueColumns+` FROM monthly_dues WHERE member_id=$1 AND month=$2 AND year=$3`,
		memberID, month, year)
	return scanDue(row)
}

func (r *MonthlyDueRepository) ListByMember(ctx context.Context, memberID, year int) ([]*models.MonthlyDue, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+dueColumns+` FROM monthly_dues
         WHERE member_id=$1 AND year=$2
         ORDER BY month ASC`, memberID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dues []*models.MonthlyDue
	for rows.Next() {
		d, err := scanDue(rows)
		if err != nil {
			return nil, err
		}
		dues = append(dues, d)
	}
	return dues, rows.Err()
}

// DueWithMember is a due row joined with its member's name and phone, the
// shape the report export consumes.
type DueWithMember struct {
	models.MonthlyDue
	MemberName  string `json:"member_name"`
	MemberPhone string `json:"member_phone"`
}

func (r *MonthlyDueRepository) ListByPeriod(ctx context.Context, month, year int) ([]*DueWithMember, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT d.id, d.member_id, d.month, d.year, d.amount_due, d.amount_paid, d.status,
                d.due_date, d.paid_on, COALESCE(d.notes, ''), d.created_at, d.updated_at,
                m.name, m.phone
         FROM monthly_dues d
         JOIN members m ON d.member_id = m.id
         WHERE d.month=$1 AND d.year=$2
         ORDER BY m.name ASC`, month, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dues []*DueWithMember
	for rows.Next() {
		var d DueWithMember
		err := rows.Scan(&d.ID, &d.MemberID, &d.Month, &d.Year, &d.AmountDue, &d.AmountPaid,
			&d.Status, &d.DueDate, &d.PaidOn, &d.Notes, &d.CreatedAt, &d.UpdatedAt,
			&d.MemberName, &d.MemberPhone)
		if err != nil {
			return nil, err
		}
		dues = append(dues, &d)
	}
	return dues, rows.Err()
}

// ApplyPayment appends a ledger transaction and recomputes the owning due's
// amount_paid and status in one database transaction. No reader can observe
// the transaction recorded with a stale status.
//
// amount_paid is always re-derived by summing the ledger, never incremented,
// so the row self-heals even if a previous recompute was lost.
func (r *MonthlyDueRepository) ApplyPayment(ctx context.Context, txn *models.PaymentTransaction, now time.Time) (*models.MonthlyDue, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Receipt numbers come from a sequence for O(1) generation
	var nextNum int
	if err := tx.QueryRow(ctx, "SELECT nextval('receipt_number_sequence')").Scan(&nextNum); err != nil {
		return nil, fmt.Errorf("failed to get next receipt number: %w", err)
	}
	txn.ReceiptNumber = fmt.Sprintf("RCP-%06d", nextNum)

	err = tx.QueryRow(ctx,
		`INSERT INTO payment_transactions(receipt_number, monthly_due_id, member_id, amount,
                                          payment_date, payment_method, reference, notes, recorded_by_user_id)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9)
         RETURNING id, created_at`,
		txn.ReceiptNumber, txn.MonthlyDueID, txn.MemberID, txn.Amount,
		txn.PaymentDate, txn.Method, txn.Reference, txn.Notes, txn.RecordedBy,
	).Scan(&txn.ID, &txn.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert payment transaction: %w", err)
	}

	var amountDue, amountPaid float64
	var dueDate time.Time
	err = tx.QueryRow(ctx,
		`SELECT d.amount_due, d.due_date,
                COALESCE((SELECT SUM(amount) FROM payment_transactions WHERE monthly_due_id = d.id), 0)
         FROM monthly_dues d WHERE d.id=$1
         FOR UPDATE`, txn.MonthlyDueID,
	).Scan(&amountDue, &dueDate, &amountPaid)
	if err != nil {
		return nil, fmt.Errorf("failed to sum ledger: %w", err)
	}

	status := models.DeriveStatus(amountDue, amountPaid, dueDate, now)

	// paid_on records the date of the transaction that completed payment
	if status == models.StatusPaid {
		_, err = tx.Exec(ctx,
			`UPDATE monthly_dues SET amount_paid=$1, status=$2, paid_on=$3, updated_at=CURRENT_TIMESTAMP
             WHERE id=$4`,
			amountPaid, status, txn.PaymentDate, txn.MonthlyDueID)
	} else {
		_, err = tx.Exec(ctx,
			`UPDATE monthly_dues SET amount_paid=$1, status=$2, updated_at=CURRENT_TIMESTAMP
             WHERE id=$3`,
			amountPaid, status, txn.MonthlyDueID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update monthly due: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return r.Get(ctx, txn.MonthlyDueID)
}

// RefreshOverdue flips stale due/partial rows whose due date has passed to
// overdue. Called lazily on reads so a stored status never drifts from what
// DeriveStatus would produce today. Comparison is by calendar date: a row
// is late only from the day after its due date.
func (r *MonthlyDueRepository) RefreshOverdue(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.DB.Exec(ctx,
		`UPDATE monthly_dues SET status='overdue', updated_at=CURRENT_TIMESTAMP
         WHERE status IN ('due', 'partial') AND due_date < $1::date`,
		now.Format(timeutil.DateLayout))
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// PeriodSummary holds organization-wide totals for one calendar month
type PeriodSummary struct {
	Month            int     `json:"month"`
	Year             int     `json:"year"`
	TotalCollected   float64 `json:"total_collected"`
	TotalOutstanding float64 `json:"total_outstanding"`
	OverdueCount     int     `json:"overdue_count"`
}

// GetPeriodSummary computes read-only org-wide totals for a period
func (r *MonthlyDueRepository) GetPeriodSummary(ctx context.Context, month, year int) (*PeriodSummary, error) {
	summary := &PeriodSummary{Month: month, Year: year}
	err := r.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount_paid), 0),
                COALESCE(SUM(amount_due - amount_paid) FILTER (WHERE status IN ('due', 'partial', 'overdue')), 0),
                COUNT(*) FILTER (WHERE status = 'overdue')
         FROM monthly_dues WHERE month=$1 AND year=$2`, month, year,
	).Scan(&summary.TotalCollected, &summary.TotalOutstanding, &summary.OverdueCount)
	if err != nil {
		return nil, err
	}
	return summary, nil
}
