package repositories

import (
	"context"

	"payfam-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PaymentTransactionRepository struct {
	DB *pgxpool.Pool
}

func NewPaymentTransactionRepository(db *pgxpool.Pool) *PaymentTransactionRepository {
	return &PaymentTransactionRepository{DB: db}
}

const txnColumns = `id, receipt_number, monthly_due_id, member_id, amount, payment_date,
       payment_method, COALESCE(reference, ''), COALESCE(notes, ''),
       COALESCE(recorded_by_user_id, 0), created_at`

func scanTxn(row interface{ Scan(...any) error }) (*models.PaymentTransaction, error) {
	var t models.PaymentTransaction
	err := row.Scan(&t.ID, &t.ReceiptNumber, &t.MonthlyDueID, &t.MemberID, &t.Amount,
		&t.PaymentDate, &t.Method, &t.Reference, &t.Notes, &t.RecordedBy, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *PaymentTransactionRepository) queryMany(ctx context.Context, query string, args ...any) ([]*models.PaymentTransaction, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txns []*models.PaymentTransaction
	for rows.Next() {
		t, err := scanTxn(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}

func (r *PaymentTransactionRepository) ListByDue(ctx context.Context, dueID int) ([]*models.PaymentTransaction, error) {
	return r.queryMany(ctx,
		`SELECT `+txnColumns+` FROM payment_transactions
         WHERE monthly_due_id=$1 ORDER BY payment_date DESC, id DESC`, dueID)
}

func (r *PaymentTransactionRepository) ListByMember(ctx context.Context, memberID int) ([]*models.PaymentTransaction, error) {
	return r.queryMany(ctx,
		`SELECT `+txnColumns+` FROM payment_transactions
         WHERE member_id=$1 ORDER BY payment_date DESC, id DESC`, memberID)
}

func (r *PaymentTransactionRepository) List(ctx context.Context, limit int) ([]*models.PaymentTransaction, error) {
	if limit <= 0 {
		limit = 100
	}
	return r.queryMany(ctx,
		`SELECT `+txnColumns+` FROM payment_transactions
         ORDER BY payment_date DESC, id DESC LIMIT $1`, limit)
}

func (r *PaymentTransactionRepository) GetByReceiptNumber(ctx context.Context, receiptNumber string) (*models.PaymentTransaction, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+txnColumns+` FROM payment_transactions WHERE receipt_number=$1`, receiptNumber)
	return scanTxn(row)
}

// SumByDue returns the ledger total funding one due. Used to verify the
// stored amount_paid against its source of truth.
func (r *PaymentTransactionRepository) SumByDue(ctx context.Context, dueID int) (float64, error) {
	var sum float64
	err := r.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM payment_transactions WHERE monthly_due_id=$1`, dueID,
	).Scan(&sum)
	return sum, err
}
