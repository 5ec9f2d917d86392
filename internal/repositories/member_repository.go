package repositories

import (
	"context"
	"fmt"

	"payfam-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type MemberRepository struct {
	DB *pgxpool.Pool
}

func NewMemberRepository(db *pgxpool.Pool) *MemberRepository {
	return &MemberRepository{DB: db}
}

const memberColumns = `id, name, phone, COALESCE(alternate_phone, ''), COALESCE(father_name, ''),
       COALESCE(email, ''), COALESCE(address, ''), membership_type, monthly_fee, active,
       joining_date, COALESCE(notes, ''), user_id, created_at, updated_at`

func scanMember(row interface{ Scan(...any) error }) (*models.Member, error) {
	var m models.Member
	err := row.Scan(&m.ID, &m.Name, &m.Phone, &m.AlternatePhone, &m.FatherName,
		&m.Email, &m.Address, &m.MembershipType, &m.MonthlyFee, &m.Active,
		&m.JoiningDate, &m.Notes, &m.UserID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MemberRepository) Create(ctx context.Context, m *models.Member) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO members(name, phone, alternate_phone, father_name, email, address,
                             membership_type, monthly_fee, active, joining_date, notes)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
         RETURNING id, created_at, updated_at`,
		m.Name, m.Phone, m.AlternatePhone, m.FatherName, m.Email, m.Address,
		m.MembershipType, m.MonthlyFee, m.Active, m.JoiningDate, m.Notes,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
}

func (r *MemberRepository) Get(ctx context.Context, id int) (*models.Member, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+memberColumns+` FROM members WHERE id=$1`, id)
	return scanMember(row)
}

func (r *MemberRepository) GetByPhone(ctx context.Context, phone string) (*models.Member, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+memberColumns+` FROM members WHERE phone=$1`, phone)
	return scanMember(row)
}

func (r *MemberRepository) List(ctx context.Context, activeOnly bool) ([]*models.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members`
	if activeOnly {
		query += ` WHERE active = TRUE`
	}
	query += ` ORDER BY name ASC`

	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []*models.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *MemberRepository) Update(ctx context.Context, m *models.Member) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE members SET name=$1, phone=$2, alternate_phone=$3, father_name=$4,
                email=$5, address=$6, membership_type=$7, monthly_fee=$8, active=$9,
                notes=$10, updated_at=CURRENT_TIMESTAMP
         WHERE id=$11`,
		m.Name, m.Phone, m.AlternatePhone, m.FatherName, m.Email, m.Address,
		m.MembershipType, m.MonthlyFee, m.Active, m.Notes, m.ID)
	return err
}

// SetActive soft-disables or re-enables a member
func (r *MemberRepository) SetActive(ctx context.Context, id int, active bool) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE members SET active=$1, updated_at=CURRENT_TIMESTAMP WHERE id=$2`, active, id)
	return err
}

// Delete removes a member together with all dependent rows. The four deletes
// run inside a single transaction: either everything referencing the member
// goes, or nothing does.
func (r *MemberRepository) Delete(ctx context.Context, id int) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM payment_transactions WHERE member_id=$1`, id); err != nil {
		return fmt.Errorf("failed to delete payment transactions: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM monthly_dues WHERE member_id=$1`, id); err != nil {
		return fmt.Errorf("failed to delete monthly dues: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM message_logs WHERE member_id=$1`, id); err != nil {
		return fmt.Errorf("failed to delete message logs: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM members WHERE id=$1`, id); err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}

	return tx.Commit(ctx)
}

// GetTotals returns lifetime aggregates across all of a member's dues.
// total_outstanding can be negative when the member has overpaid.
func (r *MemberRepository) GetTotals(ctx context.Context, id int) (*models.MemberTotals, error) {
	totals := &models.MemberTotals{MemberID: id}
	err := r.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount_paid), 0), COALESCE(SUM(amount_due - amount_paid), 0)
         FROM monthly_dues WHERE member_id=$1`, id,
	).Scan(&totals.TotalPaid, &totals.TotalOutstanding)
	if err != nil {
		return nil, err
	}
	return totals, nil
}
