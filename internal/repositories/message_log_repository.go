package repositories

import (
	"context"
	"time"

	"payfam-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type MessageLogRepository struct {
	DB *pgxpool.Pool
}

func NewMessageLogRepository(db *pgxpool.Pool) *MessageLogRepository {
	return &MessageLogRepository{DB: db}
}

func (r *MessageLogRepository) Create(ctx context.Context, m *models.MessageLog) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO message_logs(member_id, phone, message_type, message_content, status, attempt_count)
         VALUES($1, $2, $3, $4, $5, $6)
         RETURNING id, created_at`,
		m.MemberID, m.Phone, m.MessageType, m.MessageContent, m.Status, m.AttemptCount,
	).Scan(&m.ID, &m.CreatedAt)
}

// MarkSent records a successful delivery
func (r *MessageLogRepository) MarkSent(ctx context.Context, id int, sentAt time.Time) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE message_logs SET status=$1, sent_at=$2, attempt_count=attempt_count+1 WHERE id=$3`,
		models.MessageStatusSent, sentAt, id)
	return err
}

// MarkFailed records a failed delivery attempt with the provider's error
func (r *MessageLogRepository) MarkFailed(ctx context.Context, id int, providerErr string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE message_logs SET status=$1, provider_error=$2, attempt_count=attempt_count+1 WHERE id=$3`,
		models.MessageStatusFailed, providerErr, id)
	return err
}

func (r *MessageLogRepository) ListByMember(ctx context.Context, memberID int) ([]*models.MessageLog, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, member_id, phone, message_type, message_content, status, attempt_count,
                COALESCE(provider_error, ''), sent_at, created_at
         FROM message_logs WHERE member_id=$1 ORDER BY created_at DESC`, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*models.MessageLog
	for rows.Next() {
		var m models.MessageLog
		err := rows.Scan(&m.ID, &m.MemberID, &m.Phone, &m.MessageType, &m.MessageContent,
			&m.Status, &m.AttemptCount, &m.ProviderError, &m.SentAt, &m.CreatedAt)
		if err != nil {
			return nil, err
		}
		logs = append(logs, &m)
	}
	return logs, rows.Err()
}
