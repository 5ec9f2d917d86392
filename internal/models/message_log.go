package models

import "time"

// Message types logged against members
const (
	MessageTypeReminder = "reminder"
	MessageTypeReceipt  = "receipt"
)

// Message delivery statuses
const (
	MessageStatusPending = "pending"
	MessageStatusSent    = "sent"
	MessageStatusFailed  = "failed"
)

type MessageLog struct {
	ID             int        `json:"id"`
	MemberID       int        `json:"member_id"`
	Phone          string     `json:"phone"`
	MessageType    string     `json:"message_type"`
	MessageContent string     `json:"message_content"`
	Status         string     `json:"status"`
	AttemptCount   int        `json:"attempt_count"`
	ProviderError  string     `json:"provider_error,omitempty"`
	SentAt         *time.Time `json:"sent_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}
