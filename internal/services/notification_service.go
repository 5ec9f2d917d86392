package services

import (
	"context"
	"fmt"
	"log"

	"payfam-backend/internal/models"
	"payfam-backend/internal/repositories"
	"payfam-backend/internal/timeutil"
	"payfam-backend/internal/whatsapp"
)

// NotificationService builds WhatsApp messages for dues and receipts, logs
// every outgoing message and, when a provider is configured, delivers it.
// Without a provider the caller gets back a wa.me deep link to open by hand.
type NotificationService struct {
	LogRepo    *repositories.MessageLogRepository
	MemberRepo *repositories.MemberRepository
	DueService *DueService
	Provider   whatsapp.Provider
}

func NewNotificationService(
	logRepo *repositories.MessageLogRepository,
	memberRepo *repositories.MemberRepository,
	dueService *DueService,
	provider whatsapp.Provider,
) *NotificationService {
	return &NotificationService{
		LogRepo:    logRepo,
		MemberRepo: memberRepo,
		DueService: dueService,
		Provider:   provider,
	}
}

// NotificationResult is what handlers surface after preparing a message
type NotificationResult struct {
	Log      *models.MessageLog `json:"log"`
	DeepLink string             `json:"deep_link"`
	Sent     bool               `json:"sent"`
}

// SendReminder prepares a payment reminder for a member's due period
func (s *NotificationService) SendReminder(ctx context.Context, memberID, month, year int) (*NotificationResult, error) {
	member, err := s.MemberRepo.Get(ctx, memberID)
	if err != nil {
		return nil, ErrMemberNotFound
	}
	if member.Phone == "" {
		return nil, fmt.Errorf("%w: member has no phone number on file", ErrValidation)
	}

	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month must be between 1 and 12", ErrValidation)
	}
	due, err := s.DueService.ResolveDuePeriod(ctx, memberID, timeutil.DueDateFor(month, year))
	if err != nil {
		return nil, err
	}

	message := whatsapp.ReminderMessage(member.Name, due)
	return s.dispatch(ctx, member, models.MessageTypeReminder, message)
}

// SendReceipt prepares a receipt message for a recorded payment
func (s *NotificationService) SendReceipt(ctx context.Context, memberID int, txn *models.PaymentTransaction) (*NotificationResult, error) {
	member, err := s.MemberRepo.Get(ctx, memberID)
	if err != nil {
		return nil, ErrMemberNotFound
	}
	if member.Phone == "" {
		return nil, fmt.Errorf("%w: member has no phone number on file", ErrValidation)
	}

	message := whatsapp.ReceiptMessage(member.Name, txn)
	return s.dispatch(ctx, member, models.MessageTypeReceipt, message)
}

func (s *NotificationService) dispatch(ctx context.Context, member *models.Member, msgType, message string) (*NotificationResult, error) {
	entry := &models.MessageLog{
		MemberID:       member.ID,
		Phone:          whatsapp.NormalizePhone(member.Phone),
		MessageType:    msgType,
		MessageContent: message,
		Status:         models.MessageStatusPending,
	}
	if err := s.LogRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to log message: %w", err)
	}

	result := &NotificationResult{
		Log:      entry,
		DeepLink: whatsapp.DeepLink(member.Phone, message),
	}

	if s.Provider == nil {
		return result, nil
	}

	if err := s.Provider.SendMessage(entry.Phone, message); err != nil {
		log.Printf("[WhatsApp] delivery to %s failed: %v", entry.Phone, err)
		if logErr := s.LogRepo.MarkFailed(ctx, entry.ID, err.Error()); logErr != nil {
			log.Printf("[WhatsApp] failed to record delivery failure: %v", logErr)
		}
		entry.Status = models.MessageStatusFailed
		entry.ProviderError = err.Error()
		return result, nil
	}

	sentAt := timeutil.Now()
	if err := s.LogRepo.MarkSent(ctx, entry.ID, sentAt); err != nil {
		log.Printf("[WhatsApp] failed to record delivery: %v", err)
	}
	entry.Status = models.MessageStatusSent
	entry.SentAt = &sentAt
	result.Sent = true
	return result, nil
}

// ListMemberMessages returns the message history for a member
func (s *NotificationService) ListMemberMessages(ctx context.Context, memberID int) ([]*models.MessageLog, error) {
	if _, err := s.MemberRepo.Get(ctx, memberID); err != nil {
		return nil, ErrMemberNotFound
	}
	return s.LogRepo.ListByMember(ctx, memberID)
}
