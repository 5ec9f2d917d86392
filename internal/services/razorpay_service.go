package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"

	"payfam-backend/internal/models"

	razorpay "github.com/razorpay/razorpay-go"
)

// RazorpayService lets members settle dues online. An order carries the
// member and amount; once the gateway confirms, the payment lands in the
// ledger through the same RecordPayment path as a cash entry.
type RazorpayService struct {
	dueService    *DueService
	keyID         string
	keySecret     string
	webhookSecret string
}

func NewRazorpayService(keyID, keySecret, webhookSecret string, dueService *DueService) *RazorpayService {
	return &RazorpayService{
		dueService:    dueService,
		keyID:         keyID,
		keySecret:     keySecret,
		webhookSecret: webhookSecret,
	}
}

// IsEnabled reports whether gateway credentials are configured
func (s *RazorpayService) IsEnabled() bool {
	return s.keyID != "" && s.keySecret != ""
}

// KeyID is exposed so clients can initialise the checkout widget
func (s *RazorpayService) KeyID() string {
	return s.keyID
}

// CreateOrderRequest starts an online payment for a member
type CreateOrderRequest struct {
	MemberID int     `json:"member_id"`
	Amount   float64 `json:"amount"`
}

// CreateOrderResponse is what the checkout widget needs
type CreateOrderResponse struct {
	OrderID  string  `json:"order_id"`
	Amount   int     `json:"amount"`
	Currency string  `json:"currency"`
	KeyID    string  `json:"key_id"`
	FeeRs    float64 `json:"fee"`
}

// CreateOrder creates a gateway order for a member's dues payment
func (s *RazorpayService) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*CreateOrderResponse, error) {
	if !s.IsEnabled() {
		return nil, fmt.Errorf("online payments are not configured")
	}
	if req.MemberID <= 0 {
		return nil, fmt.Errorf("%w: member_id is required", ErrValidation)
	}
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be greater than zero", ErrValidation)
	}

	member, err := s.dueService.MemberRepo.Get(ctx, req.MemberID)
	if err != nil {
		return nil, ErrMemberNotFound
	}

	client := razorpay.NewClient(s.keyID, s.keySecret)

	amountPaise := int(req.Amount * 100)
	orderData := map[string]interface{}{
		"amount":   amountPaise,
		"currency": "PKR",
		"notes": map[string]interface{}{
			"member_id":    member.ID,
			"member_phone": member.Phone,
		},
	}

	order, err := client.Order.Create(orderData, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	orderID, ok := order["id"].(string)
	if !ok {
		return nil, fmt.Errorf("gateway returned no order id")
	}

	return &CreateOrderResponse{
		OrderID:  orderID,
		Amount:   amountPaise,
		Currency: "PKR",
		KeyID:    s.keyID,
	}, nil
}

// VerifyPaymentRequest is the checkout callback payload
type VerifyPaymentRequest struct {
	RazorpayOrderID   string  `json:"razorpay_order_id"`
	RazorpayPaymentID string  `json:"razorpay_payment_id"`
	RazorpaySignature string  `json:"razorpay_signature"`
	MemberID          int     `json:"member_id"`
	Amount            float64 `json:"amount"`
}

// VerifyPayment checks the gateway signature and records the payment in the
// dues ledger with the online method and the gateway payment id as reference.
func (s *RazorpayService) VerifyPayment(ctx context.Context, req *VerifyPaymentRequest, recordedBy int) (*models.PaymentTransaction, *models.MonthlyDue, error) {
	if !s.verifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		return nil, nil, fmt.Errorf("invalid payment signature")
	}

	return s.dueService.RecordPayment(ctx, &models.RecordPaymentRequest{
		MemberID:  req.MemberID,
		Amount:    req.Amount,
		Method:    models.MethodOnline,
		Reference: req.RazorpayPaymentID,
		Notes:     "Razorpay order " + req.RazorpayOrderID,
	}, recordedBy)
}

func (s *RazorpayService) verifySignature(orderID, paymentID, signature string) bool {
	if s.keySecret == "" {
		return false
	}
	data := orderID + "|" + paymentID
	h := hmac.New(sha256.New, []byte(s.keySecret))
	h.Write([]byte(data))
	expected := hex.EncodeToString(h.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// VerifyWebhookSignature checks the X-Razorpay-Signature header of a webhook
func (s *RazorpayService) VerifyWebhookSignature(body []byte, signature string) bool {
	if s.webhookSecret == "" {
		return false
	}
	h := hmac.New(sha256.New, []byte(s.webhookSecret))
	h.Write(body)
	expected := hex.EncodeToString(h.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// HandleWebhook processes payment.captured events delivered by the gateway.
// Other event types are acknowledged and ignored.
func (s *RazorpayService) HandleWebhook(ctx context.Context, body []byte) error {
	var event struct {
		Event   string `json:"event"`
		Payload struct {
			Payment struct {
				Entity struct {
					ID      string `json:"id"`
					OrderID string `json:"order_id"`
					Amount  int    `json:"amount"`
					Notes   struct {
						MemberID json.Number `json:"member_id"`
					} `json:"notes"`
				} `json:"entity"`
			} `json:"payment"`
		} `json:"payload"`
	}
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("malformed webhook body: %w", err)
	}

	if event.Event != "payment.captured" {
		return nil
	}

	entity := event.Payload.Payment.Entity
	memberID, err := entity.Notes.MemberID.Int64()
	if err != nil || memberID <= 0 {
		return fmt.Errorf("webhook payment %s carries no member id", entity.ID)
	}

	_, _, err = s.dueService.RecordPayment(ctx, &models.RecordPaymentRequest{
		MemberID:  int(memberID),
		Amount:    float64(entity.Amount) / 100,
		Method:    models.MethodOnline,
		Reference: entity.ID,
		Notes:     "Razorpay order " + entity.OrderID,
	}, 0)
	if err != nil {
		return fmt.Errorf("failed to record webhook payment %s: %w", entity.ID, err)
	}

	log.Printf("[Razorpay] recorded webhook payment %s for member %d", entity.ID, memberID)
	return nil
}
