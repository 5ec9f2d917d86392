package services

import (
	"errors"
	"testing"
	"time"

	"payfam-backend/internal/models"
	"payfam-backend/internal/timeutil"
)

func TestValidatePaymentRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     models.RecordPaymentRequest
		wantErr bool
	}{
		{
			name: "valid minimal request",
			req:  models.RecordPaymentRequest{MemberID: 1, Amount: 2000},
		},
		{
			name: "valid full request",
			req: models.RecordPaymentRequest{
				MemberID:    1,
				Amount:      500,
				PaymentDate: "2025-03-03",
				Method:      models.MethodBankTransfer,
				Reference:   "TRX-1",
			},
		},
		{
			name:    "missing member",
			req:     models.RecordPaymentRequest{Amount: 2000},
			wantErr: true,
		},
		{
			name:    "zero amount",
			req:     models.RecordPaymentRequest{MemberID: 1, Amount: 0},
			wantErr: true,
		},
		{
			name:    "negative amount",
			req:     models.RecordPaymentRequest{MemberID: 1, Amount: -50},
			wantErr: true,
		},
		{
			name:    "unknown method",
			req:     models.RecordPaymentRequest{MemberID: 1, Amount: 100, Method: "barter"},
			wantErr: true,
		},
		{
			name:    "malformed date",
			req:     models.RecordPaymentRequest{MemberID: 1, Amount: 100, PaymentDate: "03/03/2025"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePaymentRequest(&tt.req)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePaymentRequest() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrValidation) {
				t.Errorf("ValidatePaymentRequest() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestResolveDuesYear(t *testing.T) {
	now := time.Date(2025, time.March, 10, 9, 0, 0, 0, timeutil.PKT)

	// An omitted ?year= decodes to zero and must fall back to the current
	// year instead of querying for year 0, which matches no rows
	if got := resolveDuesYear(0, now); got != 2025 {
		t.Errorf("resolveDuesYear(0) = %d, want 2025", got)
	}
	if got := resolveDuesYear(2024, now); got != 2024 {
		t.Errorf("resolveDuesYear(2024) = %d, want 2024", got)
	}
}

func TestValidateMemberInput(t *testing.T) {
	tests := []struct {
		name    string
		member  string
		phone   string
		fee     float64
		wantErr bool
	}{
		{name: "valid local phone", member: "Ahmed", phone: "03001234567", fee: 2000},
		{name: "valid international phone", member: "Ahmed", phone: "+923001234567", fee: 2000},
		{name: "zero fee is allowed", member: "Ahmed", phone: "03001234567", fee: 0},
		{name: "missing name", member: "", phone: "03001234567", fee: 2000, wantErr: true},
		{name: "missing phone", member: "Ahmed", phone: "", fee: 2000, wantErr: true},
		{name: "phone too short", member: "Ahmed", phone: "12345", fee: 2000, wantErr: true},
		{name: "phone with letters", member: "Ahmed", phone: "0300abc4567", fee: 2000, wantErr: true},
		{name: "negative fee", member: "Ahmed", phone: "03001234567", fee: -100, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateMemberInput(tt.member, tt.phone, tt.fee)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateMemberInput() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrValidation) {
				t.Errorf("validateMemberInput() error = %v, want ErrValidation", err)
			}
		})
	}
}
