package models

import "time"

type Member struct {
	ID             int       `json:"id"`
	Name           string    `json:"name"`
	Phone          string    `json:"phone"`
	AlternatePhone string    `json:"alternate_phone,omitempty"`
	FatherName     string    `json:"father_name,omitempty"`
	Email          string    `json:"email,omitempty"`
	Address        string    `json:"address,omitempty"`
	MembershipType string    `json:"membership_type"`
	MonthlyFee     float64   `json:"monthly_fee"`
	Active         bool      `json:"active"`
	JoiningDate    time.Time `json:"joining_date"`
	Notes          string    `json:"notes,omitempty"`
	UserID         *int      `json:"user_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CreateMemberRequest represents the request body for registering a member
type CreateMemberRequest struct {
	Name           string  `json:"name"`
	Phone          string  `json:"phone"`
	AlternatePhone string  `json:"alternate_phone"`
	FatherName     string  `json:"father_name"`
	Email          string  `json:"email"`
	Address        string  `json:"address"`
	MembershipType string  `json:"membership_type"`
	MonthlyFee     float64 `json:"monthly_fee"`
	JoiningDate    string  `json:"joining_date"`
	Notes          string  `json:"notes"`
}

// UpdateMemberRequest represents the request body for updating a member
type UpdateMemberRequest struct {
	Name           string  `json:"name"`
	Phone          string  `json:"phone"`
	AlternatePhone string  `json:"alternate_phone"`
	FatherName     string  `json:"father_name"`
	Email          string  `json:"email"`
	Address        string  `json:"address"`
	MembershipType string  `json:"membership_type"`
	MonthlyFee     float64 `json:"monthly_fee"`
	Active         *bool   `json:"active"`
	Notes          string  `json:"notes"`
}

// MemberTotals holds lifetime aggregates across all of a member's dues.
// TotalOutstanding can be negative when a member has overpaid; it is
// reported as-is, never clamped.
type MemberTotals struct {
	MemberID         int     `json:"member_id"`
	TotalPaid        float64 `json:"total_paid"`
	TotalOutstanding float64 `json:"total_outstanding"`
}
