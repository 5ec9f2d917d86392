package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"payfam-backend/internal/models"
	"payfam-backend/internal/repositories"
	"payfam-backend/internal/timeutil"

	"github.com/jackc/pgx/v5"
)

// phoneRe accepts local (03001234567) and international (+923001234567) forms
var phoneRe = regexp.MustCompile(`^\+?[0-9]{10,14}$`)

type MemberService struct {
	Repo *repositories.MemberRepository
}

func NewMemberService(repo *repositories.MemberRepository) *MemberService {
	return &MemberService{Repo: repo}
}

func validateMemberInput(name, phone string, monthlyFee float64) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if phone == "" {
		return fmt.Errorf("%w: phone is required", ErrValidation)
	}
	if !phoneRe.MatchString(phone) {
		return fmt.Errorf("%w: invalid phone format %q", ErrValidation, phone)
	}
	if monthlyFee < 0 {
		return fmt.Errorf("%w: monthly_fee cannot be negative", ErrValidation)
	}
	return nil
}

func (s *MemberService) CreateMember(ctx context.Context, req *models.CreateMemberRequest) (*models.Member, error) {
	if err := validateMemberInput(req.Name, req.Phone, req.MonthlyFee); err != nil {
		return nil, err
	}

	joiningDate := timeutil.Now()
	if req.JoiningDate != "" {
		parsed, err := timeutil.ParseInPKT(timeutil.DateLayout, req.JoiningDate)
		if err != nil {
			return nil, fmt.Errorf("%w: joining_date must be YYYY-MM-DD", ErrValidation)
		}
		joiningDate = parsed
	}

	membershipType := req.MembershipType
	if membershipType == "" {
		membershipType = "regular"
	}

	member := &models.Member{
		Name:           req.Name,
		Phone:          req.Phone,
		AlternatePhone: req.AlternatePhone,
		FatherName:     req.FatherName,
		Email:          req.Email,
		Address:        req.Address,
		MembershipType: membershipType,
		MonthlyFee:     req.MonthlyFee,
		Active:         true,
		JoiningDate:    joiningDate,
		Notes:          req.Notes,
	}

	if err := s.Repo.Create(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to create member: %w", err)
	}

	return member, nil
}

func (s *MemberService) GetMember(ctx context.Context, id int) (*models.Member, error) {
	member, err := s.Repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return member, nil
}

func (s *MemberService) SearchByPhone(ctx context.Context, phone string) (*models.Member, error) {
	if phone == "" {
		return nil, fmt.Errorf("%w: phone is required", ErrValidation)
	}
	member, err := s.Repo.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return member, nil
}

func (s *MemberService) ListMembers(ctx context.Context, activeOnly bool) ([]*models.Member, error) {
	return s.Repo.List(ctx, activeOnly)
}

func (s *MemberService) UpdateMember(ctx context.Context, id int, req *models.UpdateMemberRequest) (*models.Member, error) {
	if err := validateMemberInput(req.Name, req.Phone, req.MonthlyFee); err != nil {
		return nil, err
	}

	member, err := s.GetMember(ctx, id)
	if err != nil {
		return nil, err
	}

	member.Name = req.Name
	member.Phone = req.Phone
	member.AlternatePhone = req.AlternatePhone
	member.FatherName = req.FatherName
	member.Email = req.Email
	member.Address = req.Address
	if req.MembershipType != "" {
		member.MembershipType = req.MembershipType
	}
	member.MonthlyFee = req.MonthlyFee
	if req.Active != nil {
		member.Active = *req.Active
	}
	member.Notes = req.Notes

	if err := s.Repo.Update(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to update member: %w", err)
	}

	return s.Repo.Get(ctx, id)
}

// SetActive soft-disables or re-enables a member without touching history
func (s *MemberService) SetActive(ctx context.Context, id int, active bool) error {
	if _, err := s.GetMember(ctx, id); err != nil {
		return err
	}
	return s.Repo.SetActive(ctx, id, active)
}

// DeleteMember hard-deletes a member and every dependent row (ledger
// transactions, monthly dues, message logs) in one atomic operation.
func (s *MemberService) DeleteMember(ctx context.Context, id int) error {
	if _, err := s.GetMember(ctx, id); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}
	return nil
}

// GetTotals returns a member's lifetime paid and outstanding aggregates
func (s *MemberService) GetTotals(ctx context.Context, id int) (*models.MemberTotals, error) {
	if _, err := s.GetMember(ctx, id); err != nil {
		return nil, err
	}
	return s.Repo.GetTotals(ctx, id)
}
