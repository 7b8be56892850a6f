package ledger

import (
	"context"
	"strings"

	"tipjar/internal/domain"
)

// RegisterAccountInput creates a creator account. Credentials are handled by
// the identity provider, not here.
type RegisterAccountInput struct {
	Name         string `json:"name" validate:"required,min=2,max=100"`
	Username     string `json:"username" validate:"required,min=3,max=30,username"`
	Email        string `json:"email" validate:"required,email"`
	Image        string `json:"image" validate:"omitempty,url"`
	Bio          string `json:"bio" validate:"max=500"`
	DonationGoal *int64 `json:"donationGoal" validate:"omitempty,gt=0"`
	PromptPayID  string `json:"promptPayId" validate:"omitempty,max=20"`
	BankAccount  string `json:"bankAccount" validate:"omitempty,max=40"`
}

// RegisterAccount validates in and creates the account. A taken username or
// email fails with *domain.ConflictError and stores nothing.
func (s *Service) RegisterAccount(ctx context.Context, in RegisterAccountInput) (*domain.Account, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Bio = strings.TrimSpace(in.Bio)
	if err := s.check(in); err != nil {
		return nil, s.fail("register_account", err)
	}

	now := s.now()
	acct := &domain.Account{
		ID:           s.newID(),
		Username:     in.Username,
		Email:        in.Email,
		Name:         in.Name,
		Image:        strings.TrimSpace(in.Image),
		Bio:          in.Bio,
		DonationGoal: in.DonationGoal,
		PromptPayID:  strings.TrimSpace(in.PromptPayID),
		BankAccount:  strings.TrimSpace(in.BankAccount),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.accounts.Create(ctx, acct); err != nil {
		return nil, s.fail("register_account", err)
	}
	s.logger.Info().Str("account_id", acct.ID).Str("username", acct.Username).Msg("account registered")
	return acct, nil
}

// SetDonationGoal sets the account's goal, or clears it when goal is nil.
func (s *Service) SetDonationGoal(ctx context.Context, accountID string, goal *int64) (*domain.Account, error) {
	if goal != nil && *goal <= 0 {
		return nil, s.fail("set_donation_goal", domain.NewValidationError("donationGoal", "gt"))
	}
	acct, err := s.accounts.UpdateGoal(ctx, strings.TrimSpace(accountID), goal, s.now())
	if err != nil {
		return nil, s.fail("set_donation_goal", err)
	}
	return acct, nil
}

// GetAccount returns an account by id for its owner.
func (s *Service) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	acct, err := s.accounts.GetByID(ctx, strings.TrimSpace(accountID))
	if err != nil {
		return nil, s.fail("get_account", err)
	}
	return acct, nil
}
