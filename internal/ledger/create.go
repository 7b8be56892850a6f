package ledger

import (
	"context"
	"errors"
	"strings"

	"tipjar/internal/domain"
)

// CreateDonationInput is a supporter's donation request.
type CreateDonationInput struct {
	Amount         int64                `json:"amount" validate:"gt=0,lte=100000000"`
	DonorName      string               `json:"donorName" validate:"required"`
	DonorEmail     string               `json:"donorEmail" validate:"omitempty,email"`
	Message        string               `json:"message"`
	PaymentMethod  domain.PaymentMethod `json:"paymentMethod" validate:"required,payment_method"`
	AccountID      string               `json:"accountId" validate:"required"`
	IdempotencyKey string               `json:"idempotencyKey" validate:"omitempty,max=128"`
}

func (in *CreateDonationInput) normalize() {
	in.DonorName = strings.TrimSpace(in.DonorName)
	in.DonorEmail = strings.TrimSpace(in.DonorEmail)
	in.Message = strings.TrimSpace(in.Message)
	in.AccountID = strings.TrimSpace(in.AccountID)
	in.IdempotencyKey = strings.TrimSpace(in.IdempotencyKey)
}

// CreateDonation validates in and records a new pending donation.
//
// The second return value is false when an idempotency key matched an earlier
// donation; that donation is returned and nothing new is stored.
func (s *Service) CreateDonation(ctx context.Context, in CreateDonationInput) (*domain.Donation, bool, error) {
	in.normalize()
	if err := s.check(in); err != nil {
		return nil, false, s.fail("create_donation", err)
	}

	if in.IdempotencyKey != "" {
		existing, err := s.donations.GetByIdempotencyKey(ctx, in.AccountID, in.IdempotencyKey)
		switch {
		case err == nil:
			return s.replay(existing, in)
		case !errors.Is(err, domain.ErrNotFound):
			return nil, false, s.fail("create_donation", err)
		}
	}

	now := s.now()
	donation := &domain.Donation{
		ID:            s.newID(),
		AccountID:     in.AccountID,
		Amount:        in.Amount,
		DonorName:     in.DonorName,
		DonorEmail:    in.DonorEmail,
		Message:       in.Message,
		PaymentMethod: in.PaymentMethod,
		PaymentStatus: domain.PaymentStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if in.IdempotencyKey != "" {
		key := in.IdempotencyKey
		donation.IdempotencyKey = &key
	}

	if err := s.donations.Create(ctx, donation); err != nil {
		var conflict *domain.ConflictError
		if errors.As(err, &conflict) && conflict.Field == "idempotencyKey" {
			// lost a race with an identical retry; hand back the winner
			existing, getErr := s.donations.GetByIdempotencyKey(ctx, in.AccountID, in.IdempotencyKey)
			if getErr == nil {
				return s.replay(existing, in)
			}
			err = getErr
		}
		return nil, false, s.fail("create_donation", err)
	}

	s.metrics.DonationCreated(string(donation.PaymentMethod))
	s.logger.Info().
		Str("donation_id", donation.ID).
		Str("account_id", donation.AccountID).
		Str("payment_method", string(donation.PaymentMethod)).
		Int64("amount", donation.Amount).
		Msg("donation recorded")
	return donation, true, nil
}

// replay answers a repeated idempotency key. A key reused with a different
// payload is a conflict and the earlier donation is not disclosed.
func (s *Service) replay(existing *domain.Donation, in CreateDonationInput) (*domain.Donation, bool, error) {
	if existing.Amount != in.Amount ||
		existing.DonorName != in.DonorName ||
		existing.DonorEmail != in.DonorEmail ||
		existing.Message != in.Message ||
		existing.PaymentMethod != in.PaymentMethod {
		return nil, false, s.fail("create_donation", &domain.ConflictError{Field: "idempotencyKey"})
	}
	return existing, false, nil
}
