package ledger

import (
	"context"
	"strings"

	"tipjar/internal/domain"
)

// PaymentOutcomeInput is what a payment gateway reports for a donation.
type PaymentOutcomeInput struct {
	DonationID    string               `json:"donationId" validate:"required"`
	Outcome       domain.PaymentStatus `json:"outcome" validate:"required,payment_outcome"`
	TransactionID string               `json:"transactionId" validate:"required_if=Outcome confirmed,max=255"`
	// PaymentMethod, when set, must match the method the donation was
	// created with.
	PaymentMethod domain.PaymentMethod `json:"-"`
}

// ReportPaymentOutcome moves a pending donation to confirmed or failed.
// A donation that is already terminal is left untouched and the call fails
// with domain.ErrInvalidStateTransition.
func (s *Service) ReportPaymentOutcome(ctx context.Context, in PaymentOutcomeInput) (*domain.Donation, error) {
	in.DonationID = strings.TrimSpace(in.DonationID)
	in.TransactionID = strings.TrimSpace(in.TransactionID)
	if err := s.check(in); err != nil {
		return nil, s.fail("report_payment_outcome", err)
	}

	if in.PaymentMethod != "" {
		current, err := s.donations.GetByID(ctx, in.DonationID)
		if err != nil {
			return nil, s.fail("report_payment_outcome", err)
		}
		if current.PaymentMethod != in.PaymentMethod {
			return nil, s.fail("report_payment_outcome", domain.NewValidationError("paymentMethod", "mismatch"))
		}
	}

	var txn *string
	if in.TransactionID != "" {
		txn = &in.TransactionID
	}
	donation, err := s.donations.Transition(ctx, in.DonationID, in.Outcome, txn, s.now())
	if err != nil {
		return nil, s.fail("report_payment_outcome", err)
	}

	s.metrics.PaymentOutcome(string(donation.PaymentStatus))
	s.logger.Info().
		Str("donation_id", donation.ID).
		Str("status", string(donation.PaymentStatus)).
		Msg("payment outcome applied")
	return donation, nil
}
