package ledger

import (
	"context"
	"strings"
	"time"

	"tipjar/internal/domain"
)

// ComputeCreatorStats derives the creator's statistics from the stored
// donations at call time. Nothing is cached between calls.
func (s *Service) ComputeCreatorStats(ctx context.Context, accountID string) (*domain.CreatorStats, error) {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return nil, s.fail("compute_creator_stats", domain.NewValidationError("accountId", "required"))
	}
	stats, err := s.donations.Stats(ctx, accountID, periodStart(s.now()))
	if err != nil {
		return nil, s.fail("compute_creator_stats", err)
	}
	stats.GoalProgressPercent = domain.GoalProgress(stats.LifetimeTotal, stats.DonationGoal)
	return stats, nil
}

// GetPublicProfile resolves username and returns its public projection.
func (s *Service) GetPublicProfile(ctx context.Context, username string) (*domain.PublicProfile, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, s.fail("get_public_profile", domain.ErrNotFound)
	}
	acct, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		return nil, s.fail("get_public_profile", err)
	}
	stats, err := s.donations.Stats(ctx, acct.ID, periodStart(s.now()))
	if err != nil {
		return nil, s.fail("get_public_profile", err)
	}
	return &domain.PublicProfile{
		ID:                  acct.ID,
		Username:            acct.Username,
		Name:                acct.DisplayName(),
		Image:               acct.Image,
		Bio:                 acct.Bio,
		DonationGoal:        stats.DonationGoal,
		TotalDonations:      stats.LifetimeTotal,
		TotalDonors:         stats.DistinctDonorCount,
		GoalProgressPercent: domain.GoalProgress(stats.LifetimeTotal, stats.DonationGoal),
	}, nil
}

// periodStart is the first instant of the current calendar month in UTC.
func periodStart(now time.Time) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
}
