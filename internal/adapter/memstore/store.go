// Package memstore keeps accounts and donations in process memory. It honours
// the same atomicity rules as the PostgreSQL repositories and backs tests and
// STORE_DRIVER=memory.
package memstore

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"

	"tipjar/internal/domain"
)

// Store owns the shared state; Accounts and Donations are views over it.
type Store struct {
	mu         sync.RWMutex
	accounts   map[string]*domain.Account
	byUsername map[string]string
	byEmail    map[string]string
	donations  map[string]*domain.Donation
	idem       map[string]string
}

func New() *Store {
	return &Store{
		accounts:   make(map[string]*domain.Account),
		byUsername: make(map[string]string),
		byEmail:    make(map[string]string),
		donations:  make(map[string]*domain.Donation),
		idem:       make(map[string]string),
	}
}

// Accounts returns the account repository view.
func (s *Store) Accounts() *Accounts { return &Accounts{s: s} }

// Donations returns the donation store view.
func (s *Store) Donations() *Donations { return &Donations{s: s} }

// DeleteAccount removes an account that has no donations. It mirrors the
// ON DELETE RESTRICT foreign key of the SQL schema.
func (s *Store) DeleteAccount(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, ok := s.accounts[id]
	if !ok {
		return domain.ErrNotFound
	}
	for _, d := range s.donations {
		if d.AccountID == id {
			return fmt.Errorf("account %s still referenced by donations: %w", id, domain.ErrConflict)
		}
	}
	delete(s.byUsername, acct.Username)
	delete(s.byEmail, strings.ToLower(acct.Email))
	delete(s.accounts, id)
	return nil
}

// DonationCount returns the number of stored donations.
func (s *Store) DonationCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.donations)
}

type Accounts struct{ s *Store }

func (a *Accounts) Create(_ context.Context, account *domain.Account) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	if _, taken := a.s.byUsername[account.Username]; taken {
		return &domain.ConflictError{Field: "username"}
	}
	email := strings.ToLower(account.Email)
	if _, taken := a.s.byEmail[email]; taken {
		return &domain.ConflictError{Field: "email"}
	}
	stored := cloneAccount(account)
	a.s.accounts[stored.ID] = stored
	a.s.byUsername[stored.Username] = stored.ID
	a.s.byEmail[email] = stored.ID
	return nil
}

func (a *Accounts) GetByID(_ context.Context, id string) (*domain.Account, error) {
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()
	acct, ok := a.s.accounts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneAccount(acct), nil
}

func (a *Accounts) GetByUsername(_ context.Context, username string) (*domain.Account, error) {
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()
	id, ok := a.s.byUsername[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneAccount(a.s.accounts[id]), nil
}

func (a *Accounts) UpdateGoal(_ context.Context, id string, goal *int64, at time.Time) (*domain.Account, error) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	acct, ok := a.s.accounts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	acct.DonationGoal = cloneInt64(goal)
	acct.UpdatedAt = at
	return cloneAccount(acct), nil
}

type Donations struct{ s *Store }

func (d *Donations) Create(_ context.Context, donation *domain.Donation) error {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	acct, ok := d.s.accounts[donation.AccountID]
	if !ok {
		return fmt.Errorf("account %s: %w", donation.AccountID, domain.ErrNotFound)
	}
	var idemKey string
	if donation.IdempotencyKey != nil {
		idemKey = donation.AccountID + "\x00" + *donation.IdempotencyKey
		if _, dup := d.s.idem[idemKey]; dup {
			return &domain.ConflictError{Field: "idempotencyKey"}
		}
	}
	if _, dup := d.s.donations[donation.ID]; dup {
		return &domain.ConflictError{Field: "id"}
	}
	donation.RecipientName = acct.DisplayName()
	d.s.donations[donation.ID] = cloneDonation(donation)
	if idemKey != "" {
		d.s.idem[idemKey] = donation.ID
	}
	return nil
}

func (d *Donations) GetByID(_ context.Context, id string) (*domain.Donation, error) {
	d.s.mu.RLock()
	defer d.s.mu.RUnlock()
	don, ok := d.s.donations[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneDonation(don), nil
}

func (d *Donations) GetByIdempotencyKey(_ context.Context, accountID, key string) (*domain.Donation, error) {
	d.s.mu.RLock()
	defer d.s.mu.RUnlock()
	id, ok := d.s.idem[accountID+"\x00"+key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneDonation(d.s.donations[id]), nil
}

func (d *Donations) Transition(_ context.Context, id string, to domain.PaymentStatus, transactionID *string, at time.Time) (*domain.Donation, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	don, ok := d.s.donations[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if !don.PaymentStatus.CanTransitionTo(to) {
		return nil, &domain.InvalidTransitionError{DonationID: id, From: don.PaymentStatus, To: to}
	}
	don.PaymentStatus = to
	if transactionID != nil {
		don.TransactionID = cloneString(transactionID)
	}
	don.UpdatedAt = at
	return cloneDonation(don), nil
}

func (d *Donations) List(_ context.Context, filter domain.DonationFilter) (*domain.DonationPage, error) {
	d.s.mu.RLock()
	matched := lo.FilterMap(lo.Values(d.s.donations), func(don *domain.Donation, _ int) (domain.Donation, bool) {
		if don.AccountID != filter.AccountID {
			return domain.Donation{}, false
		}
		if filter.Status != nil && don.PaymentStatus != *filter.Status {
			return domain.Donation{}, false
		}
		return *cloneDonation(don), true
	})
	d.s.mu.RUnlock()

	slices.SortFunc(matched, func(a, b domain.Donation) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(b.ID, a.ID)
	})

	page := &domain.DonationPage{Total: len(matched), Items: []domain.Donation{}}
	if filter.Offset < 0 || filter.Offset >= len(matched) {
		return page, nil
	}
	end := len(matched)
	if filter.Limit > 0 && filter.Limit < end-filter.Offset {
		end = filter.Offset + filter.Limit
	}
	page.Items = matched[filter.Offset:end]
	return page, nil
}

func (d *Donations) Stats(_ context.Context, accountID string, periodStart time.Time) (*domain.CreatorStats, error) {
	d.s.mu.RLock()
	defer d.s.mu.RUnlock()
	acct, ok := d.s.accounts[accountID]
	if !ok {
		return nil, fmt.Errorf("account %s: %w", accountID, domain.ErrNotFound)
	}
	owned := lo.Filter(lo.Values(d.s.donations), func(don *domain.Donation, _ int) bool {
		return don.AccountID == accountID
	})
	confirmed := lo.Filter(owned, func(don *domain.Donation, _ int) bool {
		return don.PaymentStatus == domain.PaymentStatusConfirmed
	})
	stats := &domain.CreatorStats{
		AccountID:     accountID,
		LifetimeTotal: lo.SumBy(confirmed, func(don *domain.Donation) int64 { return don.Amount }),
		DistinctDonorCount: len(lo.Uniq(lo.Map(confirmed, func(don *domain.Donation, _ int) string {
			return don.DonorName
		}))),
		CurrentPeriodTotal: lo.SumBy(confirmed, func(don *domain.Donation) int64 {
			if don.CreatedAt.Before(periodStart) {
				return 0
			}
			return don.Amount
		}),
		PendingCount: lo.CountBy(owned, func(don *domain.Donation) bool {
			return don.PaymentStatus == domain.PaymentStatusPending
		}),
		DonationGoal: cloneInt64(acct.DonationGoal),
	}
	return stats, nil
}

func cloneAccount(a *domain.Account) *domain.Account {
	c := *a
	c.DonationGoal = cloneInt64(a.DonationGoal)
	return &c
}

func cloneDonation(d *domain.Donation) *domain.Donation {
	c := *d
	c.TransactionID = cloneString(d.TransactionID)
	c.IdempotencyKey = cloneString(d.IdempotencyKey)
	return &c
}

func cloneString(v *string) *string {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneInt64(v *int64) *int64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
