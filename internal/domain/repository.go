package domain

import (
	"context"
	"time"
)

// AccountDirectory is the read-only account lookup the ledger depends on.
type AccountDirectory interface {
	GetByID(ctx context.Context, id string) (*Account, error)
	GetByUsername(ctx context.Context, username string) (*Account, error)
}

// AccountRepository adds the write side used for registration and goal changes.
type AccountRepository interface {
	AccountDirectory
	Create(ctx context.Context, account *Account) error
	UpdateGoal(ctx context.Context, id string, goal *int64, at time.Time) (*Account, error)
}

// DonationStore persists donations.
//
// Create checks that the account exists and inserts in one atomic step,
// returning ErrNotFound for a missing account and a *ConflictError on a
// repeated idempotency key. Transition only succeeds when the stored status is
// still pending; otherwise it returns *InvalidTransitionError and changes
// nothing. Stats is a single consistent read.
type DonationStore interface {
	Create(ctx context.Context, donation *Donation) error
	GetByID(ctx context.Context, id string) (*Donation, error)
	GetByIdempotencyKey(ctx context.Context, accountID, key string) (*Donation, error)
	Transition(ctx context.Context, id string, to PaymentStatus, transactionID *string, at time.Time) (*Donation, error)
	List(ctx context.Context, filter DonationFilter) (*DonationPage, error)
	Stats(ctx context.Context, accountID string, periodStart time.Time) (*CreatorStats, error)
}
