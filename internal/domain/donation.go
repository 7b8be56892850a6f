package domain

import "time"

// PaymentMethod is the channel used to transfer funds.
type PaymentMethod string

const (
	PaymentMethodPromptPay PaymentMethod = "promptpay"
	PaymentMethodTrueMoney PaymentMethod = "truemoney"
	PaymentMethodLinePay   PaymentMethod = "linepay"
)

// PaymentMethods lists every accepted payment method.
var PaymentMethods = []PaymentMethod{PaymentMethodPromptPay, PaymentMethodTrueMoney, PaymentMethodLinePay}

// Valid reports whether m is one of the accepted payment methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodPromptPay, PaymentMethodTrueMoney, PaymentMethodLinePay:
		return true
	}
	return false
}

// PaymentStatus is the settlement state of a donation.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusConfirmed PaymentStatus = "confirmed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// Valid reports whether s is a known payment status.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusConfirmed, PaymentStatusFailed:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed out of s.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentStatusConfirmed || s == PaymentStatusFailed
}

// CanTransitionTo reports whether moving from s to next is a legal transition.
// Only pending donations move, and only into a terminal status.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	return s == PaymentStatusPending && next.Terminal()
}

// Donation is a single monetary gift and its payment lifecycle.
type Donation struct {
	ID             string
	AccountID      string
	Amount         int64
	DonorName      string
	DonorEmail     string
	Message        string
	PaymentMethod  PaymentMethod
	PaymentStatus  PaymentStatus
	TransactionID  *string
	IdempotencyKey *string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// RecipientName is the receiving account's display name. It is filled on
	// creation for confirmation screens and is not persisted.
	RecipientName string
}

// DonationFilter scopes a donation listing to one account.
type DonationFilter struct {
	AccountID string
	Status    *PaymentStatus
	Limit     int
	Offset    int
}

// DonationPage is one page of a listing plus the total number of matches.
type DonationPage struct {
	Items []Donation
	Total int
}

// CreatorStats are derived from the donation records of one account at read time.
type CreatorStats struct {
	AccountID           string
	LifetimeTotal       int64
	DistinctDonorCount  int
	CurrentPeriodTotal  int64
	PendingCount        int
	DonationGoal        *int64
	GoalProgressPercent *float64
}

// GoalProgress returns min(total/goal*100, 100), or nil when no goal is set.
func GoalProgress(total int64, goal *int64) *float64 {
	if goal == nil || *goal <= 0 {
		return nil
	}
	pct := float64(total) / float64(*goal) * 100
	if pct > 100 {
		pct = 100
	}
	return &pct
}
