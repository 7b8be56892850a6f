package domain

import "time"

// Account is a creator profile that can receive donations.
type Account struct {
	ID           string
	Username     string
	Email        string
	Name         string
	Image        string
	Bio          string
	DonationGoal *int64
	PromptPayID  string
	BankAccount  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DisplayName returns the name shown to supporters, falling back to the username.
func (a Account) DisplayName() string {
	if a.Name != "" {
		return a.Name
	}
	return a.Username
}

// PublicProfile is the non-sensitive projection of an account served on the
// public donation page.
type PublicProfile struct {
	ID                  string
	Username            string
	Name                string
	Image               string
	Bio                 string
	DonationGoal        *int64
	TotalDonations      int64
	TotalDonors         int
	GoalProgressPercent *float64
}
