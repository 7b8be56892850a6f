package handlers

import (
	"time"

	"tipjar/internal/domain"
)

type donationDTO struct {
	ID            string    `json:"id"`
	AccountID     string    `json:"accountId"`
	Amount        int64     `json:"amount"`
	DonorName     string    `json:"donorName"`
	DonorEmail    string    `json:"donorEmail,omitempty"`
	Message       string    `json:"message,omitempty"`
	PaymentMethod string    `json:"paymentMethod"`
	PaymentStatus string    `json:"paymentStatus"`
	TransactionID *string   `json:"transactionId"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	RecipientName string    `json:"recipientName,omitempty"`
}

func toDonationDTO(d *domain.Donation) donationDTO {
	return donationDTO{
		ID:            d.ID,
		AccountID:     d.AccountID,
		Amount:        d.Amount,
		DonorName:     d.DonorName,
		DonorEmail:    d.DonorEmail,
		Message:       d.Message,
		PaymentMethod: string(d.PaymentMethod),
		PaymentStatus: string(d.PaymentStatus),
		TransactionID: d.TransactionID,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
		RecipientName: d.RecipientName,
	}
}

// paymentResultDTO is returned to gateways. It leaves out donor contact data.
type paymentResultDTO struct {
	ID            string    `json:"id"`
	PaymentStatus string    `json:"paymentStatus"`
	TransactionID *string   `json:"transactionId"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type statsDTO struct {
	AccountID           string   `json:"accountId"`
	TotalDonations      int64    `json:"totalDonations"`
	TotalDonors         int      `json:"totalDonors"`
	ThisMonth           int64    `json:"thisMonth"`
	PendingDonations    int      `json:"pendingDonations"`
	DonationGoal        *int64   `json:"donationGoal"`
	GoalProgressPercent *float64 `json:"goalProgressPercent,omitempty"`
}

func toStatsDTO(s *domain.CreatorStats) statsDTO {
	return statsDTO{
		AccountID:           s.AccountID,
		TotalDonations:      s.LifetimeTotal,
		TotalDonors:         s.DistinctDonorCount,
		ThisMonth:           s.CurrentPeriodTotal,
		PendingDonations:    s.PendingCount,
		DonationGoal:        s.DonationGoal,
		GoalProgressPercent: s.GoalProgressPercent,
	}
}

type profileDTO struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Username            string   `json:"username"`
	Image               string   `json:"image,omitempty"`
	Bio                 string   `json:"bio,omitempty"`
	DonationGoal        *int64   `json:"donationGoal,omitempty"`
	TotalDonations      int64    `json:"totalDonations"`
	TotalDonors         int      `json:"totalDonors"`
	GoalProgressPercent *float64 `json:"goalProgressPercent,omitempty"`
}

func toProfileDTO(p *domain.PublicProfile) profileDTO {
	return profileDTO{
		ID:                  p.ID,
		Name:                p.Name,
		Username:            p.Username,
		Image:               p.Image,
		Bio:                 p.Bio,
		DonationGoal:        p.DonationGoal,
		TotalDonations:      p.TotalDonations,
		TotalDonors:         p.TotalDonors,
		GoalProgressPercent: p.GoalProgressPercent,
	}
}

// accountDTO is the owner's view of an account.
type accountDTO struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Image        string    `json:"image,omitempty"`
	Bio          string    `json:"bio,omitempty"`
	DonationGoal *int64    `json:"donationGoal"`
	PromptPayID  string    `json:"promptPayId,omitempty"`
	BankAccount  string    `json:"bankAccount,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func toAccountDTO(a *domain.Account) accountDTO {
	return accountDTO{
		ID:           a.ID,
		Username:     a.Username,
		Email:        a.Email,
		Name:         a.Name,
		Image:        a.Image,
		Bio:          a.Bio,
		DonationGoal: a.DonationGoal,
		PromptPayID:  a.PromptPayID,
		BankAccount:  a.BankAccount,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

type paginationDTO struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}
