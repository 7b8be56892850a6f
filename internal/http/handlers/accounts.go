package handlers

import (
	"net/http"

	"tipjar/internal/ledger"
	"tipjar/internal/middleware"
)

// AccountsRegister creates a creator account.
func (a *App) AccountsRegister(w http.ResponseWriter, r *http.Request) {
	var req ledger.RegisterAccountInput
	if !a.decode(w, r, &req) {
		return
	}
	acct, err := a.Ledger.RegisterAccount(r.Context(), req)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, map[string]any{
		"message": message(middleware.LocaleFromContext(r.Context()), "account_created"),
		"account": toAccountDTO(acct),
	})
}

// Me returns the session account.
func (a *App) Me(w http.ResponseWriter, r *http.Request) {
	accountID := a.requireUser(w, r)
	if accountID == "" {
		return
	}
	acct, err := a.Ledger.GetAccount(r.Context(), accountID)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, toAccountDTO(acct))
}

type goalRequest struct {
	DonationGoal *int64 `json:"donationGoal"`
}

// MeGoalUpdate sets or, with a null goal, clears the session account's goal.
func (a *App) MeGoalUpdate(w http.ResponseWriter, r *http.Request) {
	accountID := a.requireUser(w, r)
	if accountID == "" {
		return
	}
	var req goalRequest
	if !a.decode(w, r, &req) {
		return
	}
	acct, err := a.Ledger.SetDonationGoal(r.Context(), accountID, req.DonationGoal)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, toAccountDTO(acct))
}
