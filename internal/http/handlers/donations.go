package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"tipjar/internal/domain"
	"tipjar/internal/ledger"
)

type donationRequest struct {
	Amount         int64  `json:"amount"`
	DonorName      string `json:"donorName"`
	DonorEmail     string `json:"donorEmail"`
	Message        string `json:"message"`
	PaymentMethod  string `json:"paymentMethod"`
	AccountID      string `json:"accountId"`
	IdempotencyKey string `json:"idempotencyKey"`
}

// DonationsCreate records a pending donation for a creator. A repeated
// Idempotency-Key answers 200 with the original donation instead of 201.
func (a *App) DonationsCreate(w http.ResponseWriter, r *http.Request) {
	var req donationRequest
	if !a.decode(w, r, &req) {
		return
	}
	key := req.IdempotencyKey
	if h := strings.TrimSpace(r.Header.Get("Idempotency-Key")); h != "" {
		key = h
	}
	donation, created, err := a.Ledger.CreateDonation(r.Context(), ledger.CreateDonationInput{
		Amount:         req.Amount,
		DonorName:      req.DonorName,
		DonorEmail:     req.DonorEmail,
		Message:        req.Message,
		PaymentMethod:  domain.PaymentMethod(strings.ToLower(strings.TrimSpace(req.PaymentMethod))),
		AccountID:      req.AccountID,
		IdempotencyKey: key,
	})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	status := http.StatusCreated
	if !created {
		status = http.StatusOK
	}
	a.json(w, status, toDonationDTO(donation))
}

// DonationsList pages through the session account's donations.
func (a *App) DonationsList(w http.ResponseWriter, r *http.Request) {
	accountID := a.requireUser(w, r)
	if accountID == "" {
		return
	}
	q := r.URL.Query()
	page, err := queryInt(q.Get("page"), "page")
	if err != nil {
		a.fail(w, r, err)
		return
	}
	sizeParam := q.Get("pageSize")
	if sizeParam == "" {
		sizeParam = q.Get("limit")
	}
	pageSize, err := queryInt(sizeParam, "pageSize")
	if err != nil {
		a.fail(w, r, err)
		return
	}

	list, err := a.Ledger.ListDonations(r.Context(), ledger.ListQuery{
		AccountID: accountID,
		Page:      page,
		PageSize:  pageSize,
		Status:    q.Get("status"),
	})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	items := make([]donationDTO, 0, len(list.Items))
	for i := range list.Items {
		items = append(items, toDonationDTO(&list.Items[i]))
	}
	a.json(w, http.StatusOK, map[string]any{
		"items": items,
		"pagination": paginationDTO{
			Page:       list.Page,
			PageSize:   list.PageSize,
			Total:      list.Total,
			TotalPages: list.TotalPages,
		},
	})
}

// queryInt parses an optional integer query parameter; "" yields 0.
func queryInt(raw, field string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewValidationError(field, "numeric")
	}
	if n < 1 {
		return 0, domain.NewValidationError(field, "min")
	}
	return n, nil
}
