package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"tipjar/internal/domain"
	"tipjar/internal/ledger"
	"tipjar/internal/middleware"
)

const gatewaySecretHeader = "X-Gateway-Secret"

type paymentCallbackRequest struct {
	DonationID    string `json:"donationId"`
	Outcome       string `json:"outcome"`
	TransactionID string `json:"transactionId"`
}

// PaymentCallback applies a gateway's payment outcome. The gateway must
// present its shared secret and may only settle donations made with its own
// payment method.
func (a *App) PaymentCallback(w http.ResponseWriter, r *http.Request) {
	locale := middleware.LocaleFromContext(r.Context())
	method := domain.PaymentMethod(strings.ToLower(chi.URLParam(r, "method")))
	if !method.Valid() {
		a.error(w, http.StatusNotFound, "not_found", message(locale, "unknown_gateway"))
		return
	}
	if a.Gateways == nil {
		a.error(w, http.StatusForbidden, "forbidden", message(locale, "gateway_forbidden"))
		return
	}
	ok, err := a.Gateways.VerifyGatewaySecret(r.Context(), method, r.Header.Get(gatewaySecretHeader))
	if err != nil {
		a.Logger.Error().Err(err).Str("payment_method", string(method)).Msg("verify gateway secret failed")
		a.error(w, http.StatusInternalServerError, "internal", message(locale, "unexpected"))
		return
	}
	if !ok {
		a.Logger.Warn().Str("payment_method", string(method)).Str("request_id", middleware.RequestIDFromContext(r.Context())).Msg("gateway secret rejected")
		a.error(w, http.StatusForbidden, "forbidden", message(locale, "gateway_forbidden"))
		return
	}

	var req paymentCallbackRequest
	if !a.decode(w, r, &req) {
		return
	}
	donation, err := a.Ledger.ReportPaymentOutcome(r.Context(), ledger.PaymentOutcomeInput{
		DonationID:    req.DonationID,
		Outcome:       domain.PaymentStatus(strings.ToLower(strings.TrimSpace(req.Outcome))),
		TransactionID: req.TransactionID,
		PaymentMethod: method,
	})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, paymentResultDTO{
		ID:            donation.ID,
		PaymentStatus: string(donation.PaymentStatus),
		TransactionID: donation.TransactionID,
		UpdatedAt:     donation.UpdatedAt,
	})
}

type paymentMethodDTO struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	FeePercent  float64 `json:"fee"`
	Description string  `json:"description"`
}

var paymentMethodCatalog = map[string][]paymentMethodDTO{
	"en": {
		{ID: "promptpay", Name: "PromptPay", Type: "promptpay", FeePercent: 0, Description: "Scan the QR code"},
		{ID: "truemoney", Name: "TrueMoney Wallet", Type: "truemoney", FeePercent: 10, Description: "10% fee"},
		{ID: "linepay", Name: "LINE Pay", Type: "linepay", FeePercent: 10, Description: "10% fee"},
	},
	"th": {
		{ID: "promptpay", Name: "PromptPay", Type: "promptpay", FeePercent: 0, Description: "สแกน QR Code"},
		{ID: "truemoney", Name: "TrueMoney Wallet", Type: "truemoney", FeePercent: 10, Description: "ค่าธรรมเนียม 10%"},
		{ID: "linepay", Name: "LINE Pay", Type: "linepay", FeePercent: 10, Description: "ค่าธรรมเนียม 10%"},
	},
}

// PaymentMethods lists the accepted payment methods for the donation form.
func (a *App) PaymentMethods(w http.ResponseWriter, r *http.Request) {
	items, ok := paymentMethodCatalog[middleware.LocaleFromContext(r.Context())]
	if !ok {
		items = paymentMethodCatalog["en"]
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}
