package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"tipjar/internal/domain"
	"tipjar/internal/ledger"
	"tipjar/internal/middleware"
)

const maxBodyBytes = 64 << 10

// Ledger is the part of ledger.Service the HTTP layer drives.
type Ledger interface {
	CreateDonation(ctx context.Context, in ledger.CreateDonationInput) (*domain.Donation, bool, error)
	ReportPaymentOutcome(ctx context.Context, in ledger.PaymentOutcomeInput) (*domain.Donation, error)
	ComputeCreatorStats(ctx context.Context, accountID string) (*domain.CreatorStats, error)
	ListDonations(ctx context.Context, q ledger.ListQuery) (*ledger.DonationList, error)
	GetPublicProfile(ctx context.Context, username string) (*domain.PublicProfile, error)
	RegisterAccount(ctx context.Context, in ledger.RegisterAccountInput) (*domain.Account, error)
	SetDonationGoal(ctx context.Context, accountID string, goal *int64) (*domain.Account, error)
	GetAccount(ctx context.Context, accountID string) (*domain.Account, error)
}

// GatewayVerifier checks the shared secret a payment gateway presents.
type GatewayVerifier interface {
	VerifyGatewaySecret(ctx context.Context, method domain.PaymentMethod, presented string) (bool, error)
}

type App struct {
	Ledger   Ledger
	Gateways GatewayVerifier
	Logger   zerolog.Logger
	// Metrics serves the Prometheus exposition format. Nil disables /metrics.
	Metrics http.Handler
	// Ready reports store health for /v1/healthz. Nil means always ready.
	Ready func(ctx context.Context) error
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Fields  []fieldError `json:"fields,omitempty"`
}

type fieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]any{"error": errorBody{Code: code, Message: message}})
}

// fail maps a ledger error onto the HTTP error envelope with a localized
// message. Unexpected failures were already logged by the ledger; only the
// generic message leaves the process.
func (a *App) fail(w http.ResponseWriter, r *http.Request, err error) {
	locale := middleware.LocaleFromContext(r.Context())
	kind := domain.Kind(err)
	body := errorBody{Code: kind, Message: message(locale, kind)}

	status := http.StatusInternalServerError
	switch kind {
	case "validation":
		status = http.StatusBadRequest
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			for _, f := range verr.Fields {
				body.Fields = append(body.Fields, fieldError{Field: f.Field, Rule: f.Rule})
			}
		}
	case "not_found":
		status = http.StatusNotFound
	case "conflict":
		status = http.StatusConflict
		var conflict *domain.ConflictError
		if errors.As(err, &conflict) {
			body.Message = conflictMessage(locale, conflict.Field)
			body.Fields = []fieldError{{Field: conflict.Field, Rule: "unique"}}
		}
	case "invalid_state_transition":
		status = http.StatusConflict
	case "unauthorized":
		status = http.StatusUnauthorized
	default:
		body.Code = "internal"
		body.Message = message(locale, "unexpected")
		a.Logger.Error().Err(err).
			Str("request_id", middleware.RequestIDFromContext(r.Context())).
			Str("path", r.URL.Path).
			Msg("request failed")
	}
	a.json(w, status, map[string]any{"error": body})
}

// decode reads a JSON body into dst. Unknown fields are rejected so typos in
// optional fields do not go unnoticed.
func (a *App) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			a.error(w, http.StatusBadRequest, "bad_request", message(middleware.LocaleFromContext(r.Context()), "empty_body"))
			return false
		}
		a.error(w, http.StatusBadRequest, "bad_request", message(middleware.LocaleFromContext(r.Context()), "bad_request"))
		return false
	}
	return true
}

func (a *App) currentUserID(r *http.Request) string {
	return middleware.UserIDFromContext(r.Context())
}

// requireUser writes 401 and returns "" when no session account is present.
func (a *App) requireUser(w http.ResponseWriter, r *http.Request) string {
	id := a.currentUserID(r)
	if id == "" {
		a.fail(w, r, domain.ErrUnauthorized)
	}
	return id
}
