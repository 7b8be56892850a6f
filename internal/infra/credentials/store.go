// Package credentials stores the shared secrets payment gateways present when
// they report payment outcomes.
package credentials

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"tipjar/internal/domain"
	"tipjar/internal/infra"
	"tipjar/internal/sqlinline"
)

// ErrUnknownGateway is returned for a payment method outside the accepted set.
var ErrUnknownGateway = errors.New("unknown payment gateway")

type Store struct {
	sql infra.SQLExecutor
}

func NewStore(sql infra.SQLExecutor) *Store {
	return &Store{sql: sql}
}

// GatewaySecret returns the stored secret for method, or "" when none is set.
func (s *Store) GatewaySecret(ctx context.Context, method domain.PaymentMethod) (string, error) {
	if !method.Valid() {
		return "", ErrUnknownGateway
	}
	return s.Token(ctx, providerKey(method))
}

func (s *Store) Token(ctx context.Context, provider string) (string, error) {
	row := s.sql.QueryRow(ctx, sqlinline.QSelectIntegrationToken, provider)
	var token string
	if err := row.Scan(&token); err != nil {
		if infra.IsNoRows(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(token), nil
}

// SetGatewaySecret stores secret for method, replacing any previous value.
func (s *Store) SetGatewaySecret(ctx context.Context, method domain.PaymentMethod, secret string) error {
	if !method.Valid() {
		return ErrUnknownGateway
	}
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return fmt.Errorf("%s gateway secret is required", method)
	}
	return s.upsert(ctx, providerKey(method), secret, map[string]any{"payment_method": string(method)})
}

// VerifyGatewaySecret reports whether presented matches the stored secret.
// A method without a stored secret never verifies.
func (s *Store) VerifyGatewaySecret(ctx context.Context, method domain.PaymentMethod, presented string) (bool, error) {
	stored, err := s.GatewaySecret(ctx, method)
	if err != nil {
		return false, err
	}
	presented = strings.TrimSpace(presented)
	if stored == "" || presented == "" {
		return false, nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(presented)) == 1, nil
}

func (s *Store) upsert(ctx context.Context, provider, token string, props map[string]any) error {
	payload := props
	if payload == nil {
		payload = map[string]any{}
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = s.sql.Exec(ctx, sqlinline.QUpsertIntegrationToken, provider, token, raw)
	return err
}

func providerKey(method domain.PaymentMethod) string {
	return "gateway:" + string(method)
}
