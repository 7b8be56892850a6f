package credentials

import (
	"context"
	"crypto/subtle"
	"strings"

	"tipjar/internal/domain"
)

// Static verifies gateway secrets from a fixed map. It serves
// STORE_DRIVER=memory, where there is no integration_tokens table.
type Static map[domain.PaymentMethod]string

// ParseStatic reads "method=secret" pairs. Unknown methods are rejected.
func ParseStatic(pairs []string) (Static, error) {
	out := Static{}
	for _, pair := range pairs {
		method, secret, ok := strings.Cut(pair, "=")
		m := domain.PaymentMethod(strings.ToLower(strings.TrimSpace(method)))
		if !ok || !m.Valid() {
			return nil, ErrUnknownGateway
		}
		if secret = strings.TrimSpace(secret); secret != "" {
			out[m] = secret
		}
	}
	return out, nil
}

func (s Static) VerifyGatewaySecret(_ context.Context, method domain.PaymentMethod, presented string) (bool, error) {
	if !method.Valid() {
		return false, ErrUnknownGateway
	}
	stored := s[method]
	presented = strings.TrimSpace(presented)
	if stored == "" || presented == "" {
		return false, nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(presented)) == 1, nil
}
