package credentials

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"tipjar/internal/domain"
)

type stubExecutor struct {
	token string
	err   error
	query struct {
		args []any
	}
	exec struct {
		query string
		args  []any
	}
}

func (s *stubExecutor) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	s.exec.query = query
	s.exec.args = args
	return pgconn.CommandTag{}, s.err
}

func (s *stubExecutor) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	s.query.args = args
	return stubRow{token: s.token, err: s.err}
}

func (s *stubExecutor) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

type stubRow struct {
	token string
	err   error
}

func (r stubRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) == 0 {
		return errors.New("no dest")
	}
	ptr, ok := dest[0].(*string)
	if !ok {
		return errors.New("invalid dest")
	}
	*ptr = r.token
	return nil
}

func TestGatewaySecret(t *testing.T) {
	exec := &stubExecutor{token: " s3cret "}
	store := NewStore(exec)
	secret, err := store.GatewaySecret(context.Background(), domain.PaymentMethodPromptPay)
	if err != nil {
		t.Fatalf("GatewaySecret error: %v", err)
	}
	if secret != "s3cret" {
		t.Fatalf("expected s3cret, got %q", secret)
	}
	if len(exec.query.args) != 1 || exec.query.args[0] != "gateway:promptpay" {
		t.Fatalf("unexpected lookup args: %#v", exec.query.args)
	}
}

func TestGatewaySecret_NoRows(t *testing.T) {
	store := NewStore(&stubExecutor{err: pgx.ErrNoRows})
	secret, err := store.GatewaySecret(context.Background(), domain.PaymentMethodLinePay)
	if err != nil {
		t.Fatalf("GatewaySecret error: %v", err)
	}
	if secret != "" {
		t.Fatalf("expected empty secret, got %q", secret)
	}
}

func TestGatewaySecret_UnknownMethod(t *testing.T) {
	store := NewStore(&stubExecutor{})
	if _, err := store.GatewaySecret(context.Background(), domain.PaymentMethod("paypal")); !errors.Is(err, ErrUnknownGateway) {
		t.Fatalf("expected ErrUnknownGateway, got %v", err)
	}
}

func TestSetGatewaySecret(t *testing.T) {
	exec := &stubExecutor{}
	store := NewStore(exec)
	if err := store.SetGatewaySecret(context.Background(), domain.PaymentMethodTrueMoney, "secret"); err != nil {
		t.Fatalf("SetGatewaySecret error: %v", err)
	}
	if len(exec.exec.args) != 3 {
		t.Fatalf("expected 3 args, got %d", len(exec.exec.args))
	}
	if v, ok := exec.exec.args[0].(string); !ok || v != "gateway:truemoney" {
		t.Fatalf("expected provider argument, got %T %v", exec.exec.args[0], exec.exec.args[0])
	}
	if v, ok := exec.exec.args[1].(string); !ok || v != "secret" {
		t.Fatalf("expected secret argument, got %T %v", exec.exec.args[1], exec.exec.args[1])
	}
}

func TestSetGatewaySecretEmpty(t *testing.T) {
	store := NewStore(&stubExecutor{})
	if err := store.SetGatewaySecret(context.Background(), domain.PaymentMethodPromptPay, " "); err == nil {
		t.Fatal("expected error for empty secret")
	}
}

func TestVerifyGatewaySecret(t *testing.T) {
	store := NewStore(&stubExecutor{token: "s3cret"})
	ok, err := store.VerifyGatewaySecret(context.Background(), domain.PaymentMethodPromptPay, "s3cret")
	if err != nil || !ok {
		t.Fatalf("expected match, got ok=%v err=%v", ok, err)
	}
	ok, err = store.VerifyGatewaySecret(context.Background(), domain.PaymentMethodPromptPay, "wrong")
	if err != nil || ok {
		t.Fatalf("expected mismatch, got ok=%v err=%v", ok, err)
	}
}

func TestVerifyGatewaySecretWithoutStoredSecret(t *testing.T) {
	store := NewStore(&stubExecutor{err: pgx.ErrNoRows})
	ok, err := store.VerifyGatewaySecret(context.Background(), domain.PaymentMethodPromptPay, "")
	if err != nil || ok {
		t.Fatalf("expected no match, got ok=%v err=%v", ok, err)
	}
}
