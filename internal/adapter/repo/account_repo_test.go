package repo

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"tipjar/internal/domain"
	"tipjar/internal/sqlinline"
)

func accountValues(goal *int64) []any {
	return []any{
		"acct-1", "creator_1", "creator@example.com", "Creator", "", "bio", goal,
		"0812345678", "", testTime, testTime,
	}
}

func TestAccountGetByUsername(t *testing.T) {
	sql := newScriptedSQL()
	goal := int64(1000)
	sql.rows[marker(sqlinline.QSelectAccountByUsername)] = func(args []any) ([]any, error) {
		if args[0] != "creator_1" {
			t.Fatalf("unexpected username arg %#v", args[0])
		}
		return accountValues(&goal), nil
	}
	acct, err := NewAccountRepository(sql).GetByUsername(context.Background(), "creator_1")
	if err != nil {
		t.Fatalf("GetByUsername error: %v", err)
	}
	if acct.ID != "acct-1" || acct.DonationGoal == nil || *acct.DonationGoal != 1000 {
		t.Fatalf("unexpected account: %+v", acct)
	}
}

func TestAccountGetByIDNotFound(t *testing.T) {
	sql := newScriptedSQL()
	sql.rows[marker(sqlinline.QSelectAccountByID)] = func([]any) ([]any, error) { return nil, nil }
	if _, err := NewAccountRepository(sql).GetByID(context.Background(), "acct-x"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAccountGetByIDMalformedUUID(t *testing.T) {
	sql := newScriptedSQL()
	sql.rows[marker(sqlinline.QSelectAccountByID)] = func([]any) ([]any, error) {
		return nil, &pgconn.PgError{Code: pgInvalidTextRepr}
	}
	if _, err := NewAccountRepository(sql).GetByID(context.Background(), "not-a-uuid"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAccountCreateConflict(t *testing.T) {
	tests := []struct {
		constraint string
		field      string
	}{
		{"accounts_username_key", "username"},
		{"accounts_email_key", "email"},
	}
	for _, tc := range tests {
		t.Run(tc.field, func(t *testing.T) {
			sql := newScriptedSQL()
			sql.exec = func(string, []any) error {
				return &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: tc.constraint}
			}
			err := NewAccountRepository(sql).Create(context.Background(), &domain.Account{ID: "acct-1"})
			var conflict *domain.ConflictError
			if !errors.As(err, &conflict) || conflict.Field != tc.field {
				t.Fatalf("expected %s conflict, got %v", tc.field, err)
			}
		})
	}
}

func TestAccountCreateBindsArguments(t *testing.T) {
	sql := newScriptedSQL()
	var bound []any
	sql.exec = func(_ string, args []any) error {
		bound = args
		return nil
	}
	goal := int64(500)
	err := NewAccountRepository(sql).Create(context.Background(), &domain.Account{
		ID:           "acct-1",
		Username:     "creator_1",
		Email:        "creator@example.com",
		DonationGoal: &goal,
		CreatedAt:    testTime,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if len(bound) != 10 {
		t.Fatalf("expected 10 args, got %d", len(bound))
	}
	if g, ok := bound[6].(*int64); !ok || *g != 500 {
		t.Fatalf("goal arg = %#v", bound[6])
	}
}

func TestTranslatePassesThroughUnknownErrors(t *testing.T) {
	plain := errors.New("connection reset")
	if got := translate(plain); got != plain {
		t.Fatalf("translate changed plain error: %v", got)
	}
	if got := translate(nil); got != nil {
		t.Fatalf("translate(nil) = %v", got)
	}
	var verr *domain.ValidationError
	if !errors.As(translate(&pgconn.PgError{Code: pgCheckViolation, ConstraintName: "donations_amount_positive"}), &verr) {
		t.Fatal("expected check violation to become a validation error")
	}
}
