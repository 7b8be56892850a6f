package repo

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"tipjar/internal/domain"
	"tipjar/internal/infra"
	"tipjar/internal/sqlinline"
)

// AccountRepositoryPG implements domain.AccountRepository backed by PostgreSQL.
type AccountRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewAccountRepository creates a new AccountRepositoryPG.
func NewAccountRepository(sql infra.SQLExecutor) *AccountRepositoryPG {
	return &AccountRepositoryPG{sql: sql}
}

// Create inserts a new account. Duplicate usernames or emails surface as
// *domain.ConflictError through the table's unique constraints.
func (r *AccountRepositoryPG) Create(ctx context.Context, account *domain.Account) error {
	_, err := r.sql.Exec(ctx, sqlinline.QInsertAccount,
		account.ID,
		account.Username,
		account.Email,
		account.Name,
		account.Image,
		account.Bio,
		account.DonationGoal,
		account.PromptPayID,
		account.BankAccount,
		account.CreatedAt,
	)
	return translate(err)
}

// GetByID fetches an account by UUID.
func (r *AccountRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	return scanAccount(r.sql.QueryRow(ctx, sqlinline.QSelectAccountByID, id))
}

// GetByUsername fetches an account by its public handle.
func (r *AccountRepositoryPG) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	return scanAccount(r.sql.QueryRow(ctx, sqlinline.QSelectAccountByUsername, username))
}

// UpdateGoal sets or clears the donation goal.
func (r *AccountRepositoryPG) UpdateGoal(ctx context.Context, id string, goal *int64, at time.Time) (*domain.Account, error) {
	return scanAccount(r.sql.QueryRow(ctx, sqlinline.QUpdateAccountGoal, id, goal, at))
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	if err := row.Scan(
		&a.ID,
		&a.Username,
		&a.Email,
		&a.Name,
		&a.Image,
		&a.Bio,
		&a.DonationGoal,
		&a.PromptPayID,
		&a.BankAccount,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, translate(err)
	}
	return &a, nil
}

var _ domain.AccountRepository = (*AccountRepositoryPG)(nil)
