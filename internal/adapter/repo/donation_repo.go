package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"tipjar/internal/domain"
	"tipjar/internal/infra"
	"tipjar/internal/sqlinline"
)

// DonationRepositoryPG implements domain.DonationStore using PostgreSQL.
type DonationRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewDonationRepository creates a new donation repo.
func NewDonationRepository(sql infra.SQLExecutor) *DonationRepositoryPG {
	return &DonationRepositoryPG{sql: sql}
}

// Create inserts a pending donation in one statement that also checks the
// receiving account, so a concurrently removed account cannot leave an orphan.
func (r *DonationRepositoryPG) Create(ctx context.Context, donation *domain.Donation) error {
	row := r.sql.QueryRow(ctx, sqlinline.QInsertDonation,
		donation.ID,
		donation.AccountID,
		donation.Amount,
		donation.DonorName,
		donation.DonorEmail,
		donation.Message,
		string(donation.PaymentMethod),
		deref(donation.IdempotencyKey),
		donation.CreatedAt,
	)
	var (
		accountFound bool
		insertedID   *string
		recipient    *string
	)
	if err := row.Scan(&accountFound, &insertedID, &recipient); err != nil {
		return translate(err)
	}
	if !accountFound {
		return fmt.Errorf("account %s: %w", donation.AccountID, domain.ErrNotFound)
	}
	if insertedID == nil {
		return &domain.ConflictError{Field: "idempotencyKey"}
	}
	if recipient != nil {
		donation.RecipientName = *recipient
	}
	return nil
}

// GetByID returns one donation.
func (r *DonationRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Donation, error) {
	return scanDonationRow(r.sql.QueryRow(ctx, sqlinline.QSelectDonationByID, id))
}

// GetByIdempotencyKey returns the donation an account recorded under key.
func (r *DonationRepositoryPG) GetByIdempotencyKey(ctx context.Context, accountID, key string) (*domain.Donation, error) {
	return scanDonationRow(r.sql.QueryRow(ctx, sqlinline.QSelectDonationByIdempotencyKey, accountID, key))
}

// Transition applies a pending -> terminal move. When the conditional update
// matches nothing, the current status decides between not found and an
// invalid transition.
func (r *DonationRepositoryPG) Transition(ctx context.Context, id string, to domain.PaymentStatus, transactionID *string, at time.Time) (*domain.Donation, error) {
	updated, err := scanDonationRow(r.sql.QueryRow(ctx, sqlinline.QTransitionDonation, id, string(to), deref(transactionID), at))
	if err == nil {
		return updated, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	var current string
	if err := r.sql.QueryRow(ctx, sqlinline.QSelectDonationStatus, id).Scan(&current); err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, translate(err)
	}
	return nil, &domain.InvalidTransitionError{DonationID: id, From: domain.PaymentStatus(current), To: to}
}

// List returns one page of an account's donations, newest first.
func (r *DonationRepositoryPG) List(ctx context.Context, filter domain.DonationFilter) (*domain.DonationPage, error) {
	status := ""
	if filter.Status != nil {
		status = string(*filter.Status)
	}
	rows, err := r.sql.Query(ctx, sqlinline.QListDonations, filter.AccountID, status, filter.Limit, filter.Offset)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	page := &domain.DonationPage{Items: []domain.Donation{}}
	for rows.Next() {
		var total int64
		donation, err := scanDonation(rows, &total)
		if err != nil {
			return nil, err
		}
		page.Items = append(page.Items, *donation)
		page.Total = int(total)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err)
	}
	if len(page.Items) > 0 {
		return page, nil
	}

	// past the last page the window count is unavailable
	var total int64
	if err := r.sql.QueryRow(ctx, sqlinline.QCountDonations, filter.AccountID, status).Scan(&total); err != nil {
		if infra.IsNoRows(err) {
			return page, nil
		}
		return nil, translate(err)
	}
	page.Total = int(total)
	return page, nil
}

// Stats aggregates an account's donations in a single statement.
func (r *DonationRepositoryPG) Stats(ctx context.Context, accountID string, periodStart time.Time) (*domain.CreatorStats, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QCreatorStats, accountID, periodStart)
	stats := &domain.CreatorStats{AccountID: accountID}
	var donors, pending int64
	if err := row.Scan(&stats.DonationGoal, &stats.LifetimeTotal, &donors, &stats.CurrentPeriodTotal, &pending); err != nil {
		if infra.IsNoRows(err) {
			return nil, fmt.Errorf("account %s: %w", accountID, domain.ErrNotFound)
		}
		return nil, translate(err)
	}
	stats.DistinctDonorCount = int(donors)
	stats.PendingCount = int(pending)
	return stats, nil
}

func scanDonationRow(row pgx.Row) (*domain.Donation, error) {
	donation, err := scanDonation(row)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, translate(err)
	}
	return donation, nil
}

func scanDonation(row pgx.Row, extra ...any) (*domain.Donation, error) {
	var (
		d      domain.Donation
		method string
		status string
	)
	dest := []any{
		&d.ID,
		&d.AccountID,
		&d.Amount,
		&d.DonorName,
		&d.DonorEmail,
		&d.Message,
		&method,
		&status,
		&d.TransactionID,
		&d.IdempotencyKey,
		&d.CreatedAt,
		&d.UpdatedAt,
		&d.RecipientName,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	d.PaymentMethod = domain.PaymentMethod(method)
	d.PaymentStatus = domain.PaymentStatus(status)
	return &d, nil
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

var _ domain.DonationStore = (*DonationRepositoryPG)(nil)
