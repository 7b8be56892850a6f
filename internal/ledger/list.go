package ledger

import (
	"context"
	"math"
	"strings"

	"tipjar/internal/domain"
)

// ListQuery selects one page of a creator's donations.
type ListQuery struct {
	AccountID string
	Page      int
	PageSize  int
	Status    string
}

// DonationList is a page of donations with its pagination numbers.
type DonationList struct {
	Items      []domain.Donation
	Page       int
	PageSize   int
	Total      int
	TotalPages int
}

// ListDonations pages through one account's donations, newest first. Page
// and page size default to 1 and DefaultPageSize; page size is capped.
func (s *Service) ListDonations(ctx context.Context, q ListQuery) (*DonationList, error) {
	q.AccountID = strings.TrimSpace(q.AccountID)
	if q.AccountID == "" {
		return nil, s.fail("list_donations", domain.NewValidationError("accountId", "required"))
	}
	if q.Page == 0 {
		q.Page = 1
	}
	if q.PageSize == 0 {
		q.PageSize = DefaultPageSize
	}
	if q.Page < 1 {
		return nil, s.fail("list_donations", domain.NewValidationError("page", "min"))
	}
	if q.PageSize < 1 {
		return nil, s.fail("list_donations", domain.NewValidationError("pageSize", "min"))
	}
	if q.PageSize > s.maxPageSize {
		q.PageSize = s.maxPageSize
	}

	filter := domain.DonationFilter{
		AccountID: q.AccountID,
		Limit:     q.PageSize,
		Offset:    pageOffset(q.Page, q.PageSize),
	}
	if status := strings.TrimSpace(q.Status); status != "" {
		st := domain.PaymentStatus(strings.ToLower(status))
		if !st.Valid() {
			return nil, s.fail("list_donations", domain.NewValidationError("status", "oneof"))
		}
		filter.Status = &st
	}

	page, err := s.donations.List(ctx, filter)
	if err != nil {
		return nil, s.fail("list_donations", err)
	}
	return &DonationList{
		Items:      page.Items,
		Page:       q.Page,
		PageSize:   q.PageSize,
		Total:      page.Total,
		TotalPages: (page.Total + q.PageSize - 1) / q.PageSize,
	}, nil
}

// maxOffset is past any real result set; larger pages read as empty.
const maxOffset = math.MaxInt32

func pageOffset(page, pageSize int) int {
	if page-1 > maxOffset/pageSize {
		return maxOffset
	}
	return (page - 1) * pageSize
}
