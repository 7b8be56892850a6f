// Package ledger is the donation lifecycle and aggregation engine: it creates
// donation records, applies payment outcomes and derives creator statistics.
package ledger

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"tipjar/internal/domain"
	"tipjar/internal/metrics"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100

	// MaxDonationAmount bounds a single donation in baht. Keep in sync with
	// the amount validate tag and donations_amount_max.
	MaxDonationAmount int64 = 100_000_000
)

// Service implements the donation ledger on top of an account repository and
// a donation store. It holds no mutable state of its own.
type Service struct {
	accounts    domain.AccountRepository
	donations   domain.DonationStore
	metrics     *metrics.Metrics
	logger      zerolog.Logger
	validate    *validator.Validate
	now         func() time.Time
	newID       func() string
	maxPageSize int
}

// Option customizes a Service.
type Option func(*Service)

// WithLogger sets the logger used for unexpected failures.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithMetrics sets the Prometheus counters.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides how record ids are minted.
func WithIDGenerator(gen func() string) Option {
	return func(s *Service) { s.newID = gen }
}

// WithMaxPageSize caps ListDonations page sizes.
func WithMaxPageSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxPageSize = n
		}
	}
}

func New(accounts domain.AccountRepository, donations domain.DonationStore, opts ...Option) *Service {
	s := &Service{
		accounts:    accounts,
		donations:   donations,
		logger:      zerolog.Nop(),
		validate:    newValidator(),
		now:         func() time.Time { return time.Now().UTC() },
		newID:       uuid.NewString,
		maxPageSize: MaxPageSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// fail classifies err, counts it and returns the error handed to callers.
// Anything outside the domain taxonomy is logged and wrapped as unexpected.
func (s *Service) fail(op string, err error) error {
	kind := domain.Kind(err)
	if kind == "" {
		s.logger.Error().Err(err).Str("op", op).Msg("ledger operation failed")
		err = domain.Unexpected(op, err)
		kind = "unexpected"
	}
	s.metrics.LedgerError(kind)
	return err
}
