package economy

import (
	"context"
	"fmt"
	"sync"

	"github.com/osse101/Tycoon_Go/internal/domain"
	"github.com/osse101/Tycoon_Go/internal/event"
	"github.com/osse101/Tycoon_Go/internal/logger"
)

// Stats is a copy of the lifetime money flow
type Stats struct {
	Earned         map[string]int `json:"earned"`
	Spent          int            `json:"spent"`
	DebitsApproved uint64         `json:"debits_approved"`
	DebitsDeclined uint64         `json:"debits_declined"`
}

// Service owns the currency balance. TryDebit is the only purchase gate.
type Service interface {
	// Credit increases the balance by amount. Non-positive amounts are ignored.
	Credit(ctx context.Context, amount int, source string)

	// PassiveTick credits the configured per-interval income
	PassiveTick(ctx context.Context)

	// TryDebit subtracts amount if the balance covers it and reports success
	TryDebit(ctx context.Context, amount int) bool

	Balance() int
	Stats() Stats
}

// Option configures the economy service
type Option func(*service)

// WithPublisher publishes passive income events to p
func WithPublisher(p event.Publisher) Option {
	return func(s *service) {
		s.publisher = p
	}
}

type service struct {
	cfg       Config
	publisher event.Publisher

	mu       sync.Mutex
	balance  int
	earned   map[string]int
	spent    int
	approved uint64
	declined uint64
}

// NewService creates a new economy service
func NewService(cfg Config, opts ...Option) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("economy: %w", err)
	}

	s := &service{
		cfg:     cfg,
		balance: cfg.StartingBalance,
		earned:  make(map[string]int),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *service) Credit(ctx context.Context, amount int, source string) {
	if amount <= 0 {
		logger.FromContext(ctx).Debug(LogMsgCreditIgnored, "amount", amount, "source", source)
		return
	}

	s.mu.Lock()
	s.credit(amount, source)
	s.mu.Unlock()
}

// credit requires s.mu
func (s *service) credit(amount int, source string) int {
	s.balance += amount
	s.earned[source] += amount
	return s.balance
}

func (s *service) PassiveTick(ctx context.Context) {
	amount := s.cfg.PassiveIncomeAmount

	s.mu.Lock()
	balance := s.credit(amount, domain.SourcePassive)
	s.mu.Unlock()

	log := logger.FromContext(ctx)
	log.Debug(LogMsgPassiveIncome, "amount", amount, "balance", balance)

	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event.NewIncomePassiveEvent(amount, balance)); err != nil {
		log.Warn(LogMsgPublishFailed, "error", err)
	}
}

func (s *service) TryDebit(ctx context.Context, amount int) bool {
	if amount <= 0 {
		logger.FromContext(ctx).Debug(LogMsgDebitIgnored, "amount", amount)
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.balance < amount {
		s.declined++
		logger.FromContext(ctx).Debug(LogMsgDebitDeclined, "amount", amount, "balance", s.balance)
		return false
	}

	s.balance -= amount
	s.spent += amount
	s.approved++
	return true
}

func (s *service) Balance() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balance
}

func (s *service) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	earned := make(map[string]int, len(s.earned))
	for k, v := range s.earned {
		earned[k] = v
	}
	return Stats{
		Earned:         earned,
		Spent:          s.spent,
		DebitsApproved: s.approved,
		DebitsDeclined: s.declined,
	}
}
