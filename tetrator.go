package tetrator

import (
	"context"
	_ "embed"
	"errors"
	"log/slog"
	"math/big"
	"time"

	"github.com/aretw0/tetrator/internal/logging"
	"github.com/aretw0/tetrator/pkg/domain"
	"github.com/aretw0/tetrator/pkg/observability"
	"github.com/aretw0/tetrator/pkg/ports"
	"github.com/aretw0/tetrator/pkg/tetration"
)

// Version is the released version of tetrator.
//
//go:embed VERSION
var Version string

// ErrCorruptCacheEntry is reported when a cached decimal cannot be parsed back.
var ErrCorruptCacheEntry = errors.New("corrupt cache entry")

// Service evaluates tetration requests for every front end.
// It adds caching, metrics, logging and a size guard around pkg/tetration.
// Safe for concurrent use when the configured cache is.
type Service struct {
	evaluator tetration.Evaluator
	cache     ports.ResultCache
	metrics   *observability.Metrics
	logger    *slog.Logger
}

// Option defines a functional option for configuring the Service.
type Option func(*Service)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithCache stores finished evaluations in cache.
func WithCache(cache ports.ResultCache) Option {
	return func(s *Service) {
		s.cache = cache
	}
}

// WithMetrics records evaluations on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithMaxResultBits rejects towers whose next level needs more than bits bits.
// Zero (the default) disables the guard.
func WithMaxResultBits(bits uint64) Option {
	return func(s *Service) {
		s.evaluator.MaxBits = bits
	}
}

// New initializes a Service.
func New(opts ...Option) *Service {
	s := &Service{}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	return s
}

// Compute evaluates req, consulting the cache first.
// Failures are reported in Outcome.Err; overflow wraps tetration.ErrOverflow.
func (s *Service) Compute(ctx context.Context, req domain.Request) domain.Outcome {
	key := req.Key()

	if out, ok := s.fromCache(ctx, req, key); ok {
		s.metrics.Observe(outcomeLabel(out.Err), 0, out.Digits(), true)
		s.logger.Debug("Cache hit", "request", key)
		return out
	}

	start := time.Now()
	value, err := s.evaluator.Evaluate(&req.Base, &req.Height)
	out := domain.Outcome{
		Request: req,
		Value:   value,
		Elapsed: time.Since(start),
		Err:     err,
	}

	label := outcomeLabel(err)
	s.metrics.Observe(label, out.Elapsed, out.Digits(), false)

	switch label {
	case observability.OutcomeOK:
		s.logger.Debug("Tetration evaluated", "request", key, "digits", out.Digits(), "elapsed", out.Elapsed)
		s.store(ctx, key, domain.CacheEntry{Decimal: out.Decimal()})
	case observability.OutcomeOverflow:
		s.logger.Info("Tetration overflow", "request", key, "error", err)
		s.store(ctx, key, domain.CacheEntry{Overflow: true})
	default:
		// Size-limit rejections depend on configuration, so they are not cached.
		s.logger.Info("Tetration rejected", "request", key, "error", err)
	}

	return out
}

func (s *Service) fromCache(ctx context.Context, req domain.Request, key string) (domain.Outcome, bool) {
	if s.cache == nil {
		return domain.Outcome{}, false
	}

	entry, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			s.logger.Warn("Cache read failed", "request", key, "error", err)
		}
		return domain.Outcome{}, false
	}

	out := domain.Outcome{Request: req, Cached: true}
	if entry.Overflow {
		out.Err = tetration.ErrOverflow
		return out, true
	}

	value, ok := new(big.Int).SetString(entry.Decimal, 10)
	if !ok {
		s.logger.Warn("Ignoring cache entry", "request", key, "error", ErrCorruptCacheEntry)
		return domain.Outcome{}, false
	}
	out.Value = value
	return out, true
}

func (s *Service) store(ctx context.Context, key string, entry domain.CacheEntry) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Put(ctx, key, entry); err != nil {
		s.logger.Warn("Cache write failed", "request", key, "error", err)
	}
}

func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return observability.OutcomeOK
	case errors.Is(err, tetration.ErrOverflow):
		return observability.OutcomeOverflow
	case errors.Is(err, tetration.ErrResultTooLarge):
		return observability.OutcomeTooLarge
	default:
		return observability.OutcomeError
	}
}
