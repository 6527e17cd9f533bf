package cms

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Source provides the raw collections a Catalog is built from.
type Source interface {
	Merchants(ctx context.Context) ([]Merchant, error)
	Coupons(ctx context.Context) ([]Coupon, error)
}

// Service loads catalogs from a Source and keeps the last good one.
// It is the primary interface consumed by the TUI.
type Service struct {
	src    Source
	logger *slog.Logger
	now    func() time.Time

	mu   sync.Mutex
	last *Catalog
}

type ServiceOption func(*Service)

func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) { s.logger = l }
}

// WithClock overrides time.Now for LoadedAt stamps.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(src Source, opts ...ServiceOption) *Service {
	s := &Service{src: src, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Last returns the last successfully loaded catalog, or nil.
func (s *Service) Last() *Catalog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Load fetches merchants and coupons concurrently. On failure it returns
// the last good catalog (or an empty one) together with the error, so
// callers can keep rendering.
func (s *Service) Load(ctx context.Context) (*Catalog, error) {
	if s.src == nil {
		return s.fallback(fmt.Errorf("loading catalog: %w", ErrNoBaseURL))
	}

	var (
		merchants []Merchant
		coupons   []Coupon
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		merchants, err = s.src.Merchants(gctx)
		if err != nil {
			return fmt.Errorf("loading merchants: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		coupons, err = s.src.Coupons(gctx)
		if err != nil {
			return fmt.Errorf("loading coupons: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return s.fallback(err)
	}

	cat := NewCatalog(merchants, coupons, s.now())
	s.mu.Lock()
	s.last = cat
	s.mu.Unlock()
	if s.logger != nil {
		s.logger.Info("catalog loaded", "merchants", len(cat.Merchants), "coupons", len(cat.Coupons))
	}
	return cat, nil
}

func (s *Service) fallback(err error) (*Catalog, error) {
	if s.logger != nil {
		s.logger.Warn("catalog load failed", "err", err)
	}
	if last := s.Last(); last != nil {
		return last, err
	}
	return NewCatalog(nil, nil, time.Time{}), err
}
