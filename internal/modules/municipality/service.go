package municipality

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Service caches the external municipality list for a fixed TTL. Concurrent
// callers that observe a stale or empty cache coordinate through a
// single-flight group so exactly one fetch runs; everyone waits for its
// result. A failed refresh leaves any previously cached list untouched and
// returns the error to the caller.
type Service struct {
	client Client
	ttl    time.Duration

	group singleflight.Group

	mu     sync.RWMutex
	cached []Municipality
	expiry time.Time
}

func NewService(client Client, ttl time.Duration) *Service {
	return &Service{client: client, ttl: ttl}
}

// IsValid reports whether code names a known municipality,
// case-insensitively. Empty input is invalid without touching the external
// source.
func (s *Service) IsValid(ctx context.Context, code string) (bool, error) {
	if strings.TrimSpace(code) == "" {
		return false, nil
	}
	if err := s.refreshIfStale(ctx); err != nil {
		return false, err
	}

	want := strings.ToUpper(code)
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.cached {
		if m.Code == want {
			return true, nil
		}
	}
	return false, nil
}

// GetAll returns the cached municipality list, refreshing it first if stale.
func (s *Service) GetAll(ctx context.Context) ([]Municipality, error) {
	if err := s.refreshIfStale(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Municipality, len(s.cached))
	copy(out, s.cached)
	return out, nil
}

func (s *Service) refreshIfStale(ctx context.Context) error {
	if !s.stale() {
		return nil
	}

	_, err, _ := s.group.Do("municipalities", func() (any, error) {
		// another caller may have refreshed while we queued
		if !s.stale() {
			return nil, nil
		}

		names, err := s.client.FetchNames(ctx)
		if err != nil {
			return nil, err
		}

		list := make([]Municipality, 0, len(names))
		for _, name := range names {
			list = append(list, NewMunicipality(name))
		}

		s.mu.Lock()
		s.cached = list
		s.expiry = time.Now().Add(s.ttl)
		s.mu.Unlock()
		return nil, nil
	})
	return err
}

func (s *Service) stale() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cached) == 0 || time.Now().After(s.expiry)
}
