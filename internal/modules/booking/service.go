package booking

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"tripmate/internal/metrics"
)

// Service resolves booking contexts from stored bookings. Lookups never fail outward: any
// data-access problem is logged and reported as "no booking".
type Service struct {
	store *Store
	log   *zap.Logger
}

// NewService creates a Service backed by the given Store.
func NewService(store *Store, log *zap.Logger) *Service {
	return &Service{store: store, log: log.With(zap.String("component", "booking"))}
}

// LatestForUser returns the user's most recent booking as a Context, or false when none
// could be resolved.
func (s *Service) LatestForUser(ctx context.Context, userID string) (Context, bool) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Context{}, false
	}

	rec, err := s.store.LatestForUser(ctx, userID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			metrics.EnrichmentFailures.WithLabelValues("booking").Inc()
			s.log.Warn("booking lookup failed", zap.String("user_id", userID), zap.Error(err))
		}
		return Context{}, false
	}

	bc, err := NewContext(recordLocation(rec), rec.StartDate, rec.EndDate, DefaultPartyType, rec.Guests)
	if err != nil {
		s.log.Warn("stored booking is unusable", zap.String("user_id", userID), zap.Error(err))
		return Context{}, false
	}
	return bc, true
}

// recordLocation joins the non-empty parts of city, state and country.
func recordLocation(rec Record) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{rec.City, rec.State, rec.Country} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return "Unknown"
	}
	return strings.Join(parts, ", ")
}
