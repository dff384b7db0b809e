// README: Booking persistence (read-only); latest booking per user joined with its property.
package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Record is one booking row joined with the booked property's location.
type Record struct {
	StartDate time.Time
	EndDate   time.Time
	Guests    int
	City      string
	State     string
	Country   string
}

// Store reads bookings from the marketplace database.
type Store struct {
	db *sql.DB
}

// NewStore returns a Store backed by db.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

const latestBookingQuery = `
	SELECT b."startDate", b."endDate", b.guests, p.city, p.state, p.country
	FROM "Booking" b
	JOIN "Property" p ON p.id = b."propertyId"
	WHERE b."userId" = $1
	ORDER BY b."createdAt" DESC
	LIMIT 1
`

// LatestForUser returns the most recently created booking of userID, or ErrNotFound.
func (s *Store) LatestForUser(ctx context.Context, userID string) (Record, error) {
	if s == nil || s.db == nil {
		return Record{}, errors.New("booking store: no database configured")
	}

	var (
		rec                  Record
		guests               sql.NullInt64
		city, state, country sql.NullString
	)
	err := s.db.QueryRowContext(ctx, latestBookingQuery, userID).
		Scan(&rec.StartDate, &rec.EndDate, &guests, &city, &state, &country)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("booking store: latest for user: %w", err)
	}

	rec.Guests = int(guests.Int64)
	rec.City, rec.State, rec.Country = city.String, state.String, country.String
	return rec, nil
}
