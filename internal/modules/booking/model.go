// README: Booking context, preferences and their request-side alias parsing.
package booking

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	dateLayout       = "2006-01-02"
	DefaultPartyType = "family"
	DefaultBudget    = "$$"
)

var (
	ErrNotFound       = errors.New("booking not found")
	ErrInvalidBooking = errors.New("invalid booking")
)

// Context is the resolved trip a plan is generated for. It is built through NewContext and
// only ever passed by value.
type Context struct {
	Location  string
	StartDate time.Time
	EndDate   time.Time
	PartyType string
	Guests    int
}

// NewContext validates and defaults a booking. Dates are truncated to calendar days in UTC.
func NewContext(location string, start, end time.Time, partyType string, guests int) (Context, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return Context{}, fmt.Errorf("%w: location is required", ErrInvalidBooking)
	}
	if start.IsZero() || end.IsZero() {
		return Context{}, fmt.Errorf("%w: start_date and end_date are required", ErrInvalidBooking)
	}
	start, end = truncateDay(start), truncateDay(end)
	if end.Before(start) {
		return Context{}, fmt.Errorf("%w: end_date %s is before start_date %s", ErrInvalidBooking, end.Format(dateLayout), start.Format(dateLayout))
	}
	partyType = strings.TrimSpace(partyType)
	if partyType == "" {
		partyType = DefaultPartyType
	}
	if guests <= 0 {
		guests = 1
	}
	return Context{
		Location:  location,
		StartDate: start,
		EndDate:   end,
		PartyType: partyType,
		Guests:    guests,
	}, nil
}

// Dates lists every day from StartDate through EndDate inclusive as ISO strings.
// It allocates the whole range; use DayAt when only a few positions are needed.
func (c Context) Dates() []string {
	if c.StartDate.IsZero() || c.EndDate.Before(c.StartDate) {
		return nil
	}
	n := c.Span() + 1
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, c.DayAt(i))
	}
	return out
}

// Span is the number of whole days from StartDate to EndDate.
func (c Context) Span() int {
	if c.EndDate.Before(c.StartDate) {
		return 0
	}
	return int((c.EndDate.Unix() - c.StartDate.Unix()) / secondsPerDay)
}

// DayAt is the ISO date of the idx-th trip day, clamped to the booking range.
func (c Context) DayAt(idx int) string {
	idx = min(max(idx, 0), c.Span())
	return c.StartDate.AddDate(0, 0, idx).Format(dateLayout)
}

// Start is the ISO start date.
func (c Context) Start() string { return c.StartDate.Format(dateLayout) }

// End is the ISO end date.
func (c Context) End() string { return c.EndDate.Format(dateLayout) }

func (c Context) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Location  string `json:"location"`
		StartDate string `json:"start_date"`
		EndDate   string `json:"end_date"`
		PartyType string `json:"party_type"`
		Guests    int    `json:"guests"`
	}{c.Location, c.Start(), c.End(), c.PartyType, c.Guests})
}

// Input is the request shape of a booking; both snake_case and camelCase names are accepted.
type Input struct {
	Location       string `json:"location"`
	StartDate      string `json:"start_date"`
	StartDateCamel string `json:"startDate"`
	EndDate        string `json:"end_date"`
	EndDateCamel   string `json:"endDate"`
	PartyType      string `json:"party_type"`
	PartyTypeCamel string `json:"partyType"`
	Guests         *int   `json:"guests"`
}

// Context validates the input into a booking Context.
func (in Input) Context() (Context, error) {
	start, err := ParseDate(firstNonBlank(in.StartDate, in.StartDateCamel))
	if err != nil {
		return Context{}, fmt.Errorf("%w: start_date: %v", ErrInvalidBooking, err)
	}
	end, err := ParseDate(firstNonBlank(in.EndDate, in.EndDateCamel))
	if err != nil {
		return Context{}, fmt.Errorf("%w: end_date: %v", ErrInvalidBooking, err)
	}
	guests := 1
	if in.Guests != nil {
		guests = *in.Guests
	}
	return NewContext(in.Location, start, end, firstNonBlank(in.PartyType, in.PartyTypeCamel), guests)
}

// ParseDate accepts YYYY-MM-DD or any timestamp starting with one (RFC 3339 and friends).
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("missing date")
	}
	if len(s) > len(dateLayout) {
		s = s[:len(dateLayout)]
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected YYYY-MM-DD, got %q", s)
	}
	return t, nil
}

// Preferences are advisory hints passed to the prompt unmodified.
type Preferences struct {
	BudgetTier    string   `json:"budget_tier"`
	Interests     []string `json:"interests"`
	MobilityNeeds []string `json:"mobility_needs"`
	Dietary       []string `json:"dietary"`
}

// DefaultPreferences is the neutral preference set.
func DefaultPreferences() Preferences {
	return Preferences{
		BudgetTier:    DefaultBudget,
		Interests:     []string{},
		MobilityNeeds: []string{},
		Dietary:       []string{},
	}
}

// PreferencesInput mirrors Preferences with every accepted alias.
type PreferencesInput struct {
	BudgetTier         string   `json:"budget_tier"`
	BudgetTierCamel    string   `json:"budgetTier"`
	Budget             string   `json:"budget"`
	Interests          []string `json:"interests"`
	InterestTags       []string `json:"interestTags"`
	MobilityNeeds      []string `json:"mobility_needs"`
	MobilityNeedsCamel []string `json:"mobilityNeeds"`
	Dietary            []string `json:"dietary"`
	DietaryFilters     []string `json:"dietaryFilters"`
}

// Preferences resolves aliases; a nil receiver yields the defaults.
func (in *PreferencesInput) Preferences() Preferences {
	p := DefaultPreferences()
	if in == nil {
		return p
	}
	if b := firstNonBlank(in.BudgetTier, in.BudgetTierCamel, in.Budget); b != "" {
		p.BudgetTier = b
	}
	p.Interests = firstList(in.Interests, in.InterestTags)
	p.MobilityNeeds = firstList(in.MobilityNeeds, in.MobilityNeedsCamel)
	p.Dietary = firstList(in.Dietary, in.DietaryFilters)
	return p
}

const secondsPerDay = 24 * 60 * 60

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

func firstList(lists ...[]string) []string {
	for _, l := range lists {
		if l != nil {
			return l
		}
	}
	return []string{}
}
