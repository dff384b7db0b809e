package itinerary

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripmate/internal/modules/booking"
)

func mustBooking(t *testing.T, start, end string) booking.Context {
	t.Helper()
	s, err := booking.ParseDate(start)
	require.NoError(t, err)
	e, err := booking.ParseDate(end)
	require.NoError(t, err)
	bc, err := booking.NewContext("Lisbon, Portugal", s, e, "", 2)
	require.NoError(t, err)
	return bc
}

// decode mimics how the planner receives LLM output.
func decode(t *testing.T, s string) map[string]any {
	t.Helper()
	var raw map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &raw))
	return raw
}

func TestNormalizeEmptyRawYieldsSingleFallbackDay(t *testing.T) {
	bc := mustBooking(t, "2025-09-10", "2025-09-13")

	for name, raw := range map[string]map[string]any{
		"nil":       nil,
		"empty":     {},
		"malformed": decode(t, `{"itinerary": "soon", "days": null, "restaurants": null, "meta": [1]}`),
		"bad days":  decode(t, `{"itinerary": [1, "x", null, {"blocks": []}, {"morning": null}]}`),
	} {
		t.Run(name, func(t *testing.T) {
			out, injected := EnsureItinerary(Normalize(raw, bc), bc)
			assert.True(t, injected)
			require.Len(t, out.Itinerary, 1)
			day := out.Itinerary[0]
			assert.Equal(t, "2025-09-10", day.Date)
			require.Len(t, day.Blocks, 1)
			assert.Equal(t, BlockMorning, day.Blocks[0].Block)
			require.Len(t, day.Blocks[0].Activities, 1)
			assert.Equal(t, FallbackActivity, day.Blocks[0].Activities[0].Title)
			assert.NotNil(t, out.Meta)
			assert.NoError(t, ValidateOutput(out))
		})
	}
}

func TestEnsureItineraryKeepsExistingDays(t *testing.T) {
	bc := mustBooking(t, "2025-09-10", "2025-09-10")
	out := Normalize(decode(t, `{"itinerary": [{"morning": "Tram 28"}]}`), bc)

	got, injected := EnsureItinerary(out, bc)
	assert.False(t, injected)
	assert.Equal(t, out, got)
}

func TestNormalizeExplicitBlocks(t *testing.T) {
	bc := mustBooking(t, "2025-09-10", "2025-09-11")
	raw := decode(t, `{
		"itinerary": [{
			"date": "2025-09-10",
			"blocks": [
				{"block": "Morning", "activities": [{"title": "Belem Tower", "tags": ["history"]}]},
				{"block": "", "activities": "Pasteis de Belem"},
				{"block": "late night", "activities": ["Fado show"]},
				{"block": "evening", "activities": []},
				"not a block"
			]
		}]
	}`)

	out := Normalize(raw, bc)
	require.Len(t, out.Itinerary, 1)
	blocks := out.Itinerary[0].Blocks
	require.Len(t, blocks, 3)
	assert.Equal(t, BlockMorning, blocks[0].Block)
	assert.Equal(t, "Belem Tower", blocks[0].Activities[0].Title)
	assert.Equal(t, []string{"history"}, blocks[0].Activities[0].Tags)
	assert.Equal(t, BlockMorning, blocks[1].Block)
	assert.Equal(t, "Pasteis de Belem", blocks[1].Activities[0].Title)
	assert.Equal(t, BlockMorning, blocks[2].Block, "unknown labels fall back to morning")
	assert.NoError(t, ValidateOutput(out))
}

func TestNormalizeNamedBlockKeys(t *testing.T) {
	bc := mustBooking(t, "2025-09-10", "2025-09-11")
	raw := decode(t, `{
		"days": [
			{"evening": {"name": "Sunset at Miradouro"}, "morning": ["Alfama walk", "Se Cathedral"]},
			{"afternoon": "LX Factory"}
		]
	}`)

	out := Normalize(raw, bc)
	require.Len(t, out.Itinerary, 2)

	first := out.Itinerary[0]
	require.Len(t, first.Blocks, 2)
	names := []string{first.Blocks[0].Block, first.Blocks[1].Block}
	assert.ElementsMatch(t, []string{BlockMorning, BlockEvening}, names)
	for _, b := range first.Blocks {
		if b.Block == BlockMorning {
			require.Len(t, b.Activities, 2)
			assert.Equal(t, "Alfama walk", b.Activities[0].Title)
			assert.Equal(t, "Se Cathedral", b.Activities[1].Title)
		}
	}

	second := out.Itinerary[1]
	require.Len(t, second.Blocks, 1)
	assert.Equal(t, BlockAfternoon, second.Blocks[0].Block)
	assert.Equal(t, "2025-09-11", second.Date)
}

func TestNormalizeDayDateFallback(t *testing.T) {
	bc := mustBooking(t, "2025-09-10", "2025-09-12")
	raw := decode(t, `{"plan": [
		{"morning": "a"}, {"morning": "b"}, {"morning": "c"}, {"morning": "d"}, {"morning": "e"}
	]}`)

	out := Normalize(raw, bc)
	require.Len(t, out.Itinerary, 5)
	got := make([]string, 0, 5)
	for _, d := range out.Itinerary {
		got = append(got, d.Date)
	}
	assert.Equal(t, []string{"2025-09-10", "2025-09-11", "2025-09-12", "2025-09-12", "2025-09-12"}, got)
}

func TestNormalizeVeryLongBooking(t *testing.T) {
	bc := mustBooking(t, "0002-01-01", "9999-12-31")

	out, injected := EnsureItinerary(Normalize(map[string]any{}, bc), bc)
	assert.True(t, injected)
	require.Len(t, out.Itinerary, 1)
	assert.Equal(t, "0002-01-01", out.Itinerary[0].Date)

	out = Normalize(decode(t, `{"days": [{"morning": "a"}, {"evening": "b"}]}`), bc)
	require.Len(t, out.Itinerary, 2)
	assert.Equal(t, "0002-01-01", out.Itinerary[0].Date)
	assert.Equal(t, "0002-01-02", out.Itinerary[1].Date)
}

func TestNormalizeExplicitDateWins(t *testing.T) {
	bc := mustBooking(t, "2025-09-10", "2025-09-12")
	raw := decode(t, `{"itinerary": [{"date": "2025-09-12", "morning": "x"}, {"date": "", "morning": "y"}]}`)

	out := Normalize(raw, bc)
	require.Len(t, out.Itinerary, 2)
	assert.Equal(t, "2025-09-12", out.Itinerary[0].Date)
	assert.Equal(t, "2025-09-11", out.Itinerary[1].Date, "blank date falls back to position")
}

func TestNormalizeSkipsDaysWithoutActivities(t *testing.T) {
	bc := mustBooking(t, "2025-09-10", "2025-09-12")
	raw := decode(t, `{"itinerary": [{"notes": "rest day"}, {"morning": "x"}]}`)

	out := Normalize(raw, bc)
	require.Len(t, out.Itinerary, 1)
	assert.Equal(t, "2025-09-11", out.Itinerary[0].Date, "position counts skipped entries")
}

func TestCoerceActivityTitles(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want []string
	}{
		{"name alias", map[string]any{"name": "Sunset Cruise"}, []string{"Sunset Cruise"}},
		{"activity alias", map[string]any{"activity": "Kayaking"}, []string{"Kayaking"}},
		{"blank title falls through", map[string]any{"title": " ", "name": "Ferry"}, []string{"Ferry"}},
		{"no title", map[string]any{"address": "Rua Augusta"}, []string{PlaceholderTitle}},
		{"number", float64(42), []string{"42"}},
		{"string", "Tram 28", []string{"Tram 28"}},
		{"blank string", "  ", []string{PlaceholderTitle}},
		{"bool", true, []string{"true"}},
		{"nil", nil, nil},
		{"nested list", []any{"a", []any{"b", nil, map[string]any{"title": "c"}}}, []string{"a", "b", "c"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := coerceActivities(tc.in)
			var titles []string
			for _, c := range got {
				assert.NotEmpty(t, c.Title)
				assert.NotNil(t, c.Tags)
				titles = append(titles, c.Title)
			}
			assert.Equal(t, tc.want, titles)
		})
	}
}

func TestCoerceActivityFieldAliases(t *testing.T) {
	in := map[string]any{
		"name":         "Oceanario",
		"location":     "Esplanada Dom Carlos I",
		"geo":          map[string]any{"lat": 38.7635, "lon": -9.0937},
		"price":        "$$",
		"duration":     "120",
		"tags":         []any{"kids", 3, nil, ""},
		"wheelchair":   "yes",
		"kid_friendly": true,
		"link":         "https://www.oceanario.pt",
	}

	got := coerceActivities(in)
	require.Len(t, got, 1)
	c := got[0]
	assert.Equal(t, "Oceanario", c.Title)
	require.NotNil(t, c.Address)
	assert.Equal(t, "Esplanada Dom Carlos I", *c.Address)
	require.NotNil(t, c.Lat)
	assert.InDelta(t, 38.7635, *c.Lat, 1e-9)
	require.NotNil(t, c.Lon)
	assert.InDelta(t, -9.0937, *c.Lon, 1e-9)
	require.NotNil(t, c.PriceTier)
	assert.Equal(t, "$$", *c.PriceTier)
	require.NotNil(t, c.DurationMinutes)
	assert.Equal(t, 120, *c.DurationMinutes)
	assert.Equal(t, []string{"kids", "3"}, c.Tags)
	require.NotNil(t, c.WheelchairFriendly)
	assert.True(t, *c.WheelchairFriendly)
	require.NotNil(t, c.ChildFriendly)
	assert.True(t, *c.ChildFriendly)
	require.NotNil(t, c.URL)
	assert.Equal(t, "https://www.oceanario.pt", *c.URL)
}

func TestCoerceActivityIdempotentOnWellFormedInput(t *testing.T) {
	in := decode(t, `{
		"title": "Jeronimos Monastery",
		"address": "Praca do Imperio",
		"lat": 38.6979,
		"lon": -9.2068,
		"price_tier": "$",
		"duration_minutes": 90,
		"tags": ["history", "architecture"],
		"wheelchair_friendly": false,
		"child_friendly": true,
		"url": "https://example.org/jeronimos"
	}`)

	first := coerceActivities(in)
	require.Len(t, first, 1)

	b, err := json.Marshal(first[0])
	require.NoError(t, err)
	var roundTrip map[string]any
	require.NoError(t, json.Unmarshal(b, &roundTrip))
	assert.Equal(t, in, roundTrip)

	second := coerceActivities(roundTrip)
	assert.Equal(t, first, second)
}

func TestCoerceActivityDropsInvalidValues(t *testing.T) {
	got := coerceActivities(map[string]any{
		"title":               "Bad data",
		"lat":                 123.0,
		"lon":                 "east",
		"duration_minutes":    -5.0,
		"tags":                map[string]any{"a": 1},
		"wheelchair_friendly": "maybe",
		"child_friendly":      nil,
		"kid_friendly":        0.0,
		"url":                 []any{"x"},
	})
	require.Len(t, got, 1)
	c := got[0]
	assert.Nil(t, c.Lat)
	assert.Nil(t, c.Lon)
	assert.Nil(t, c.DurationMinutes)
	assert.Equal(t, []string{}, c.Tags)
	assert.Nil(t, c.WheelchairFriendly)
	require.NotNil(t, c.ChildFriendly, "null child_friendly falls through to kid_friendly")
	assert.False(t, *c.ChildFriendly)
	assert.Nil(t, c.URL)
}

func TestCoercePacking(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"mixed", `["hat", {"item": "poncho", "weather_condition": "rain"}]`, []string{"hat", "poncho (rain)"}},
		{"aliases", `[{"name": "sunscreen"}, {"what": "adapter", "note": "type F"}, {"condition": "cold"}]`, []string{"sunscreen", "adapter (type F)", "cold"}},
		{"other shapes", `[3, true, null, ["a", "b"], {}]`, []string{"3", "true", `["a","b"]`}},
		{"strings kept verbatim", `["", " towel ", "hat"]`, []string{"", " towel ", "hat"}},
		{"lone string", `"swimsuit"`, []string{"swimsuit"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var v any
			require.NoError(t, json.Unmarshal([]byte(tc.in), &v))
			assert.Equal(t, tc.want, coercePacking(v))
		})
	}
}

func TestNormalizeRestaurantsPackingAndMeta(t *testing.T) {
	bc := mustBooking(t, "2025-09-10", "2025-09-10")
	raw := decode(t, `{
		"food": [{"name": "Time Out Market", "price": "$$"}, "Cervejaria Ramiro"],
		"packing": ["hat", {"item": "poncho", "weather_condition": "rain"}],
		"meta": {"notes": "bring cash", "confidence": 0.7}
	}`)

	out := Normalize(raw, bc)
	require.Len(t, out.Restaurants, 2)
	assert.Equal(t, "Time Out Market", out.Restaurants[0].Title)
	assert.Equal(t, "Cervejaria Ramiro", out.Restaurants[1].Title)
	assert.Equal(t, []string{"hat", "poncho (rain)"}, out.PackingChecklist)
	assert.Equal(t, map[string]any{"notes": "bring cash", "confidence": 0.7}, out.Meta)
}

func TestNormalizePrimaryAliasWins(t *testing.T) {
	bc := mustBooking(t, "2025-09-10", "2025-09-10")
	raw := decode(t, `{
		"itinerary": [{"morning": "primary"}],
		"days": [{"morning": "secondary"}],
		"restaurants": ["A"],
		"food": ["B"]
	}`)

	out := Normalize(raw, bc)
	require.Len(t, out.Itinerary, 1)
	assert.Equal(t, "primary", out.Itinerary[0].Blocks[0].Activities[0].Title)
	require.Len(t, out.Restaurants, 1)
	assert.Equal(t, "A", out.Restaurants[0].Title)
}

func TestNormalizedOutputEncodesNulls(t *testing.T) {
	bc := mustBooking(t, "2025-09-10", "2025-09-10")
	out := Normalize(decode(t, `{"itinerary": [{"morning": "Walk"}]}`), bc)

	b, err := json.Marshal(out)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"itinerary": [{"date": "2025-09-10", "blocks": [{"block": "morning", "activities": [{
			"title": "Walk", "address": null, "lat": null, "lon": null, "price_tier": null,
			"duration_minutes": null, "tags": [], "wheelchair_friendly": null,
			"child_friendly": null, "url": null
		}]}]}],
		"restaurants": [],
		"packing_checklist": [],
		"meta": {}
	}`, string(b))
}

func TestStubPlanIsValid(t *testing.T) {
	bc := mustBooking(t, "2025-09-10", "2025-09-12")
	out := StubPlan(bc)

	require.Len(t, out.Itinerary, 1)
	assert.Equal(t, "2025-09-10", out.Itinerary[0].Date)
	require.Len(t, out.Itinerary[0].Blocks, 3)
	assert.Equal(t, "City walk", out.Itinerary[0].Blocks[0].Activities[0].Title)
	assert.Equal(t, "LLM disabled; returned stub", out.Meta["note"])
	assert.NoError(t, ValidateOutput(out))
}

func TestValidateOutputRejectsBrokenShape(t *testing.T) {
	out := newOutput()
	out.Itinerary = []DayPlan{{Date: time.Now().Format("2006-01-02"), Blocks: []DayBlock{{Block: "night", Activities: []ActivityCard{{Title: ""}}}}}}

	err := ValidateOutput(out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "violates schema")
}
