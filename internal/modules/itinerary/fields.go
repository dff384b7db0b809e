package itinerary

import (
	"math"
	"strconv"
	"strings"
)

// Candidate keys per target field, in priority order. A dotted path descends into a
// nested record.
var (
	titleKeys     = []string{"title", "name", "activity"}
	addressKeys   = []string{"address", "location"}
	latKeys       = []string{"lat", "geo.lat"}
	lonKeys       = []string{"lon", "geo.lon"}
	priceKeys     = []string{"price_tier", "price"}
	durationKeys  = []string{"duration_minutes", "duration"}
	tagKeys       = []string{"tags"}
	wheelchairKey = []string{"wheelchair_friendly", "wheelchair"}
	childKeys     = []string{"child_friendly", "kid_friendly"}
	urlKeys       = []string{"url", "link"}

	itineraryKeys = []string{"itinerary", "days", "plan"}
	restaurantKey = []string{"restaurants", "food"}
	packingKeys   = []string{"packing_checklist", "packing"}
	packItemKeys  = []string{"item", "name", "what"}
	packNoteKeys  = []string{"weather_condition", "note", "condition"}
	blockNameKeys = []string{"block", "name"}
)

// lookup returns the value of the first candidate that is present and carries a value.
// Null and blank strings count as absent.
func lookup(rec map[string]any, paths ...string) (any, bool) {
	for _, p := range paths {
		v, ok := lookupPath(rec, p)
		if !ok || v == nil {
			continue
		}
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
			continue
		}
		return v, true
	}
	return nil, false
}

func lookupPath(rec map[string]any, path string) (any, bool) {
	cur := rec
	parts := strings.Split(path, ".")
	for i, key := range parts {
		v, ok := cur[key]
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return v, true
		}
		next, ok := v.(map[string]any)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return nil, false
}

// textField returns the first candidate rendered as trimmed text. Only scalars qualify.
func textField(rec map[string]any, paths ...string) (string, bool) {
	v, ok := lookup(rec, paths...)
	if !ok {
		return "", false
	}
	val := classify(v)
	if val.kind != kindScalar {
		return "", false
	}
	s := strings.TrimSpace(val.text)
	return s, s != ""
}

func optText(rec map[string]any, paths ...string) *string {
	if s, ok := textField(rec, paths...); ok {
		return &s
	}
	return nil
}

func asFloat(v any) (float64, bool) {
	val := classify(v)
	if val.kind != kindScalar {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(val.text), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// optCoordinate keeps a coordinate only when it lies within [-limit, limit].
func optCoordinate(rec map[string]any, limit float64, paths ...string) *float64 {
	v, ok := lookup(rec, paths...)
	if !ok {
		return nil
	}
	f, ok := asFloat(v)
	if !ok || f < -limit || f > limit {
		return nil
	}
	return &f
}

func optMinutes(rec map[string]any, paths ...string) *int {
	v, ok := lookup(rec, paths...)
	if !ok {
		return nil
	}
	f, ok := asFloat(v)
	if !ok || f < 0 || f > math.MaxInt32 {
		return nil
	}
	n := int(math.Round(f))
	return &n
}

func optBool(rec map[string]any, paths ...string) *bool {
	v, ok := lookup(rec, paths...)
	if !ok {
		return nil
	}
	var b bool
	switch t := v.(type) {
	case bool:
		b = t
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "yes", "y", "1":
			b = true
		case "false", "no", "n", "0":
			b = false
		default:
			return nil
		}
	default:
		f, isNum := asFloat(v)
		if !isNum || (f != 0 && f != 1) {
			return nil
		}
		b = f == 1
	}
	return &b
}

// tagList accepts a list of scalars or a single scalar; anything else yields no tags.
func tagList(rec map[string]any, paths ...string) []string {
	tags := []string{}
	v, ok := lookup(rec, paths...)
	if !ok {
		return tags
	}
	val := classify(v)
	switch val.kind {
	case kindScalar:
		tags = append(tags, strings.TrimSpace(val.text))
	case kindSequence:
		for _, it := range val.items {
			iv := classify(it)
			if iv.kind != kindScalar {
				continue
			}
			if s := strings.TrimSpace(iv.text); s != "" {
				tags = append(tags, s)
			}
		}
	}
	return tags
}
