// README: Plan normalization; turns untrusted LLM JSON into an AgentOutput without ever failing.
package itinerary

import (
	"strings"

	"tripmate/internal/modules/booking"
)

// Normalize coerces raw (the decoded LLM reply, possibly empty or nil) into an AgentOutput.
// Malformed parts are skipped or defaulted; the result may have an empty itinerary, which
// EnsureItinerary fills in.
func Normalize(raw map[string]any, bc booking.Context) AgentOutput {
	out := newOutput()

	if v, ok := lookup(raw, itineraryKeys...); ok {
		if days := classify(v); days.kind == kindSequence {
			for idx, entry := range days.items {
				rec, ok := entry.(map[string]any)
				if !ok {
					continue
				}
				blocks := blocksFromDay(rec)
				if len(blocks) == 0 {
					continue
				}
				out.Itinerary = append(out.Itinerary, DayPlan{
					Date:   dayDate(rec, idx, bc),
					Blocks: blocks,
				})
			}
		}
	}

	if v, ok := lookup(raw, restaurantKey...); ok {
		out.Restaurants = append(out.Restaurants, coerceActivities(v)...)
	}

	if v, ok := lookup(raw, packingKeys...); ok {
		out.PackingChecklist = coercePacking(v)
	}

	if meta, ok := raw["meta"].(map[string]any); ok {
		out.Meta = meta
	}
	return out
}

// EnsureItinerary injects a single placeholder day when out has no days, reporting whether
// it did so.
func EnsureItinerary(out AgentOutput, bc booking.Context) (AgentOutput, bool) {
	if len(out.Itinerary) > 0 {
		return out, false
	}
	out.Itinerary = []DayPlan{{
		Date: bc.Start(),
		Blocks: []DayBlock{{
			Block:      BlockMorning,
			Activities: []ActivityCard{card(FallbackActivity)},
		}},
	}}
	return out, true
}

// dayDate prefers the day's own date, then its position in the booking range. Surplus days
// reuse the last date.
func dayDate(day map[string]any, idx int, bc booking.Context) string {
	if s, ok := textField(day, "date"); ok {
		return s
	}
	return bc.DayAt(idx)
}

// blocksFromDay reads an explicit "blocks" list when present, otherwise the named
// morning/afternoon/evening keys. Blocks without activities are dropped.
func blocksFromDay(day map[string]any) []DayBlock {
	var blocks []DayBlock

	if explicit := classify(day["blocks"]); explicit.kind == kindSequence {
		for _, b := range explicit.items {
			rec, ok := b.(map[string]any)
			if !ok {
				continue
			}
			acts := coerceActivities(rec["activities"])
			if len(acts) == 0 {
				continue
			}
			blocks = append(blocks, DayBlock{Block: blockName(rec), Activities: acts})
		}
		return blocks
	}

	for _, name := range blockNames {
		v, ok := day[name]
		if !ok {
			continue
		}
		if acts := coerceActivities(v); len(acts) > 0 {
			blocks = append(blocks, DayBlock{Block: name, Activities: acts})
		}
	}
	return blocks
}

// blockName lower-cases the block label; blank or unrecognised labels become morning.
func blockName(rec map[string]any) string {
	s, _ := textField(rec, blockNameKeys...)
	s = strings.ToLower(s)
	for _, known := range blockNames {
		if s == known {
			return s
		}
	}
	return BlockMorning
}

// coerceActivities dispatches on the shape of v: scalars and other leaves become a titled
// card, records are field-mapped, sequences are flattened recursively, null yields nothing.
func coerceActivities(v any) []ActivityCard {
	val := classify(v)
	switch val.kind {
	case kindNull:
		return nil
	case kindScalar, kindOther:
		return []ActivityCard{card(titleOrPlaceholder(val.text))}
	case kindRecord:
		return []ActivityCard{activityFromRecord(val.record)}
	case kindSequence:
		var out []ActivityCard
		for _, it := range val.items {
			out = append(out, coerceActivities(it)...)
		}
		return out
	}
	return nil
}

func activityFromRecord(rec map[string]any) ActivityCard {
	title, _ := textField(rec, titleKeys...)
	return ActivityCard{
		Title:              titleOrPlaceholder(title),
		Address:            optText(rec, addressKeys...),
		Lat:                optCoordinate(rec, 90, latKeys...),
		Lon:                optCoordinate(rec, 180, lonKeys...),
		PriceTier:          optText(rec, priceKeys...),
		DurationMinutes:    optMinutes(rec, durationKeys...),
		Tags:               tagList(rec, tagKeys...),
		WheelchairFriendly: optBool(rec, wheelchairKey...),
		ChildFriendly:      optBool(rec, childKeys...),
		URL:                optText(rec, urlKeys...),
	}
}

func titleOrPlaceholder(s string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return PlaceholderTitle
}

// coercePacking flattens the checklist into display strings. A lone entry is treated as a
// one-item list. Strings are kept as-is; null entries and empty records are dropped.
func coercePacking(v any) []string {
	out := []string{}
	items := []any{v}
	if val := classify(v); val.kind == kindSequence {
		items = val.items
	}

	for _, it := range items {
		iv := classify(it)
		switch iv.kind {
		case kindNull:
			continue
		case kindRecord:
			if s := packingEntry(iv.record); s != "" {
				out = append(out, s)
			}
		case kindSequence:
			out = append(out, stringify(it))
		default:
			out = append(out, iv.text)
		}
	}
	return out
}

// packingEntry renders {item, weather_condition} style records as "item (condition)".
func packingEntry(rec map[string]any) string {
	item, hasItem := textField(rec, packItemKeys...)
	note, hasNote := textField(rec, packNoteKeys...)
	switch {
	case hasItem && hasNote:
		return item + " (" + note + ")"
	case hasItem:
		return item
	default:
		return note
	}
}
