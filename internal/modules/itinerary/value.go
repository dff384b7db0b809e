package itinerary

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// kind tags the shape of a decoded JSON value.
type kind int

const (
	kindNull kind = iota
	kindScalar
	kindRecord
	kindSequence
	kindOther
)

// value is a decoded JSON node tagged with its shape. Only the member matching kind is set.
type value struct {
	kind   kind
	text   string // kindScalar, kindOther
	record map[string]any
	items  []any
	isText bool // scalar came from a JSON string rather than a number
}

func classify(v any) value {
	switch t := v.(type) {
	case nil:
		return value{kind: kindNull}
	case string:
		return value{kind: kindScalar, text: t, isText: true}
	case float64, float32, int, int32, int64, json.Number:
		return value{kind: kindScalar, text: stringify(t)}
	case map[string]any:
		return value{kind: kindRecord, record: t}
	case []any:
		return value{kind: kindSequence, items: t}
	case []string:
		items := make([]any, len(t))
		for i, s := range t {
			items[i] = s
		}
		return value{kind: kindSequence, items: items}
	default:
		return value{kind: kindOther, text: stringify(t)}
	}
}

// stringify renders any decoded value as display text. Whole numbers print without a
// fractional part so 42 stays "42".
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	}
	if b, err := json.Marshal(v); err == nil {
		return string(b)
	}
	return fmt.Sprint(v)
}
