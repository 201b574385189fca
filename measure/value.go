package measure

import (
	"strconv"
	"strings"
	"unicode"
)

// ValuePlaceholder is shown to the reader when a measurement carries no value
// text at all. It is a display sentinel, distinct from a missing unit.
const ValuePlaceholder = "—"

// SplitValueUnit splits a phrase like "14.2 g/dL" into the display value and
// an optional unit on the first whitespace run.
func SplitValueUnit(raw string) (string, *string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ValuePlaceholder, nil
	}
	idx := strings.IndexFunc(raw, unicode.IsSpace)
	if idx < 0 {
		return raw, nil
	}
	unit := strings.TrimSpace(raw[idx:])
	if unit == "" {
		return raw[:idx], nil
	}
	return raw[:idx], &unit
}

// ValueToFloat coerces a display value into a number: "14.2", "7,1", "<5",
// ">20" all parse, the placeholder and anything non-numeric do not.
func ValueToFloat(display string) (float64, bool) {
	if display == "" || display == ValuePlaceholder {
		return 0, false
	}
	s := strings.ReplaceAll(display, ",", ".")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.TrimLeft(s, "<>≤≥")
	if s == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
