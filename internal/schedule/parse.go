package schedule

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// ParseFlag maps a longest-path cell to a flag. Native true and the text
// "yes" or "true" in any case are true; every other value, including nil, is false.
func ParseFlag(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case *bool:
		return x != nil && *x
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "yes", "true":
			return true
		}
	}
	return false
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"01/02/2006",
	"1/2/2006",
	"01/02/2006 15:04:05",
	"1/2/2006 15:04",
	"2006/01/02",
	"02-Jan-2006",
	"2-Jan-06",
	"02-Jan-06",
	"Jan 2, 2006",
	"2 Jan 2006",
	"01-02-06",
	"1/2/06",
}

// ParseDate coerces a cell to a Date. time.Time values pass through; strings
// are tried against a fixed list of layouts. Anything else is missing.
func ParseDate(v any) Date {
	switch x := v.(type) {
	case time.Time:
		if x.IsZero() {
			return Date{}
		}
		return NewDate(x.UTC())
	case *time.Time:
		if x == nil {
			return Date{}
		}
		return ParseDate(*x)
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return Date{}
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return NewDate(t.UTC())
			}
		}
	}
	return Date{}
}

// ParseFloat coerces a cell to a number. Strings are trimmed and thousands
// separators removed. Failures and non-finite values return nil.
func ParseFloat(v any) *float64 {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(x), ",", "")
		if s == "" {
			return nil
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// ParseText renders an identifier or label cell as trimmed text. Whole
// numbers drop their decimal part so numeric activity ids match across rows.
func ParseText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		if x {
			return "TRUE"
		}
		return "FALSE"
	case time.Time:
		return x.Format("2006-01-02")
	}
	return ""
}
