package validator

import (
	"context"
	"strings"
	"time"
)

// Layouts tried by the date rule and by date comparisons.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"02.01.2006",
	"January 2, 2006",
	"2 January 2006",
	"Jan 2, 2006",
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func isDate(s string) bool {
	_, ok := parseDate(s)
	return ok
}

// relativeDate understands the keywords accepted by after/before.
func relativeDate(s string, now time.Time) (time.Time, bool) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "now":
		return now, true
	case "today":
		return today, true
	case "tomorrow":
		return today.AddDate(0, 0, 1), true
	case "yesterday":
		return today.AddDate(0, 0, -1), true
	}
	return time.Time{}, false
}

// phpLayout maps PHP date() format characters to Go layout fragments, so
// forms can share one date_format string with the browser.
var phpLayout = map[rune]string{
	'd': "02", 'j': "2", 'D': "Mon", 'l': "Monday",
	'm': "01", 'n': "1", 'M': "Jan", 'F': "January",
	'Y': "2006", 'y': "06",
	'H': "15", 'G': "15", 'h': "03", 'g': "3",
	'i': "04", 's': "05", 'A': "PM", 'a': "pm",
	'T': "MST", 'P': "-07:00", 'O': "-0700",
}

// GoLayout converts a date_format parameter to a Go layout. Parameters that
// already are Go layouts (they mention 2006) pass through.
func GoLayout(format string) string {
	if strings.Contains(format, "2006") {
		return format
	}
	var b strings.Builder
	escaped := false
	for _, r := range format {
		if escaped {
			b.WriteRune(r)
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		if frag, ok := phpLayout[r]; ok {
			b.WriteString(frag)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func checkDateFormat(_ context.Context, _ *Validator, in checkInput) (bool, error) {
	if err := needParams(in, 1); err != nil {
		return false, err
	}
	layout := GoLayout(in.param(0))
	val := strings.TrimSpace(in.value())
	t, err := time.Parse(layout, val)
	return err == nil && t.Format(layout) == val, nil
}

// checkDate backs after, before and their _or_equal forms. The parameter is
// a field name, a relative keyword or a date.
func checkDate(ok func(cmp int) bool) checkFunc {
	return func(_ context.Context, v *Validator, in checkInput) (bool, error) {
		if err := needParams(in, 1); err != nil {
			return false, err
		}
		val, valid := parseDate(in.value())
		if !valid {
			return false, nil
		}

		var ref time.Time
		switch {
		case v.hasAttribute(in.param(0)):
			other, found := parseDate(v.lookup(in.param(0)).value())
			if !found {
				return false, nil
			}
			ref = other
		default:
			var found bool
			if ref, found = relativeDate(in.param(0), time.Now().UTC()); !found {
				if ref, found = parseDate(in.param(0)); !found {
					return false, nil
				}
			}
		}
		return ok(val.Compare(ref)), nil
	}
}
