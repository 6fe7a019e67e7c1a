package sanitizer

import (
	"net/url"
	"slices"
	"strings"
	"unicode"
)

// DefaultExcept lists fields whose values are kept verbatim.
var DefaultExcept = []string{"current_password", "password", "password_confirmation"}

// Trim strips leading and trailing white space, including non-breaking
// spaces and zero width characters pasted from rich text.
func Trim(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\u200b' || r == '\ufeff'
	})
}

// TrimStrings trims every value of values in place, except the fields in
// except. Array fields such as "tags[]" match their base name.
func TrimStrings(values url.Values, except ...string) {
	for key, vals := range values {
		if slices.Contains(except, strings.TrimSuffix(key, "[]")) {
			continue
		}
		for i, v := range vals {
			vals[i] = Trim(v)
		}
	}
}
