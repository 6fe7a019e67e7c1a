package i18n

import (
	"golang.org/x/text/language"
)

// DefaultLanguage is used when no language can be negotiated.
const DefaultLanguage = "en"

// maxAcceptLanguageLength bounds the header size handed to the parser.
const maxAcceptLanguageLength = 4096

// Matcher negotiates request languages against a fixed set of supported ones.
type Matcher struct {
	supported []string
	matcher   language.Matcher
}

// NewMatcher builds a matcher. The first supported language is the fallback.
// Invalid codes are skipped.
func NewMatcher(supported ...string) *Matcher {
	codes := make([]string, 0, len(supported))
	tags := make([]language.Tag, 0, len(supported))
	for _, code := range supported {
		tag, err := language.Parse(code)
		if err != nil {
			continue
		}
		codes = append(codes, code)
		tags = append(tags, tag)
	}
	m := &Matcher{supported: codes}
	if len(tags) > 0 {
		m.matcher = language.NewMatcher(tags)
	}
	return m
}

// Match returns the best supported language code for an Accept-Language style
// list of preferences, or fallback when nothing matches with at least
// high confidence.
func (m *Matcher) Match(fallback string, preferences ...string) string {
	if m.matcher == nil {
		return fallback
	}

	var tags []language.Tag
	for _, pref := range preferences {
		if pref == "" {
			continue
		}
		if len(pref) > maxAcceptLanguageLength {
			pref = pref[:maxAcceptLanguageLength]
		}
		parsed, _, err := language.ParseAcceptLanguage(pref)
		if err != nil {
			continue
		}
		tags = append(tags, parsed...)
	}
	if len(tags) == 0 {
		return fallback
	}

	_, idx, confidence := m.matcher.Match(tags...)
	if confidence < language.High {
		return fallback
	}
	return m.supported[idx]
}

// ParseAcceptLanguage returns the supported language that best matches the
// Accept-Language header, or defaultLang.
func ParseAcceptLanguage(header string, supportedLangs []string, defaultLang string) string {
	return NewMatcher(supportedLangs...).Match(defaultLang, header)
}
