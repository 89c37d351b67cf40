// Package locale holds the static two-locale label table used by the portal.
package locale

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

// Locale is one of the supported display languages.
type Locale int

const (
	English Locale = iota
	Telugu

	localeCount
)

// Default is the locale of a fresh session.
const Default = English

var tags = [localeCount]language.Tag{
	English: language.English,
	Telugu:  language.Telugu,
}

var matcher = language.NewMatcher(tags[:])

// All returns every supported locale in declaration order.
func All() []Locale {
	out := make([]Locale, 0, localeCount)
	for l := Locale(0); l < localeCount; l++ {
		out = append(out, l)
	}
	return out
}

// Tag returns the BCP 47 tag of the locale.
func (l Locale) Tag() language.Tag {
	if !l.valid() {
		return tags[Default]
	}
	return tags[l]
}

// Code returns the two-letter language code ("en", "te").
func (l Locale) Code() string {
	base, _ := l.Tag().Base()
	return base.String()
}

func (l Locale) String() string {
	switch l {
	case English:
		return "English"
	case Telugu:
		return "Telugu"
	}
	return "unknown"
}

func (l Locale) valid() bool {
	return l >= 0 && l < localeCount
}

// Toggle returns the other locale.
func Toggle(l Locale) Locale {
	if l == Telugu {
		return English
	}
	return Telugu
}

// Parse resolves a language code such as "en" or "te".
func Parse(code string) (Locale, bool) {
	code = strings.ToLower(strings.TrimSpace(code))
	for _, l := range All() {
		if l.Code() == code {
			return l, true
		}
	}
	return Default, false
}

// FromRequest picks a locale for a new session from the Accept-Language header.
func FromRequest(r *http.Request) Locale {
	if r == nil {
		return Default
	}
	header := strings.TrimSpace(r.Header.Get("Accept-Language"))
	if header == "" {
		return Default
	}
	_, idx := language.MatchStrings(matcher, header)
	l := Locale(idx)
	if !l.valid() {
		return Default
	}
	return l
}
