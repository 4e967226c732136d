// Package i18n holds the static UI strings and per-language prompt text.
//
// The language set is closed: every Lang value has an entry in each switch
// below, and Parse rejects anything else.
package i18n

import (
	"fmt"
	"strings"
)

type Lang string

const (
	English Lang = "en"
	Hindi   Lang = "hi"
	Bengali Lang = "bn"
	Tamil   Lang = "ta"
)

// Default is the fallback language for missing keys and unresolvable locales.
const Default = English

var all = []Lang{English, Hindi, Bengali, Tamil}

func Languages() []Lang {
	out := make([]Lang, len(all))
	copy(out, all)
	return out
}

// Parse accepts a language code ("hi", "hi-IN", "HI") and returns the matching
// Lang, or an error if it is not one of the supported languages.
func Parse(s string) (Lang, error) {
	code := strings.ToLower(strings.TrimSpace(s))
	if i := strings.IndexAny(code, "-_"); i > 0 {
		code = code[:i]
	}
	for _, l := range all {
		if string(l) == code {
			return l, nil
		}
	}
	return "", fmt.Errorf("unsupported language %q", s)
}

// Resolve is Parse with a fallback to Default.
func Resolve(s string) Lang {
	l, err := Parse(s)
	if err != nil {
		return Default
	}
	return l
}

// FromAcceptLanguage picks the first supported language in an
// Accept-Language header value. Quality weights are ignored; order wins.
func FromAcceptLanguage(header string) (Lang, bool) {
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if tag == "" || tag == "*" {
			continue
		}
		if l, err := Parse(tag); err == nil {
			return l, true
		}
	}
	return "", false
}

// Name is the English name of the language, used in prompt directives.
func (l Lang) Name() string {
	switch l {
	case English:
		return "English"
	case Hindi:
		return "Hindi"
	case Bengali:
		return "Bengali"
	case Tamil:
		return "Tamil"
	}
	return string(l)
}

// NativeName is the language's name written in its own script.
func (l Lang) NativeName() string {
	switch l {
	case English:
		return "English"
	case Hindi:
		return "हिन्दी"
	case Bengali:
		return "বাংলা"
	case Tamil:
		return "தமிழ்"
	}
	return string(l)
}

// TesseractCode is the traineddata name tesseract uses for the language.
func (l Lang) TesseractCode() string {
	switch l {
	case English:
		return "eng"
	case Hindi:
		return "hin"
	case Bengali:
		return "ben"
	case Tamil:
		return "tam"
	}
	return "eng"
}

func (l Lang) Valid() bool {
	_, err := Parse(string(l))
	return err == nil
}
