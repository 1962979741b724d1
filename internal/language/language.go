package language

import (
	"errors"
	"fmt"
	"strings"
)

// Language is one of the supported study languages, identified by its display name
type Language string

const (
	English    Language = "English"
	Spanish    Language = "Spanish"
	French     Language = "French"
	German     Language = "German"
	Chinese    Language = "Chinese (Mandarin)"
	Japanese   Language = "Japanese"
	Korean     Language = "Korean"
	Portuguese Language = "Portuguese"
	Russian    Language = "Russian"
	Arabic     Language = "Arabic"
	Hindi      Language = "Hindi"
	Italian    Language = "Italian"
)

// Defaults used when no language is configured
const (
	DefaultNative = English
	DefaultTarget = Spanish
)

// ErrUnknownLanguage is returned when a value is not a supported language
var ErrUnknownLanguage = errors.New("unknown language")

var all = []Language{
	English, Spanish, French, German, Chinese, Japanese,
	Korean, Portuguese, Russian, Arabic, Hindi, Italian,
}

var codes = map[Language]string{
	English:    "en-US",
	Spanish:    "es-ES",
	French:     "fr-FR",
	German:     "de-DE",
	Chinese:    "zh-CN",
	Japanese:   "ja-JP",
	Korean:     "ko-KR",
	Portuguese: "pt-BR",
	Russian:    "ru-RU",
	Arabic:     "ar-SA",
	Hindi:      "hi-IN",
	Italian:    "it-IT",
}

// All returns every supported language in display order
func All() []Language {
	out := make([]Language, len(all))
	copy(out, all)
	return out
}

// Code returns the BCP-47 tag for the language. Unknown values map to en-US.
func (l Language) Code() string {
	if code, ok := codes[l]; ok {
		return code
	}
	return "en-US"
}

// Valid reports whether l is one of the supported languages
func (l Language) Valid() bool {
	_, ok := codes[l]
	return ok
}

func (l Language) String() string {
	return string(l)
}

// Parse resolves a display name, a short name such as "chinese", a BCP-47 tag
// or its primary subtag into a Language. Matching is case-insensitive.
func Parse(s string) (Language, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	if needle == "" {
		return "", fmt.Errorf("%w: empty value", ErrUnknownLanguage)
	}

	for _, l := range all {
		name := strings.ToLower(string(l))
		short := name
		if i := strings.Index(short, " ("); i > 0 {
			short = short[:i]
		}
		code := strings.ToLower(codes[l])
		primary := code[:strings.Index(code, "-")]

		switch needle {
		case name, short, code, primary:
			return l, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownLanguage, s)
}

// UnmarshalText accepts only exact display names so persisted data stays canonical
func (l *Language) UnmarshalText(text []byte) error {
	v := Language(text)
	if !v.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownLanguage, string(text))
	}
	*l = v
	return nil
}
