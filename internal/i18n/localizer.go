package i18n

import (
	"fmt"
	"os"
	"strings"
)

// Store persists the language preference.
type Store interface {
	LoadLanguage() string
	SaveLanguage(lang string) error
}

// Localizer pairs a bundle with the current language.
type Localizer struct {
	bundle *Bundle
	store  Store
	lang   string
}

// NewLocalizer picks the stored language, or the one detected from locale.
// store may be nil, in which case SetLanguage does not persist.
func NewLocalizer(bundle *Bundle, store Store, locale string) *Localizer {
	stored := ""
	if store != nil {
		stored = store.LoadLanguage()
	}
	return &Localizer{
		bundle: bundle,
		store:  store,
		lang:   InitialLanguage(stored, locale),
	}
}

// Language returns the current language.
func (l *Localizer) Language() string {
	return l.lang
}

// SetLanguage switches the current language and persists it.
func (l *Localizer) SetLanguage(lang string) error {
	if !IsSupported(lang) {
		return fmt.Errorf("unsupported language %q (supported: %s)", lang, strings.Join(Supported(), ", "))
	}
	l.lang = lang
	if l.store == nil {
		return nil
	}
	if err := l.store.SaveLanguage(lang); err != nil {
		return fmt.Errorf("saving language preference: %w", err)
	}
	return nil
}

// T resolves key in the current language.
func (l *Localizer) T(key string, args map[string]any) string {
	return l.bundle.T(l.lang, key, args)
}

// LocaleFromEnv returns the first set of LC_ALL, LC_MESSAGES and LANG.
func LocaleFromEnv() string {
	for _, env := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(env); v != "" {
			return v
		}
	}
	return ""
}

// FromAcceptLanguage returns the first supported language in an
// Accept-Language header, or "" when none is supported.
func FromAcceptLanguage(header string) string {
	for _, part := range strings.Split(header, ",") {
		tag := strings.ToLower(strings.TrimSpace(strings.SplitN(part, ";", 2)[0]))
		for _, lang := range Supported() {
			if tag == lang || strings.HasPrefix(tag, lang+"-") {
				return lang
			}
		}
	}
	return ""
}
