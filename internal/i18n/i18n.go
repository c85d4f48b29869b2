// Package i18n resolves UI message keys against the zh and en locale tables.
package i18n

import (
	"embed"
	"fmt"
	"path"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Supported languages.
const (
	LangZH = "zh"
	LangEN = "en"
)

// FallbackLanguage is used for keys missing from the requested table.
const FallbackLanguage = LangZH

//go:embed locales/*.yaml
var localeFS embed.FS

// placeholderRegex matches "{name}" interpolation slots.
var placeholderRegex = regexp.MustCompile(`\{(\w+)\}`)

// Bundle holds flattened message tables keyed by language.
type Bundle struct {
	messages map[string]map[string]string
	fallback string
}

// NewBundle loads the embedded locale tables.
func NewBundle() (*Bundle, error) {
	b := &Bundle{
		messages: make(map[string]map[string]string),
		fallback: FallbackLanguage,
	}

	for _, lang := range Supported() {
		data, err := localeFS.ReadFile(path.Join("locales", lang+".yaml"))
		if err != nil {
			return nil, fmt.Errorf("reading %s locale: %w", lang, err)
		}
		if err := b.AddMessages(lang, data); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// MustNewBundle is NewBundle for embedded tables, which cannot fail at runtime
// once the package compiles and its tests pass.
func MustNewBundle() *Bundle {
	b, err := NewBundle()
	if err != nil {
		panic(err)
	}
	return b
}

// AddMessages merges a YAML message tree into lang's table.
func (b *Bundle) AddMessages(lang string, data []byte) error {
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return fmt.Errorf("parsing %s locale: %w", lang, err)
	}

	table := b.messages[lang]
	if table == nil {
		table = make(map[string]string)
		b.messages[lang] = table
	}
	flatten("", tree, table)
	return nil
}

// flatten turns nested maps into dotted keys.
func flatten(prefix string, node map[string]any, out map[string]string) {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case string:
			out[key] = val
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}

// T resolves key in lang, falling back to the fallback language and then to
// the key itself. "{name}" slots are filled from args.
func (b *Bundle) T(lang, key string, args map[string]any) string {
	msg, ok := b.lookup(lang, key)
	if !ok {
		return key
	}
	if len(args) == 0 {
		return msg
	}
	return placeholderRegex.ReplaceAllStringFunc(msg, func(slot string) string {
		name := slot[1 : len(slot)-1]
		if v, ok := args[name]; ok {
			return fmt.Sprint(v)
		}
		return slot
	})
}

// Has reports whether key exists in lang without falling back.
func (b *Bundle) Has(lang, key string) bool {
	_, ok := b.messages[lang][key]
	return ok
}

// Keys returns the number of messages in lang.
func (b *Bundle) Keys(lang string) int {
	return len(b.messages[lang])
}

func (b *Bundle) lookup(lang, key string) (string, bool) {
	if msg, ok := b.messages[lang][key]; ok {
		return msg, true
	}
	msg, ok := b.messages[b.fallback][key]
	return msg, ok
}

// Supported lists the languages with a message table.
func Supported() []string {
	return []string{LangZH, LangEN}
}

// IsSupported reports whether lang has a message table.
func IsSupported(lang string) bool {
	for _, l := range Supported() {
		if l == lang {
			return true
		}
	}
	return false
}

// DetectLanguage maps a locale such as "en_US.UTF-8" or "zh-CN" to a
// supported language, defaulting to zh.
func DetectLanguage(locale string) string {
	locale = strings.ToLower(strings.TrimSpace(locale))
	switch {
	case strings.HasPrefix(locale, LangZH):
		return LangZH
	case strings.HasPrefix(locale, LangEN):
		return LangEN
	default:
		return FallbackLanguage
	}
}

// InitialLanguage returns the stored preference when it is supported,
// otherwise the language detected from locale.
func InitialLanguage(stored, locale string) string {
	if IsSupported(stored) {
		return stored
	}
	return DetectLanguage(locale)
}
