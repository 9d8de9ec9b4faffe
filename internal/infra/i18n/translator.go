package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed locales
var LocalesFS embed.FS

const defaultLang = "en"

// Translator resolves user-facing strings (crisis resources, fallback
// text, validation prefix) per language, falling back to English for
// unknown language codes.
type Translator struct {
	byLang map[string]map[string]string
}

// NewTranslator loads every locale file from the provided filesystem.
func NewTranslator(fsys fs.FS) (*Translator, error) {
	entries, err := fs.ReadDir(fsys, "locales")
	if err != nil {
		return nil, fmt.Errorf("list locales: %w", err)
	}

	byLang := make(map[string]map[string]string, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".yaml" {
			continue
		}
		data, err := fs.ReadFile(fsys, filepath.Join("locales", name))
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", name, err)
		}
		table, err := parseLocale(data)
		if err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", name, err)
		}
		byLang[strings.TrimSuffix(name, ".yaml")] = table
	}

	if _, ok := byLang[defaultLang]; !ok {
		return nil, fmt.Errorf("default locale %q missing", defaultLang)
	}
	return &Translator{byLang: byLang}, nil
}

func parseLocale(data []byte) (map[string]string, error) {
	var table map[string]string
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, err
	}
	return table, nil
}

// T translates key for lang, falling back to English, then to the key
// itself so a missing translation is visible rather than silent.
func (t *Translator) T(lang, key string, args ...interface{}) string {
	table, ok := t.byLang[normalizeLang(lang)]
	if !ok {
		table = t.byLang[defaultLang]
	}
	format, ok := table[key]
	if !ok {
		format, ok = t.byLang[defaultLang][key]
		if !ok {
			return key
		}
	}
	if len(args) > 0 {
		return fmt.Sprintf(format, args...)
	}
	return format
}

// List returns the newline-split variant of a translated value; locale
// files store multi-line resources as a single block.
func (t *Translator) List(lang, key string) []string {
	raw := t.T(lang, key)
	if raw == key {
		return nil
	}
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func normalizeLang(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if i := strings.IndexAny(lang, "-_"); i > 0 {
		lang = lang[:i]
	}
	return lang
}
