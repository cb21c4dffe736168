// Package i18n holds the static string table shared by the server and the
// terminal client.
package i18n

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// FallbackLanguage is used when a key has no text in the requested language
const FallbackLanguage = "en"

// DefaultVoice is the speech locale for unknown languages
const DefaultVoice = "en-US"

//go:embed translations.yaml
var translationsYAML []byte

// Language describes one entry of the language picker
type Language struct {
	Code   string `yaml:"code" json:"code"`
	Name   string `yaml:"name" json:"name"`
	Native string `yaml:"native" json:"native"`
	Voice  string `yaml:"voice" json:"voice_lang"`
}

// Catalog is the parsed string table. It is read-only after Load.
type Catalog struct {
	languages []Language
	strings   map[string]map[string]string // key -> lang -> text
}

type catalogFile struct {
	Languages []Language                   `yaml:"languages"`
	Strings   map[string]map[string]string `yaml:"strings"`
}

// Load parses the embedded table
func Load() (*Catalog, error) {
	return Parse(translationsYAML)
}

// MustLoad is Load for package initialization; the embedded table is fixed at build time.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// Parse builds a catalog from YAML. Every key must carry a fallback-language text.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse translations: %w", err)
	}
	if len(f.Languages) == 0 {
		return nil, fmt.Errorf("translations define no languages")
	}
	for key, texts := range f.Strings {
		if texts[FallbackLanguage] == "" {
			return nil, fmt.Errorf("translation %q has no %s text", key, FallbackLanguage)
		}
	}
	return &Catalog{languages: f.Languages, strings: f.Strings}, nil
}

func (c *Catalog) Languages() []Language {
	out := make([]Language, len(c.languages))
	copy(out, c.languages)
	return out
}

func (c *Catalog) Language(code string) (Language, bool) {
	for _, l := range c.languages {
		if l.Code == code {
			return l, true
		}
	}
	return Language{}, false
}

func (c *Catalog) Supports(code string) bool {
	_, ok := c.Language(code)
	return ok
}

// T looks key up in lang, then in English, then returns the key itself.
func (c *Catalog) T(lang, key string) string {
	texts, ok := c.strings[key]
	if !ok {
		return key
	}
	if s := texts[lang]; s != "" {
		return s
	}
	return texts[FallbackLanguage]
}

// VoiceLang is the speech locale for lang
func (c *Catalog) VoiceLang(lang string) string {
	if l, ok := c.Language(lang); ok && l.Voice != "" {
		return l.Voice
	}
	return DefaultVoice
}

// Table returns every key resolved for lang
func (c *Catalog) Table(lang string) map[string]string {
	out := make(map[string]string, len(c.strings))
	for key := range c.strings {
		out[key] = c.T(lang, key)
	}
	return out
}

// Keys lists all keys in sorted order
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, len(c.strings))
	for k := range c.strings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Has reports whether key exists in the table
func (c *Catalog) Has(key string) bool {
	_, ok := c.strings[key]
	return ok
}
