// Package catalog loads the embedded locale message catalogs and registers
// them with golang.org/x/text/message.
package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

const (
	// BaseLocale is the canonical source locale for catalogs.
	BaseLocale = "en-US"
)

type catalogFile struct {
	Locale    string            `yaml:"locale"`
	Namespace string            `yaml:"namespace"`
	Messages  map[string]string `yaml:"messages"`
}

// LocaleCatalog stores all messages for one locale, grouped by namespace.
type LocaleCatalog struct {
	Locale     string
	Tag        language.Tag
	Namespaces map[string]map[string]string
	Messages   map[string]string
}

// Bundle contains all locale catalogs loaded from disk.
type Bundle struct {
	locales map[string]*LocaleCatalog
	matcher language.Matcher
	tags    []language.Tag
}

//go:embed locales/*/*.yaml
var embeddedCatalogFS embed.FS

var defaultBundle = mustLoadAndRegisterEmbedded()

// Default returns the process-wide embedded catalog bundle.
func Default() *Bundle {
	return defaultBundle
}

// LoadEmbedded loads catalog files embedded in this package.
func LoadEmbedded() (*Bundle, error) {
	return LoadFromFS(embeddedCatalogFS)
}

// LoadFromFS loads locales/<locale>/<namespace>.yaml files from catalogFS.
func LoadFromFS(catalogFS fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(catalogFS, "locales/*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	bundle := &Bundle{locales: map[string]*LocaleCatalog{}}
	for _, p := range paths {
		data, err := fs.ReadFile(catalogFS, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}
		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", p, err)
		}
		if err := bundle.addFile(p, file); err != nil {
			return nil, err
		}
	}

	base, ok := bundle.locales[BaseLocale]
	if !ok {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}

	// The matcher prefers the base locale when nothing matches.
	bundle.tags = []language.Tag{base.Tag}
	for _, locale := range bundle.Locales() {
		if locale == BaseLocale {
			continue
		}
		bundle.tags = append(bundle.tags, bundle.locales[locale].Tag)
	}
	bundle.matcher = language.NewMatcher(bundle.tags)
	return bundle, nil
}

func (b *Bundle) addFile(p string, file catalogFile) error {
	localeFromPath := path.Base(path.Dir(p))
	namespaceFromPath := strings.TrimSuffix(path.Base(p), path.Ext(p))

	locale := strings.TrimSpace(file.Locale)
	switch {
	case locale == "":
		return fmt.Errorf("catalog %s: locale is required", p)
	case locale != localeFromPath:
		return fmt.Errorf("catalog %s: locale %q must match path locale %q", p, locale, localeFromPath)
	}
	namespace := strings.TrimSpace(file.Namespace)
	switch {
	case namespace == "":
		return fmt.Errorf("catalog %s: namespace is required", p)
	case namespace != namespaceFromPath:
		return fmt.Errorf("catalog %s: namespace %q must match filename namespace %q", p, namespace, namespaceFromPath)
	}
	if len(file.Messages) == 0 {
		return fmt.Errorf("catalog %s: messages map is required", p)
	}

	localeCatalog, ok := b.locales[locale]
	if !ok {
		tag, err := language.Parse(locale)
		if err != nil {
			return fmt.Errorf("catalog %s: parse locale tag %q: %w", p, locale, err)
		}
		localeCatalog = &LocaleCatalog{
			Locale:     locale,
			Tag:        tag,
			Namespaces: map[string]map[string]string{},
			Messages:   map[string]string{},
		}
		b.locales[locale] = localeCatalog
	}
	if _, exists := localeCatalog.Namespaces[namespace]; exists {
		return fmt.Errorf("catalog %s: namespace %q already defined for locale %q", p, namespace, locale)
	}

	namespaceMessages := make(map[string]string, len(file.Messages))
	for key, value := range file.Messages {
		trimmedKey := strings.TrimSpace(key)
		if trimmedKey == "" {
			return fmt.Errorf("catalog %s: message key cannot be blank", p)
		}
		if _, exists := localeCatalog.Messages[trimmedKey]; exists {
			return fmt.Errorf("catalog %s: duplicate key %q in locale %q", p, trimmedKey, locale)
		}
		localeCatalog.Messages[trimmedKey] = value
		namespaceMessages[trimmedKey] = value
	}
	localeCatalog.Namespaces[namespace] = namespaceMessages
	return nil
}

// Register registers all catalog messages with x/text/message under both the
// full tag and its base language.
func (b *Bundle) Register() error {
	if b == nil {
		return nil
	}
	for _, locale := range b.Locales() {
		lc := b.locales[locale]
		tags := []language.Tag{lc.Tag}
		if base, conf := lc.Tag.Base(); conf != language.No {
			if baseTag, err := language.Parse(base.String()); err == nil && baseTag != lc.Tag {
				tags = append(tags, baseTag)
			}
		}
		keys := make([]string, 0, len(lc.Messages))
		for key := range lc.Messages {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			for _, tag := range tags {
				if err := message.SetString(tag, key, lc.Messages[key]); err != nil {
					return fmt.Errorf("register %s %q: %w", locale, key, err)
				}
			}
		}
	}
	return nil
}

// Match resolves a requested locale (e.g. "he", "he-IL", "en-GB") to the
// closest locale the bundle defines, falling back to BaseLocale.
func (b *Bundle) Match(requested string) string {
	if b == nil || b.matcher == nil {
		return BaseLocale
	}
	trimmed := strings.TrimSpace(requested)
	if trimmed == "" {
		return BaseLocale
	}
	if _, ok := b.locales[trimmed]; ok {
		return trimmed
	}
	_, index, conf := b.matcher.Match(language.Make(trimmed))
	if conf == language.No {
		return BaseLocale
	}
	return b.tags[index].String()
}

// Printer returns a message printer for the closest matching locale.
// Messages must have been registered with Register.
func (b *Bundle) Printer(requested string) *message.Printer {
	locale := b.Match(requested)
	if lc, ok := b.locales[locale]; ok {
		return message.NewPrinter(lc.Tag)
	}
	return message.NewPrinter(language.MustParse(BaseLocale))
}

// HasLocale reports whether the locale exists in this bundle.
func (b *Bundle) HasLocale(locale string) bool {
	if b == nil {
		return false
	}
	_, ok := b.locales[strings.TrimSpace(locale)]
	return ok
}

// Locales returns all available locale identifiers.
func (b *Bundle) Locales() []string {
	if b == nil {
		return nil
	}
	out := make([]string, 0, len(b.locales))
	for locale := range b.locales {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// LocaleMessages returns an exact locale message map copy.
func (b *Bundle) LocaleMessages(locale string) map[string]string {
	if b == nil {
		return map[string]string{}
	}
	lc, ok := b.locales[strings.TrimSpace(locale)]
	if !ok {
		return map[string]string{}
	}
	return copyMap(lc.Messages)
}

// Message returns one message value with base-locale fallback.
func (b *Bundle) Message(locale string, key string) (string, bool) {
	if b == nil {
		return "", false
	}
	trimmedKey := strings.TrimSpace(key)
	if trimmedKey == "" {
		return "", false
	}
	for _, candidate := range []string{strings.TrimSpace(locale), BaseLocale} {
		if lc, ok := b.locales[candidate]; ok {
			if value, exists := lc.Messages[trimmedKey]; exists {
				return value, true
			}
		}
	}
	return "", false
}

// NamespaceMessages returns an exact namespace message map copy for a locale.
func (b *Bundle) NamespaceMessages(locale string, namespace string) map[string]string {
	if b == nil {
		return map[string]string{}
	}
	lc, ok := b.locales[strings.TrimSpace(locale)]
	if !ok {
		return map[string]string{}
	}
	messages, ok := lc.Namespaces[strings.TrimSpace(namespace)]
	if !ok {
		return map[string]string{}
	}
	return copyMap(messages)
}

// NamespaceMessagesWithFallback returns namespace messages and the locale that satisfied the lookup.
func (b *Bundle) NamespaceMessagesWithFallback(locale string, namespace string) (string, map[string]string) {
	resolved := b.Match(locale)
	if messages := b.NamespaceMessages(resolved, namespace); len(messages) > 0 {
		return resolved, messages
	}
	return BaseLocale, b.NamespaceMessages(BaseLocale, namespace)
}

func copyMap(source map[string]string) map[string]string {
	out := make(map[string]string, len(source))
	for key, value := range source {
		out[key] = value
	}
	return out
}

func mustLoadAndRegisterEmbedded() *Bundle {
	bundle, err := LoadEmbedded()
	if err != nil {
		panic(err)
	}
	if err := bundle.Register(); err != nil {
		panic(err)
	}
	return bundle
}
