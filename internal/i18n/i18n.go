// Package i18n holds the localized strings of the bot and the API.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"

	"github.com/BurntSushi/toml"
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/aliskhannn/finance-trivia-bot/internal/domain/entities"
)

//go:embed locales/*.toml
var localeFS embed.FS

var tags = map[entities.Language]language.Tag{
	entities.LanguageEnglish:    language.English,
	entities.LanguageIndonesian: language.Indonesian,
}

var matcher = language.NewMatcher([]language.Tag{language.English, language.Indonesian})

// Translator renders message IDs for a quiz language.
type Translator struct {
	bundle     *goi18n.Bundle
	localizers map[entities.Language]*goi18n.Localizer
}

// New loads the embedded message files.
func New() (*Translator, error) {
	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	files, err := fs.Glob(localeFS, "locales/*.toml")
	if err != nil {
		return nil, err
	}
	for _, name := range files {
		data, err := localeFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		if _, err := bundle.ParseMessageFileBytes(data, path.Base(name)); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
	}

	t := &Translator{
		bundle:     bundle,
		localizers: make(map[entities.Language]*goi18n.Localizer, len(tags)),
	}
	for lang, tag := range tags {
		t.localizers[lang] = goi18n.NewLocalizer(bundle, tag.String())
	}

	return t, nil
}

// T returns the message id in lang. Unknown ids come back as the id itself.
func (t *Translator) T(lang entities.Language, id string, data map[string]any) string {
	return t.localize(lang, &goi18n.LocalizeConfig{MessageID: id, TemplateData: data})
}

// Plural is T for messages with plural forms selected by count.
func (t *Translator) Plural(lang entities.Language, id string, count int, data map[string]any) string {
	if data == nil {
		data = map[string]any{}
	}
	if _, ok := data["Count"]; !ok {
		data["Count"] = count
	}
	return t.localize(lang, &goi18n.LocalizeConfig{MessageID: id, PluralCount: count, TemplateData: data})
}

// Explanation names the right option and the topic of q.
func (t *Translator) Explanation(lang entities.Language, q entities.Question) string {
	return t.T(lang, "explanation_body", map[string]any{
		"Answer":   q.CorrectAnswer(),
		"Category": q.Category,
	})
}

// Difficulty returns the display name of diff.
func (t *Translator) Difficulty(lang entities.Language, diff entities.Difficulty) string {
	return t.T(lang, string(diff), nil)
}

func (t *Translator) localize(lang entities.Language, cfg *goi18n.LocalizeConfig) string {
	loc, ok := t.localizers[lang]
	if !ok {
		loc = t.localizers[entities.LanguageEnglish]
	}

	msg, err := loc.Localize(cfg)
	if err != nil {
		return cfg.MessageID
	}
	return msg
}

// MatchLanguage maps a client language code such as "id-ID" or "en-GB" to
// the closest supported quiz language. English is the fallback.
func MatchLanguage(code string) entities.Language {
	tag, err := language.Parse(code)
	if err != nil {
		return entities.LanguageEnglish
	}

	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return entities.LanguageEnglish
	}
	if idx == 1 {
		return entities.LanguageIndonesian
	}
	return entities.LanguageEnglish
}
