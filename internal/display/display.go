package display

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-softclock/internal/config"
	"github.com/tartampluch/go-softclock/internal/engine"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Formatter renders clock states as human-readable, localized text.
type Formatter struct {
	Lang      language.Tag
	localizer *i18n.Localizer
}

// NewFormatter loads the embedded locales and prepares a localizer for lang.
// Languages without a locale file fall back to English.
func NewFormatter(lang string) (*Formatter, error) {
	tag, err := language.Parse(lang)
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", config.ErrLanguage, lang, err)
	}

	bundle, err := loadBundle()
	if err != nil {
		return nil, err
	}

	return &Formatter{
		Lang:      tag,
		localizer: i18n.NewLocalizer(bundle, tag.String(), config.DefaultLanguage),
	}, nil
}

// loadBundle registers every active.<lang>.json file found in the embedded locales.
func loadBundle() (*i18n.Bundle, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrLocalesAccess, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompDisplay,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			return nil, fmt.Errorf("%s %s: %w", config.ErrLocaleLoad, name, err)
		}
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompDisplay,
			config.LogKeyFile, name,
		)
	}
	return bundle, nil
}

// WeekdayName returns the localized name of weekday (0 = Sunday).
func (f *Formatter) WeekdayName(weekday uint8) string {
	return f.msg(config.TKeyWeekdayPrefix+strconv.Itoa(int(weekday)), nil)
}

// MonthName returns the localized name of month (1 = January).
func (f *Formatter) MonthName(month uint8) string {
	return f.msg(config.TKeyMonthPrefix+strconv.Itoa(int(month)), nil)
}

// Line renders the full status line, flagged when the time was never set
// by an external source.
func (f *Formatter) Line(s engine.ClockState) string {
	line := f.msg(config.TKeyStatusLine, map[string]any{
		"Weekday": f.WeekdayName(s.WeekDay),
		"Month":   f.MonthName(s.Month),
		"Day":     s.Day,
		"Year":    s.FullYear(),
		"Time":    fmt.Sprintf("%02d:%02d:%02d", s.Hour, s.Minute, s.Second),
	})
	if !s.IsTimeSet {
		line += " " + f.msg(config.TKeyTimeNotSet, nil)
	}
	return line
}

// msg translates key, returning the key itself when no translation exists.
func (f *Formatter) msg(key string, data map[string]any) string {
	out, err := f.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompDisplay,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return key
	}
	return out
}
