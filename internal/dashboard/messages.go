package dashboard

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-yearprogress/internal/config"
	"github.com/tartampluch/go-yearprogress/internal/engine"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

const (
	localeDir    = "locales"
	localePrefix = "active."
	localeSuffix = ".json"
)

// Messages renders user-facing text from the embedded message catalog.
type Messages struct {
	bundle    *i18n.Bundle
	localizer *i18n.Localizer
	Languages []string
}

// NewMessages loads every embedded locale and selects lang.
func NewMessages(lang string) (*Messages, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir(localeDir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrLocalesAccess, err)
	}

	var detected []string
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, localePrefix) || !strings.HasSuffix(name, localeSuffix) {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name)
			continue
		}

		code := strings.TrimSuffix(strings.TrimPrefix(name, localePrefix), localeSuffix)
		if code == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, localeDir+"/"+name); err != nil {
			return nil, fmt.Errorf("%s %s: %w", config.ErrLocaleLoad, name, err)
		}
		detected = append(detected, code)
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, code)
	}

	if lang == "" {
		lang = config.DefaultLanguage
	}
	return &Messages{
		bundle:    bundle,
		localizer: i18n.NewLocalizer(bundle, lang),
		Languages: detected,
	}, nil
}

// Get translates a key without template data. Unknown keys come back as is.
func (m *Messages) Get(key string) string {
	return m.localize(&i18n.LocalizeConfig{MessageID: key})
}

func (m *Messages) localize(lc *i18n.LocalizeConfig) string {
	if m == nil || m.localizer == nil {
		return lc.MessageID
	}
	msg, err := m.localizer.Localize(lc)
	if err != nil || msg == "" {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, lc.MessageID,
			config.LogKeyError, err)
		return lc.MessageID
	}
	return msg
}

// ResultLines returns the three sentences describing a date's progress.
func (m *Messages) ResultLines(p engine.YearProgress) []string {
	summary := m.localize(&i18n.LocalizeConfig{
		MessageID: config.TKeyResultSummary,
		TemplateData: map[string]any{
			"Month":     int(p.Date.Month),
			"Day":       p.Date.Day,
			"Year":      p.Date.Year,
			"DayOfYear": p.DayOfYear,
			"Percent":   strconv.FormatFloat(p.PercentPassed, 'f', config.ChartPercentDecimal, 64),
		},
	})
	degrees := m.localize(&i18n.LocalizeConfig{
		MessageID: config.TKeyResultDegrees,
		TemplateData: map[string]any{
			"Degrees": strconv.FormatFloat(p.DegreesPassed, 'f', config.ChartDegreeDecimal, 64),
		},
	})

	leapKey := config.TKeyResultNotLeap
	if p.IsLeapYear {
		leapKey = config.TKeyResultLeap
	}
	return []string{summary, degrees, m.Get(leapKey)}
}

// Countdown returns the "N days remaining" line.
func (m *Messages) Countdown(days int) string {
	return m.localize(&i18n.LocalizeConfig{
		MessageID:    config.TKeyCountdown,
		TemplateData: map[string]any{"Count": days},
		PluralCount:  days,
	})
}

// TrayStatus returns the short label used by the tray and window titles.
func (m *Messages) TrayStatus(p engine.YearProgress) string {
	return m.localize(&i18n.LocalizeConfig{
		MessageID: config.TKeyTrayStatus,
		TemplateData: map[string]any{
			"Year":    p.Date.Year,
			"Percent": strconv.FormatFloat(p.PercentPassed, 'f', 1, 64),
		},
	})
}
