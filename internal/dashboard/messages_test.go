package dashboard

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-yearprogress/internal/config"
	"github.com/tartampluch/go-yearprogress/internal/engine"
)

func TestMessages_Countdown_Plural(t *testing.T) {
	m, err := NewMessages("en")
	require.NoError(t, err)

	assert.Equal(t, "0 days remaining", m.Countdown(0))
	assert.Equal(t, "1 day remaining", m.Countdown(1))
	assert.Equal(t, "365 days remaining", m.Countdown(365))
}

func TestMessages_ResultLines_NotLeap(t *testing.T) {
	m, err := NewMessages("")
	require.NoError(t, err)

	p, err := engine.ComputeYearProgress("2023-12-31")
	require.NoError(t, err)

	lines := m.ResultLines(p)
	require.Len(t, lines, 3)
	assert.Equal(t, "On 12/31/2023 (Day 365 of the year), approximately 100.000000% of the year has passed.", lines[0])
	assert.Equal(t, "This is equivalent to about 360.00° in a 360-degree circle.", lines[1])
	assert.Equal(t, "This is not a leap year.", lines[2])
}

func TestMessages_TrayStatus(t *testing.T) {
	m, err := NewMessages("en")
	require.NoError(t, err)

	p, err := engine.ComputeYearProgress("2023-07-02")
	require.NoError(t, err)
	assert.Equal(t, "2023: 50.1% of the year", m.TrayStatus(p))
}

func TestMessages_MissingKeyFallsBack(t *testing.T) {
	m, err := NewMessages("en")
	require.NoError(t, err)
	assert.Equal(t, "no_such_key", m.Get("no_such_key"))

	var nilMsgs *Messages
	assert.Equal(t, config.TKeyInvalidDate, nilMsgs.Get(config.TKeyInvalidDate))
}

func TestMessages_Languages(t *testing.T) {
	m, err := NewMessages("en")
	require.NoError(t, err)
	assert.Equal(t, []string{"en"}, m.Languages)
}

// TestI18nIntegrity ensures that every translation key defined in config.go
// exists in the English catalog.
func TestI18nIntegrity(t *testing.T) {
	keys := []string{
		config.TKeyResultSummary,
		config.TKeyResultDegrees,
		config.TKeyResultLeap,
		config.TKeyResultNotLeap,
		config.TKeyInvalidDate,
		config.TKeyCountdown,
		config.TKeyCountdownError,
		config.TKeyTrayStatus,
		config.TKeyMenuOpen,
		config.TKeyMenuSettings,
		config.TKeyWinTitle,
		config.TKeyWinSettings,
		config.TKeyLblDate,
		config.TKeyLblServer,
		config.TKeyLblPort,
		config.TKeyHelpPort,
		config.TKeyLblRefresh,
		config.TKeyHelpInterval,
		config.TKeyLblMinutes,
		config.TKeyBtnSave,
		config.TKeyBtnCancel,
		config.TKeyErrPortReq,
		config.TKeyErrPortNum,
		config.TKeyErrPortRange,
		config.TKeyErrDateFormat,
		config.TKeyDatePlaceholder,
	}

	content, err := os.ReadFile("locales/active.en.json")
	require.NoError(t, err, "Must load active.en.json")

	var catalog map[string]any
	require.NoError(t, json.Unmarshal(content, &catalog), "JSON must be valid")

	defined := make(map[string]bool, len(keys))
	for _, k := range keys {
		defined[k] = true
		_, exists := catalog[k]
		assert.Truef(t, exists, "Key '%s' defined in config.go is missing in active.en.json", k)
	}

	for k := range catalog {
		if strings.HasPrefix(k, "_") {
			continue
		}
		assert.Truef(t, defined[k], "Key '%s' exists in JSON but has no constant", k)
	}
}
