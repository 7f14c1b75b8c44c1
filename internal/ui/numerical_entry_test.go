package ui_test

import (
	"testing"

	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-yearprogress/internal/ui"
)

func TestNumericalEntry_TypedRune(t *testing.T) {
	entry := ui.NewNumericalEntry()
	window := test.NewWindow(entry)
	defer window.Close()

	tests := []struct {
		name     string
		input    rune
		accepted bool
	}{
		{"Digit_Zero", '0', true},
		{"Digit_Nine", '9', true},
		{"Digit_Five", '5', true},
		{"Letter_a", 'a', false},
		{"Letter_Z", 'Z', false},
		{"Symbol_Dash", '-', false},
		{"Symbol_Space", ' ', false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry.SetText("")
			test.Type(entry, string(tt.input))

			if tt.accepted {
				assert.Equal(t, string(tt.input), entry.Text)
			} else {
				assert.Empty(t, entry.Text)
			}
		})
	}
}

func TestNumericalEntry_Keyboard(t *testing.T) {
	entry := ui.NewNumericalEntry()
	assert.Equal(t, mobile.NumberKeyboard, entry.Keyboard())
}

// TestNumericalEntry_DirectSetText documents that SetText bypasses the
// keystroke filter; validation happens separately.
func TestNumericalEntry_DirectSetText(t *testing.T) {
	entry := ui.NewNumericalEntry()
	entry.SetText("abc")
	assert.Equal(t, "abc", entry.Text)
}

func TestDateEntry_TypedRune(t *testing.T) {
	entry := ui.NewDateEntry()
	window := test.NewWindow(entry)
	defer window.Close()

	test.Type(entry, "2024/02-29 x")
	assert.Equal(t, "202402-29", entry.Text, "only digits and dashes are kept")

	entry.SetText("")
	test.Type(entry, "2024-02-29")
	assert.Equal(t, "2024-02-29", entry.Text)
}

func TestDateEntry_Keyboard(t *testing.T) {
	entry := ui.NewDateEntry()
	assert.Equal(t, mobile.NumberKeyboard, entry.Keyboard())
}
