package engine

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBackgroundColor(t *testing.T) {
	tests := []struct {
		input  string
		want   BackgroundColor
		wantOK bool
	}{
		{"rgb(255, 255, 255)", BackgroundColor{255, 255, 255, 1}, true},
		{"rgba(0, 0, 0, 0)", BackgroundColor{0, 0, 0, 0}, true},
		{"rgba(10, 20, 30, 0.5)", BackgroundColor{10, 20, 30, 0.5}, true},
		{"rgb(12.5, 0, 3)", BackgroundColor{12.5, 0, 3, 1}, true},
		{"transparent", BackgroundColor{}, false},
		{"rgb(1, 2)", BackgroundColor{}, false},
		{"", BackgroundColor{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseBackgroundColor(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChooseTextColor(t *testing.T) {
	tests := []struct {
		name       string
		background string
		embedded   bool
		want       TextColor
		reason     ContrastReason
	}{
		{"White page", "rgb(255, 255, 255)", false, TextBlack, ReasonLuminance},
		{"White page embedded", "rgb(255, 255, 255)", true, TextBlack, ReasonLuminance},
		{"Dark page", "rgb(20, 20, 20)", false, TextWhite, ReasonLuminance},
		{"Just below threshold", "rgb(127, 127, 127)", false, TextWhite, ReasonLuminance},
		// 0.299*128+0.587*128+0.114*128 evaluates to 127.99999999999999.
		{"Grey 128 rounds below threshold", "rgb(128, 128, 128)", false, TextWhite, ReasonLuminance},
		{"Just above threshold", "rgb(129, 129, 129)", false, TextBlack, ReasonLuminance},
		{"Saturated blue is dark", "rgb(0, 0, 255)", false, TextWhite, ReasonLuminance},
		{"Saturated green is light", "rgb(0, 255, 0)", false, TextBlack, ReasonLuminance},
		{"Half transparent uses luminance", "rgba(0, 0, 0, 0.5)", false, TextWhite, ReasonLuminance},
		{"Transparent standalone", "rgba(0, 0, 0, 0)", false, TextBlack, ReasonTransparent},
		{"Transparent embedded", "rgba(0, 0, 0, 0)", true, TextWhite, ReasonTransparent},
		{"Unparsed standalone", "transparent", false, TextBlack, ReasonUnparsed},
		{"Unparsed embedded", "transparent", true, TextWhite, ReasonUnparsed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := ChooseTextColor(tt.background, tt.embedded)
			assert.Equal(t, tt.want, d.Color)
			assert.Equal(t, tt.reason, d.Reason)
		})
	}
}

func TestChooseTextColor_Idempotent(t *testing.T) {
	for _, bg := range []string{"rgb(200, 30, 40)", "rgba(0, 0, 0, 0)", "garbage"} {
		first := ChooseTextColor(bg, true)
		second := ChooseTextColor(bg, true)
		assert.Equal(t, first, second, bg)
	}
}

func TestFormatCSSColor_RoundTrip(t *testing.T) {
	s := FormatCSSColor(color.NRGBA{R: 30, G: 40, B: 50, A: 0xff})
	assert.Equal(t, "rgba(30, 40, 50, 1)", s)

	bg, ok := ParseBackgroundColor(s)
	require.True(t, ok)
	assert.Equal(t, BackgroundColor{30, 40, 50, 1}, bg)

	assert.Equal(t, "rgba(0, 0, 0, 0)", FormatCSSColor(color.Transparent))
}

func TestTextColor_RGBA(t *testing.T) {
	assert.Equal(t, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, TextWhite.RGBA())
	assert.Equal(t, color.NRGBA{A: 0xff}, TextBlack.RGBA())
}
