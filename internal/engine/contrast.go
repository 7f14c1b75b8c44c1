package engine

import (
	"fmt"
	"image/color"
	"regexp"
	"strconv"

	"github.com/tartampluch/go-yearprogress/internal/config"
)

// TextColor is a CSS hex color chosen for foreground text.
type TextColor string

const (
	TextWhite TextColor = config.TextColorWhite
	TextBlack TextColor = config.TextColorBlack
)

// RGBA converts the text color for toolkits that take image/color values.
func (c TextColor) RGBA() color.NRGBA {
	if c == TextWhite {
		return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	return color.NRGBA{A: 0xff}
}

// ContrastReason records which branch of the decision applied.
type ContrastReason string

const (
	ReasonUnparsed    ContrastReason = "unparsed_background"
	ReasonTransparent ContrastReason = "transparent_background"
	ReasonLuminance   ContrastReason = "luminance"
)

// BackgroundColor is an rgb(a) color with 0-255 channels and 0-1 alpha.
type BackgroundColor struct {
	R, G, B float64
	A       float64
}

// Luminance is the BT.601 weighted sum of the channels.
func (c BackgroundColor) Luminance() float64 {
	return config.LumaWeightR*c.R + config.LumaWeightG*c.G + config.LumaWeightB*c.B
}

// ContrastDecision is the chosen text color plus the facts behind it.
type ContrastDecision struct {
	Color      TextColor
	Reason     ContrastReason
	Background BackgroundColor
	Luminance  float64
	Parsed     bool
}

var colorToken = regexp.MustCompile(`\d+\.?\d*`)

// ParseBackgroundColor reads "rgb(r, g, b)" or "rgba(r, g, b, a)" style
// strings. Only the numeric tokens matter; alpha defaults to 1.
func ParseBackgroundColor(value string) (BackgroundColor, bool) {
	tokens := colorToken.FindAllString(value, -1)
	if len(tokens) < 3 {
		return BackgroundColor{}, false
	}

	var vals [4]float64
	vals[3] = 1
	for i := 0; i < len(tokens) && i < 4; i++ {
		v, err := strconv.ParseFloat(tokens[i], 64)
		if err != nil {
			return BackgroundColor{}, false
		}
		vals[i] = v
	}
	return BackgroundColor{R: vals[0], G: vals[1], B: vals[2], A: vals[3]}, true
}

// FormatCSSColor renders c as "rgba(r, g, b, a)" so it can be fed back
// through ParseBackgroundColor.
func FormatCSSColor(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	alpha := strconv.FormatFloat(float64(n.A)/0xff, 'f', -1, 64)
	return fmt.Sprintf(config.CSSColorFormat, n.R, n.G, n.B, alpha)
}

// ChooseTextColor picks readable text for the given background. Unknown or
// fully transparent backgrounds assume a dark host page when embedded and a
// light default page otherwise.
func ChooseTextColor(background string, embedded bool) ContrastDecision {
	fallback := TextBlack
	if embedded {
		fallback = TextWhite
	}

	bg, ok := ParseBackgroundColor(background)
	if !ok {
		return ContrastDecision{Color: fallback, Reason: ReasonUnparsed}
	}

	lum := bg.Luminance()
	d := ContrastDecision{Background: bg, Luminance: lum, Parsed: true}
	if bg.A == 0 {
		d.Color = fallback
		d.Reason = ReasonTransparent
		return d
	}

	d.Reason = ReasonLuminance
	d.Color = TextBlack
	if lum < config.LuminanceThreshold {
		d.Color = TextWhite
	}
	return d
}
