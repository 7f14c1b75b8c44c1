package dashboard

import (
	"time"

	"github.com/tartampluch/go-yearprogress/internal/engine"
)

// maxSettleFrames bounds Snapshot's frame loop; the ease settles in about
// fifty frames for any target in [0,100].
const maxSettleFrames = 500

// MemoryDisplay keeps the widget's state in plain fields. It backs headless
// rendering where there is no window to draw into.
type MemoryDisplay struct {
	Date         string
	Result       []string
	Countdown    string
	ChartPercent float64
	ChartDrawn   bool
	Width        float64
	WidthSet     bool
	Background   string
	TextColor    engine.TextColor
	Embedded     bool
}

func (d *MemoryDisplay) DateInput() string               { return d.Date }
func (d *MemoryDisplay) SetDateInput(v string)           { d.Date = v }
func (d *MemoryDisplay) SetResult(lines []string)        { d.Result = lines }
func (d *MemoryDisplay) SetCountdown(text string)        { d.Countdown = text }
func (d *MemoryDisplay) BackgroundColor() string         { return d.Background }
func (d *MemoryDisplay) SetTextColor(c engine.TextColor) { d.TextColor = c }
func (d *MemoryDisplay) IsEmbedded() bool                { return d.Embedded }

func (d *MemoryDisplay) DrawChart(percent float64) {
	d.ChartPercent = percent
	d.ChartDrawn = true
}

func (d *MemoryDisplay) BarWidth() (float64, bool) { return d.Width, d.WidthSet }

func (d *MemoryDisplay) SetBarWidth(p float64) {
	d.Width = p
	d.WidthSet = true
}

// Valid reports whether the last pass produced a chart.
func (d *MemoryDisplay) Valid() bool {
	return d.ChartDrawn
}

// Snapshot runs one full date-changed pass for date and plays the bar
// animation until it settles.
func Snapshot(msgs *Messages, date, background string, embedded bool, loc *time.Location) *MemoryDisplay {
	d := &MemoryDisplay{Date: date, Background: background, Embedded: embedded}
	frames := &engine.QueueScheduler{}

	c := NewController(d, frames, msgs)
	if loc != nil {
		c.Location = loc
	}
	c.HandleDateChange()
	frames.Drain(maxSettleFrames)
	return d
}
