// Package dashboard wires the calendar engine to a display: it is the
// "date changed" handler shared by the desktop window and the HTTP widget.
package dashboard

import (
	"log/slog"
	"time"

	"github.com/tartampluch/go-yearprogress/internal/config"
	"github.com/tartampluch/go-yearprogress/internal/engine"
)

// Display is the set of named UI elements the controller reads and writes.
type Display interface {
	engine.BarElement

	DateInput() string
	SetDateInput(value string)
	SetResult(lines []string)
	SetCountdown(text string)
	DrawChart(percent float64)
	BackgroundColor() string
	SetTextColor(c engine.TextColor)
	IsEmbedded() bool
}

// Controller recomputes every output of the widget when the date changes.
type Controller struct {
	Display  Display
	Messages *Messages
	Animator *engine.ProgressBarAnimator
	Location *time.Location
}

// NewController binds a display to its own bar animator.
func NewController(d Display, scheduler engine.FrameScheduler, msgs *Messages) *Controller {
	return &Controller{
		Display:  d,
		Messages: msgs,
		Animator: engine.NewProgressBarAnimator(d, scheduler),
		Location: time.Local,
	}
}

// Load seeds the date input with today's date and renders everything.
func (c *Controller) Load(today time.Time) {
	c.Display.SetDateInput(engine.DateOf(today).String())
	c.HandleDateChange()
}

// HandleDateChange runs progress, countdown and contrast in that order.
func (c *Controller) HandleDateChange() {
	slog.Debug(config.MsgDateChanged,
		config.LogKeyComponent, config.CompDashboard,
		config.LogKeyDate, c.Display.DateInput())

	c.CalculateProgress()
	c.UpdateCountdown()
	c.AdjustTextColor()
}

// CalculateProgress writes the result lines and redraws the chart. On an
// invalid date it writes the validation message and leaves the chart alone.
func (c *Controller) CalculateProgress() (engine.YearProgress, bool) {
	value := c.Display.DateInput()
	p, err := engine.ComputeYearProgress(value)
	if err != nil {
		slog.Debug(config.MsgDateInvalid,
			config.LogKeyComponent, config.CompDashboard,
			config.LogKeyValue, value,
			config.LogKeyError, err)
		c.Display.SetResult([]string{c.Messages.Get(config.TKeyInvalidDate)})
		return engine.YearProgress{}, false
	}

	slog.Debug(config.MsgProgress,
		config.LogKeyComponent, config.CompDashboard,
		config.LogKeyDate, p.Date.String(),
		config.LogKeyDayOfYear, p.DayOfYear,
		config.LogKeyPercent, p.PercentPassed)

	c.Display.SetResult(c.Messages.ResultLines(p))
	c.Display.DrawChart(p.PercentPassed)
	return p, true
}

// UpdateCountdown writes the days remaining and retargets the bar.
func (c *Controller) UpdateCountdown() (engine.CountdownResult, bool) {
	res, err := engine.ComputeCountdown(c.Display.DateInput(), c.Location)
	if err != nil {
		c.Display.SetCountdown(c.Messages.Get(config.TKeyCountdownError))
		return engine.CountdownResult{}, false
	}

	slog.Debug(config.MsgCountdown,
		config.LogKeyComponent, config.CompDashboard,
		config.LogKeyDays, res.DaysRemaining,
		config.LogKeyPercent, res.PercentOfYearElapsed)

	c.Display.SetCountdown(c.Messages.Countdown(res.DaysRemaining))
	c.Animator.AnimateTo(res.PercentOfYearElapsed)
	return res, true
}

// AdjustTextColor picks the text color for the current background.
func (c *Controller) AdjustTextColor() engine.ContrastDecision {
	embedded := c.Display.IsEmbedded()
	bg := c.Display.BackgroundColor()
	d := engine.ChooseTextColor(bg, embedded)

	slog.Debug(config.MsgContrast,
		config.LogKeyComponent, config.CompDashboard,
		config.LogKeyBG, bg,
		config.LogKeyEmbedded, embedded,
		config.LogKeyLuminance, d.Luminance,
		config.LogKeyAlpha, d.Background.A,
		config.LogKeyReason, string(d.Reason),
		config.LogKeyColor, string(d.Color))

	c.Display.SetTextColor(d.Color)
	return d
}
