package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-yearprogress/internal/engine"
)

func newTestController(t *testing.T, d *MemoryDisplay) (*Controller, *engine.QueueScheduler) {
	t.Helper()
	msgs, err := NewMessages("en")
	require.NoError(t, err)

	frames := &engine.QueueScheduler{}
	c := NewController(d, frames, msgs)
	c.Location = time.UTC
	return c, frames
}

func TestController_Load(t *testing.T) {
	d := &MemoryDisplay{Background: "rgb(255, 255, 255)"}
	c, frames := newTestController(t, d)

	c.Load(time.Date(2024, 1, 1, 15, 30, 0, 0, time.UTC))

	assert.Equal(t, "2024-01-01", d.Date)
	require.Len(t, d.Result, 3)
	assert.Equal(t, "On 1/1/2024 (Day 1 of the year), approximately 0.273224% of the year has passed.", d.Result[0])
	assert.Equal(t, "This is equivalent to about 0.98° in a 360-degree circle.", d.Result[1])
	assert.Equal(t, "This is a leap year.", d.Result[2])
	assert.Equal(t, "365 days remaining", d.Countdown)
	assert.True(t, d.ChartDrawn)
	assert.InDelta(t, 0.273224, d.ChartPercent, 1e-6)
	assert.Equal(t, engine.TextBlack, d.TextColor)

	assert.Equal(t, 1, frames.Pending(), "bar animation queued")
	frames.Drain(0)
	assert.InDelta(t, 0.27, d.Width, 0.5)
}

func TestController_InvalidDateSkipsRendering(t *testing.T) {
	d := &MemoryDisplay{Date: "2023-02-30", Background: "rgb(0, 0, 0)"}
	c, frames := newTestController(t, d)

	c.HandleDateChange()

	assert.Equal(t, []string{"Please enter a valid date."}, d.Result)
	assert.Equal(t, "Invalid date.", d.Countdown)
	assert.False(t, d.ChartDrawn, "chart must not be redrawn")
	assert.Zero(t, frames.Pending(), "bar must not animate")
	assert.Equal(t, engine.TextWhite, d.TextColor, "contrast still runs")
}

// TestController_InvalidKeepsPreviousState checks that a bad date leaves
// the last valid chart and bar untouched.
func TestController_InvalidKeepsPreviousState(t *testing.T) {
	d := &MemoryDisplay{Date: "2023-07-02"}
	c, frames := newTestController(t, d)
	c.HandleDateChange()
	frames.Drain(0)
	chart, width := d.ChartPercent, d.Width

	d.Date = "garbage"
	c.HandleDateChange()
	frames.Drain(0)

	assert.Equal(t, chart, d.ChartPercent)
	assert.Equal(t, width, d.Width)
}

func TestController_Countdown(t *testing.T) {
	d := &MemoryDisplay{Date: "2024-12-30"}
	c, frames := newTestController(t, d)

	res, ok := c.UpdateCountdown()
	require.True(t, ok)
	assert.Equal(t, 1, res.DaysRemaining)
	assert.Equal(t, "1 day remaining", d.Countdown)

	frames.Drain(0)
	assert.InDelta(t, res.PercentOfYearElapsed, d.Width, 0.5)
}

// TestController_RetargetMidAnimation changes the date while the bar is
// still moving; the same animation run must end on the new target.
func TestController_RetargetMidAnimation(t *testing.T) {
	d := &MemoryDisplay{Date: "2024-12-31"}
	c, frames := newTestController(t, d)

	c.HandleDateChange()
	frames.RunFrame()
	frames.RunFrame()
	require.True(t, c.Animator.Running())

	d.Date = "2024-01-01"
	c.HandleDateChange()
	assert.Equal(t, 1, frames.Pending())

	frames.Drain(0)
	res, err := engine.ComputeCountdown("2024-01-01", time.UTC)
	require.NoError(t, err)
	assert.InDelta(t, res.PercentOfYearElapsed, d.Width, 0.5)
}

func TestController_AdjustTextColor(t *testing.T) {
	d := &MemoryDisplay{Background: "rgba(0, 0, 0, 0)", Embedded: true}
	c, _ := newTestController(t, d)

	first := c.AdjustTextColor()
	second := c.AdjustTextColor()

	assert.Equal(t, engine.TextWhite, first.Color)
	assert.Equal(t, first, second)
	assert.Equal(t, engine.TextWhite, d.TextColor)
}

func TestSnapshot(t *testing.T) {
	msgs, err := NewMessages("en")
	require.NoError(t, err)

	s := Snapshot(msgs, "2023-12-31", "rgb(10, 10, 10)", false, time.UTC)
	assert.True(t, s.Valid())
	assert.Equal(t, 100.0, s.ChartPercent)
	assert.Equal(t, "0 days remaining", s.Countdown)
	assert.InDelta(t, 100, s.Width, 0.5)
	assert.LessOrEqual(t, s.Width, 100.0)
	assert.Equal(t, engine.TextWhite, s.TextColor)

	bad := Snapshot(msgs, "nope", "", true, nil)
	assert.False(t, bad.Valid())
	assert.False(t, bad.WidthSet)
	assert.Equal(t, engine.TextWhite, bad.TextColor)
}
