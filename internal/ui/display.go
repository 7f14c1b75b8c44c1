package ui

import (
	"image"
	"image/draw"
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-yearprogress/internal/chart"
	"github.com/tartampluch/go-yearprogress/internal/config"
	"github.com/tartampluch/go-yearprogress/internal/engine"
)

// resultLineCount is the number of sentences a valid date produces.
const resultLineCount = 3

// FyneDisplay is the desktop window's implementation of dashboard.Display.
// All methods must run on the Fyne UI goroutine.
type FyneDisplay struct {
	DateEntry *DateEntry
	Lines     []*canvas.Text
	Countdown *canvas.Text
	Chart     *canvas.Raster
	Bar       *widget.ProgressBar

	app      fyne.App
	renderer *chart.Renderer
	percent  float64
	drawn    bool
	width    float64
	widthSet bool

	// onDateChanged is muted while the controller writes the date itself.
	onDateChanged func()
	muted         bool
}

// NewFyneDisplay builds the widgets of the main window.
func NewFyneDisplay(a fyne.App) *FyneDisplay {
	d := &FyneDisplay{
		DateEntry: NewDateEntry(),
		Countdown: canvas.NewText("", theme.Color(theme.ColorNameForeground)),
		Bar:       widget.NewProgressBar(),
		app:       a,
		renderer:  chart.NewRenderer(),
	}

	for i := 0; i < resultLineCount; i++ {
		line := canvas.NewText("", theme.Color(theme.ColorNameForeground))
		line.TextSize = config.ResultTextSize
		line.Alignment = fyne.TextAlignCenter
		d.Lines = append(d.Lines, line)
	}
	d.Countdown.TextSize = config.CountdownTextSize
	d.Countdown.TextStyle = fyne.TextStyle{Bold: true}
	d.Countdown.Alignment = fyne.TextAlignCenter

	d.Bar.Min = 0
	d.Bar.Max = config.MaxBarWidth

	d.Chart = canvas.NewRaster(d.renderChart)
	d.Chart.SetMinSize(fyne.NewSize(config.ChartMinSize, config.ChartMinSize))

	d.DateEntry.OnChanged = func(string) {
		if d.muted || d.onDateChanged == nil {
			return
		}
		d.onDateChanged()
	}
	return d
}

// Content lays the widgets out top to bottom.
func (d *FyneDisplay) Content(dateLabel string) fyne.CanvasObject {
	lines := make([]fyne.CanvasObject, 0, len(d.Lines))
	for _, l := range d.Lines {
		lines = append(lines, l)
	}

	return container.NewPadded(container.NewVBox(
		widget.NewForm(widget.NewFormItem(dateLabel, d.DateEntry)),
		container.NewVBox(lines...),
		container.NewCenter(d.Chart),
		layout.NewSpacer(),
		d.Countdown,
		d.Bar,
	))
}

// DateInput implements dashboard.Display.
func (d *FyneDisplay) DateInput() string {
	return d.DateEntry.Text
}

// SetDateInput implements dashboard.Display.
func (d *FyneDisplay) SetDateInput(value string) {
	d.muted = true
	d.DateEntry.SetText(value)
	d.muted = false
}

// SetResult implements dashboard.Display. Missing lines are blanked.
func (d *FyneDisplay) SetResult(lines []string) {
	for i, l := range d.Lines {
		l.Text = ""
		if i < len(lines) {
			l.Text = lines[i]
		}
		l.Refresh()
	}
}

// SetCountdown implements dashboard.Display.
func (d *FyneDisplay) SetCountdown(text string) {
	d.Countdown.Text = text
	d.Countdown.Refresh()
}

// DrawChart implements dashboard.Display.
func (d *FyneDisplay) DrawChart(percent float64) {
	d.percent = percent
	d.drawn = true
	d.Chart.Refresh()
}

// BarWidth implements engine.BarElement.
func (d *FyneDisplay) BarWidth() (float64, bool) {
	return d.width, d.widthSet
}

// SetBarWidth implements engine.BarElement.
func (d *FyneDisplay) SetBarWidth(percent float64) {
	d.width = percent
	d.widthSet = true
	d.Bar.SetValue(percent)
}

// BackgroundColor reports the current theme background as an rgba() string.
func (d *FyneDisplay) BackgroundColor() string {
	s := d.app.Settings()
	return engine.FormatCSSColor(s.Theme().Color(theme.ColorNameBackground, s.ThemeVariant()))
}

// SetTextColor implements dashboard.Display.
func (d *FyneDisplay) SetTextColor(c engine.TextColor) {
	rgba := c.RGBA()
	for _, l := range d.Lines {
		l.Color = rgba
		l.Refresh()
	}
	d.Countdown.Color = rgba
	d.Countdown.Refresh()
}

// IsEmbedded is always false: the desktop window is a top-level surface.
func (d *FyneDisplay) IsEmbedded() bool {
	return false
}

// renderChart is the raster generator. The chart is a square of the
// smaller edge centered in the raster; nothing is drawn before the first
// valid date.
func (d *FyneDisplay) renderChart(w, h int) image.Image {
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	if !d.drawn || w < 1 || h < 1 {
		return dst
	}

	side := min(w, h)
	start := time.Now()
	img, err := d.renderer.Render(side, d.percent)
	if err != nil {
		slog.Error(config.ErrChartRender,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)
		return dst
	}

	offset := image.Pt((w-side)/2, (h-side)/2)
	draw.Draw(dst, image.Rectangle{Min: offset, Max: offset.Add(image.Pt(side, side))}, img, image.Point{}, draw.Src)

	slog.Debug(config.MsgChartRendered,
		config.LogKeyComponent, config.CompChart,
		config.LogKeyPercent, d.percent,
		config.LogKeySize, side,
		config.LogKeyDuration, time.Since(start).Milliseconds())
	return dst
}

// frameTicker runs animation frames on the UI goroutine at the display
// refresh interval.
type frameTicker struct{}

// ScheduleNextFrame implements engine.FrameScheduler.
func (frameTicker) ScheduleNextFrame(fn func()) {
	time.AfterFunc(config.FrameInterval, func() {
		fyne.Do(fn)
	})
}
