// Package chart draws the year progress pie chart onto a square surface.
package chart

import (
	"math"

	"github.com/tartampluch/go-yearprogress/internal/config"
)

// Gradient is a two-stop linear gradient between two points.
type Gradient struct {
	X0, Y0, X1, Y1 float64
	From, To       string
}

// Surface is the subset of a 2D canvas the pie chart needs. Angles are in
// radians, 0 pointing right and growing clockwise on screen.
type Surface interface {
	// Size is the edge length of the square surface in pixels.
	Size() int
	Clear()
	FillDisc(cx, cy, r float64, fill string) error
	FillSector(cx, cy, r, start, end float64, fill Gradient) error
}

// PieChart holds the colors of the chart.
type PieChart struct {
	Background    string
	GradientStart string
	GradientEnd   string
}

// DefaultPieChart is the grey disc with the green sector.
func DefaultPieChart() PieChart {
	return PieChart{
		Background:    config.ChartBackground,
		GradientStart: config.ChartGradientStart,
		GradientEnd:   config.ChartGradientEnd,
	}
}

// Geometry returns the center and radius used for a surface of the given size.
func Geometry(size int) (cx, cy, r float64) {
	cx = float64(size) / 2
	cy = cx
	return cx, cy, cx * config.ChartRadiusRatio
}

// SweepAngles converts a percentage into start and end angles of the
// sector, starting at 12 o'clock. Out of range percentages are clamped.
func SweepAngles(percent float64) (start, end float64) {
	if math.IsNaN(percent) {
		percent = 0
	}
	percent = math.Max(0, math.Min(config.PercentScale, percent))

	start = config.ChartStartAngleDeg * math.Pi / 180
	return start, start + percent/config.PercentScale*2*math.Pi
}

// Draw clears s and paints the chart for percent.
func (p PieChart) Draw(s Surface, percent float64) error {
	size := s.Size()
	cx, cy, r := Geometry(size)

	s.Clear()
	if err := s.FillDisc(cx, cy, r, p.Background); err != nil {
		return err
	}

	start, end := SweepAngles(percent)
	if end == start {
		return nil
	}

	return s.FillSector(cx, cy, r, start, end, Gradient{
		X0: 0, Y0: 0,
		X1: float64(size), Y1: float64(size),
		From: p.GradientStart,
		To:   p.GradientEnd,
	})
}
