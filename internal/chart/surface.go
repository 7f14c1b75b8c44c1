package chart

import (
	"fmt"
	"image"
	"io"
	"math"

	"github.com/gogpu/gg"
	"github.com/tartampluch/go-yearprogress/internal/config"
)

// ImageSurface is a Surface backed by a gg software drawing context.
type ImageSurface struct {
	dc *gg.Context
}

// NewImageSurface allocates a square surface with the given edge.
func NewImageSurface(size int) (*ImageSurface, error) {
	if size < 1 {
		return nil, fmt.Errorf("%s: %d", config.ErrChartSize, size)
	}
	return &ImageSurface{dc: gg.NewContext(size, size)}, nil
}

// Resize makes the surface a square of the given edge, reusing the buffer
// when the edge is unchanged.
func (s *ImageSurface) Resize(size int) error {
	return s.dc.Resize(size, size)
}

// Size implements Surface.
func (s *ImageSurface) Size() int {
	return s.dc.Width()
}

// Clear implements Surface.
func (s *ImageSurface) Clear() {
	s.dc.ClearPath()
	s.dc.Clear()
}

// FillDisc implements Surface.
func (s *ImageSurface) FillDisc(cx, cy, r float64, fill string) error {
	s.dc.SetHexColor(fill)
	s.dc.DrawCircle(cx, cy, r)
	return s.dc.Fill()
}

// FillSector implements Surface. The path runs center, arc start, arc,
// back to center.
func (s *ImageSurface) FillSector(cx, cy, r, start, end float64, fill Gradient) error {
	brush := gg.NewLinearGradientBrush(fill.X0, fill.Y0, fill.X1, fill.Y1).
		AddColorStop(0, gg.Hex(fill.From)).
		AddColorStop(1, gg.Hex(fill.To))
	s.dc.SetFillBrush(brush)

	s.dc.MoveTo(cx, cy)
	s.dc.LineTo(cx+r*math.Cos(start), cy+r*math.Sin(start))
	s.dc.DrawArc(cx, cy, r, start, end)
	s.dc.ClosePath()
	return s.dc.Fill()
}

// Image returns the rendered pixels.
func (s *ImageSurface) Image() image.Image {
	return s.dc.Image()
}

// EncodePNG writes the surface as PNG.
func (s *ImageSurface) EncodePNG(w io.Writer) error {
	return s.dc.EncodePNG(w)
}

// Close releases the drawing context.
func (s *ImageSurface) Close() error {
	return s.dc.Close()
}

// Renderer redraws one chart into a reusable surface, resizing it to the
// displayed width on every call.
type Renderer struct {
	Chart   PieChart
	surface *ImageSurface
}

// NewRenderer returns a renderer for the default chart colors.
func NewRenderer() *Renderer {
	return &Renderer{Chart: DefaultPieChart()}
}

// Render draws percent at the given width and returns the image.
func (r *Renderer) Render(width int, percent float64) (image.Image, error) {
	if width < 1 {
		width = 1
	}

	if r.surface == nil {
		s, err := NewImageSurface(width)
		if err != nil {
			return nil, err
		}
		r.surface = s
	} else if err := r.surface.Resize(width); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrChartRender, err)
	}

	if err := r.Chart.Draw(r.surface, percent); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrChartRender, err)
	}
	return r.surface.Image(), nil
}

// RenderPNG draws one chart of the given width and encodes it to w.
func RenderPNG(w io.Writer, width int, percent float64) error {
	s, err := NewImageSurface(width)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if err := DefaultPieChart().Draw(s, percent); err != nil {
		return fmt.Errorf("%s: %w", config.ErrChartRender, err)
	}
	if err := s.EncodePNG(w); err != nil {
		return fmt.Errorf("%s: %w", config.ErrChartEncode, err)
	}
	return nil
}
