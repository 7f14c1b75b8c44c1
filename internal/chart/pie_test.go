package chart

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSurface logs the drawing calls made by PieChart.Draw.
type recordingSurface struct {
	size    int
	ops     []string
	discs   [][3]float64
	sectors [][5]float64
	grads   []Gradient
	failOn  string
}

func (s *recordingSurface) Size() int { return s.size }
func (s *recordingSurface) Clear()    { s.ops = append(s.ops, "clear") }

func (s *recordingSurface) FillDisc(cx, cy, r float64, fill string) error {
	s.ops = append(s.ops, "disc:"+fill)
	s.discs = append(s.discs, [3]float64{cx, cy, r})
	if s.failOn == "disc" {
		return errors.New("disc failed")
	}
	return nil
}

func (s *recordingSurface) FillSector(cx, cy, r, start, end float64, g Gradient) error {
	s.ops = append(s.ops, "sector")
	s.sectors = append(s.sectors, [5]float64{cx, cy, r, start, end})
	s.grads = append(s.grads, g)
	return nil
}

func TestPieChart_DrawOrderAndGeometry(t *testing.T) {
	s := &recordingSurface{size: 200}
	require.NoError(t, DefaultPieChart().Draw(s, 25))

	assert.Equal(t, []string{"clear", "disc:#ddd", "sector"}, s.ops)
	assert.Equal(t, [3]float64{100, 100, 80}, s.discs[0])

	sec := s.sectors[0]
	assert.Equal(t, 100.0, sec[0])
	assert.Equal(t, 80.0, sec[2])
	assert.InDelta(t, -math.Pi/2, sec[3], 1e-12, "starts at 12 o'clock")
	assert.InDelta(t, 0, sec[4], 1e-12, "a quarter ends at 3 o'clock")

	assert.Equal(t, Gradient{X0: 0, Y0: 0, X1: 200, Y1: 200, From: "#4CAF50", To: "#2E7D32"}, s.grads[0])
}

func TestPieChart_ZeroPercentSkipsSector(t *testing.T) {
	s := &recordingSurface{size: 100}
	require.NoError(t, DefaultPieChart().Draw(s, 0))
	assert.Equal(t, []string{"clear", "disc:#ddd"}, s.ops)
}

func TestPieChart_DiscErrorStops(t *testing.T) {
	s := &recordingSurface{size: 100, failOn: "disc"}
	err := DefaultPieChart().Draw(s, 50)
	require.Error(t, err)
	assert.NotContains(t, s.ops, "sector")
}

func TestSweepAngles_Clamp(t *testing.T) {
	start, end := SweepAngles(150)
	assert.InDelta(t, 2*math.Pi, end-start, 1e-12)

	start, end = SweepAngles(-10)
	assert.Equal(t, start, end)

	start, end = SweepAngles(math.NaN())
	assert.Equal(t, start, end)
}

func pixel(t *testing.T, img image.Image, x, y int) color.RGBA {
	t.Helper()
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

// TestRenderer_Pixels draws a half chart and samples the filled right half,
// the grey left half and a transparent corner.
func TestRenderer_Pixels(t *testing.T) {
	r := NewRenderer()
	img, err := r.Render(200, 50)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 200, 200), img.Bounds())

	right := pixel(t, img, 140, 100)
	assert.Greater(t, right.G, right.R, "sector should be green")
	assert.Greater(t, right.G, right.B)
	assert.Equal(t, uint8(0xff), right.A)

	left := pixel(t, img, 60, 100)
	assert.InDelta(t, 0xdd, int(left.R), 2)
	assert.InDelta(t, 0xdd, int(left.G), 2)
	assert.InDelta(t, 0xdd, int(left.B), 2)

	corner := pixel(t, img, 2, 2)
	assert.Equal(t, uint8(0), corner.A, "outside the disc stays clear")
}

// TestRenderer_ResizeIsIdempotent renders a full chart, then a smaller empty
// one, and checks nothing of the first render leaks into the second.
func TestRenderer_ResizeIsIdempotent(t *testing.T) {
	r := NewRenderer()
	_, err := r.Render(300, 100)
	require.NoError(t, err)

	img, err := r.Render(120, 0)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 120, 120), img.Bounds())

	c := pixel(t, img, 90, 60)
	assert.InDelta(t, int(c.R), int(c.G), 2, "no green left from the previous draw")
}

func TestRenderPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderPNG(&buf, 64, 75))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 64, img.Bounds().Dy())
}

func TestNewImageSurface_InvalidSize(t *testing.T) {
	_, err := NewImageSurface(0)
	assert.Error(t, err)
}
