package price

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"

	"github.com/selivandex/fo-news-dashboard/internal/indicators"
	"github.com/selivandex/fo-news-dashboard/pkg/models"
)

const chartPadding = 4

var (
	lineColor = color.NRGBA{R: 0, G: 255, B: 255, A: 153} // cyan, 60%
	fillColor = color.NRGBA{R: 0, G: 255, B: 255, A: 26}  // cyan, 10%
	smaColor  = color.NRGBA{R: 255, G: 255, B: 255, A: 77}
)

// ChartOptions controls background chart rendering
type ChartOptions struct {
	Width     int
	Height    int
	SMAPeriod int
}

// DefaultChartOptions returns the dashboard background size
func DefaultChartOptions() ChartOptions {
	return ChartOptions{Width: 1000, Height: 300, SMAPeriod: 20}
}

// RenderBackground draws a decorative close-price chart as a transparent PNG.
// There are no axes or labels. An empty series yields a blank image.
func RenderBackground(points []models.PricePoint, opts ChartOptions) ([]byte, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid chart size %dx%d", opts.Width, opts.Height)
	}

	img := image.NewNRGBA(image.Rect(0, 0, opts.Width, opts.Height))

	if len(points) > 0 {
		closes := models.Closes(points)
		plot := newPlotArea(closes, opts.Width, opts.Height)

		plot.fillBelow(img, closes)

		if opts.SMAPeriod > 1 {
			if sma, err := indicators.SMA(closes, opts.SMAPeriod); err == nil {
				// Leading values average a partial window
				plot.polyline(img, sma, opts.SMAPeriod-1, smaColor)
			}
		}

		plot.polyline(img, closes, 0, lineColor)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode chart: %w", err)
	}

	return buf.Bytes(), nil
}

// plotArea maps series index/value to pixel coordinates
type plotArea struct {
	width  int
	height int
	count  int
	min    float64
	span   float64
}

func newPlotArea(values []float64, width, height int) *plotArea {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	span := hi - lo
	if span == 0 {
		span = 1
	}

	return &plotArea{width: width, height: height, count: len(values), min: lo, span: span}
}

func (p *plotArea) x(i int) int {
	if p.count <= 1 {
		return p.width / 2
	}
	return int(math.Round(float64(i) * float64(p.width-1) / float64(p.count-1)))
}

func (p *plotArea) y(v float64) int {
	usable := float64(p.height - 1 - 2*chartPadding)
	if usable < 0 {
		usable = 0
	}
	return chartPadding + int(math.Round((1-(v-p.min)/p.span)*usable))
}

// valueAt linearly interpolates the series at pixel column col
func (p *plotArea) valueAt(values []float64, col int) float64 {
	if len(values) == 1 || p.width <= 1 {
		return values[0]
	}

	pos := float64(col) * float64(len(values)-1) / float64(p.width-1)
	i := int(pos)
	if i >= len(values)-1 {
		return values[len(values)-1]
	}

	frac := pos - float64(i)
	return values[i] + (values[i+1]-values[i])*frac
}

// fillBelow shades the area between the series and its minimum
func (p *plotArea) fillBelow(img *image.NRGBA, values []float64) {
	base := p.y(p.min)
	for col := 0; col < p.width; col++ {
		top := p.y(p.valueAt(values, col))
		for row := top; row <= base; row++ {
			img.SetNRGBA(col, row, fillColor)
		}
	}
}

// polyline joins consecutive points starting at index start
func (p *plotArea) polyline(img *image.NRGBA, values []float64, start int, c color.NRGBA) {
	if start >= len(values) {
		return
	}
	if len(values)-start == 1 {
		img.SetNRGBA(p.x(start), p.y(values[start]), c)
		return
	}

	for i := start + 1; i < len(values); i++ {
		drawLine(img, p.x(i-1), p.y(values[i-1]), p.x(i), p.y(values[i]), c)
	}
}

// drawLine rasterizes a segment with Bresenham's algorithm
func drawLine(img *image.NRGBA, x0, y0, x1, y1 int, c color.NRGBA) {
	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		img.SetNRGBA(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
