// Package plotter builds light curve charts and encodes them as images.
package plotter

import (
	"fmt"
	"io"
	"math"

	"github.com/huangsam/lightcurve/schema"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// rangePadding is the fraction of the data span added on each side of an axis.
const rangePadding = 0.05

// minSpan keeps axes valid when every value is the same.
const minSpan = 0.1

var (
	seriesColor = drawing.ColorFromHex("1f77b4")
	gridColor   = drawing.ColorFromHex("d9d9d9")
)

// Options controls the image size of a chart.
type Options struct {
	Width  int
	Height int
}

// Title returns the chart title for a light curve file.
func Title(name string) string {
	return schema.TitlePrefix + name
}

// Build creates a chart for the light curve. X is phase, Y is flux, and the
// Y axis is descending so that larger flux values sit lower on the image.
func Build(lc schema.LightCurve, opts Options) chart.Chart {
	xMin, xMax := paddedBounds(lc.Phase)
	yMin, yMax := paddedBounds(lc.Flux)

	grid := chart.Style{
		StrokeColor: gridColor,
		StrokeWidth: 1.0,
	}

	return chart.Chart{
		Title:  Title(lc.Name),
		Width:  opts.Width,
		Height: opts.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:           schema.PhaseLabel,
			Range:          &chart.ContinuousRange{Min: xMin, Max: xMax},
			GridMajorStyle: grid,
		},
		YAxis: chart.YAxis{
			Name:           schema.FluxLabel,
			Range:          &chart.ContinuousRange{Min: yMin, Max: yMax, Descending: true},
			GridMajorStyle: grid,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    lc.Name,
				XValues: lc.Phase,
				YValues: lc.Flux,
				Style: chart.Style{
					StrokeColor: seriesColor,
					StrokeWidth: 1.5,
					DotColor:    seriesColor,
					DotWidth:    3,
				},
			},
		},
	}
}

// Render encodes the chart in the given image format.
func Render(c chart.Chart, format schema.ImageFormat, w io.Writer) error {
	var provider chart.RendererProvider
	switch format {
	case schema.PNGImage, "":
		provider = chart.PNG
	case schema.SVGImage:
		provider = chart.SVG
	default:
		return fmt.Errorf("unsupported image format: %s", format)
	}
	if err := c.Render(provider, w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

// paddedBounds returns the axis bounds for values with a margin on both sides.
// An empty or constant input still yields a non-zero span.
func paddedBounds(values []float64) (lo, hi float64) {
	if len(values) == 0 {
		return 0, 1
	}
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = math.Max(math.Abs(hi)*rangePadding*2, minSpan)
		return lo - span/2, hi + span/2
	}
	return lo - span*rangePadding, hi + span*rangePadding
}
