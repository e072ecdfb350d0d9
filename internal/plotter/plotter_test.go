package plotter

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/huangsam/lightcurve/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	chart "github.com/wcharczuk/go-chart/v2"
)

func sampleCurve() schema.LightCurve {
	return schema.LightCurve{
		Name:  "c.csv",
		Phase: []float64{0.0, 0.25, 0.5},
		Flux:  []float64{1.0, 0.8, 1.0},
	}
}

func TestBuild_Labels(t *testing.T) {
	c := Build(sampleCurve(), Options{Width: 800, Height: 400})

	assert.Equal(t, "Light Curve: c.csv", c.Title)
	assert.Equal(t, "Phase", c.XAxis.Name)
	assert.Equal(t, "Normalized Flux", c.YAxis.Name)
	assert.Equal(t, 800, c.Width)
	assert.Equal(t, 400, c.Height)
	assert.NotZero(t, c.XAxis.GridMajorStyle.StrokeWidth)
	assert.NotZero(t, c.YAxis.GridMajorStyle.StrokeWidth)
}

func TestBuild_TitleKeepsFilenameVerbatim(t *testing.T) {
	for _, name := range []string{"c.csv", "tess/TIC 1234_folded.csv", "ünïcode.ecsv"} {
		lc := sampleCurve()
		lc.Name = name
		assert.Contains(t, Build(lc, Options{}).Title, name)
	}
}

func TestBuild_SeriesKeepsRowOrder(t *testing.T) {
	lc := schema.LightCurve{Name: "x.csv", Phase: []float64{0.9, 0.1, 0.5}, Flux: []float64{0.2, 0.3, 0.1}}
	c := Build(lc, Options{})

	require.Len(t, c.Series, 1)
	series, ok := c.Series[0].(chart.ContinuousSeries)
	require.True(t, ok)
	if diff := cmp.Diff(lc.Phase, series.XValues); diff != "" {
		t.Errorf("x values mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(lc.Flux, series.YValues); diff != "" {
		t.Errorf("y values mismatch (-want +got):\n%s", diff)
	}
	assert.NotZero(t, series.Style.StrokeWidth)
	assert.NotZero(t, series.Style.DotWidth)
}

func TestBuild_YAxisInverted(t *testing.T) {
	c := Build(sampleCurve(), Options{})

	yr, ok := c.YAxis.Range.(*chart.ContinuousRange)
	require.True(t, ok)
	assert.True(t, yr.Descending)

	// Pixel rows grow downward from the bottom edge minus the translated value,
	// so a smaller translation means the point is drawn lower.
	yr.SetDomain(500)
	assert.Less(t, yr.Translate(1.0), yr.Translate(0.8), "largest flux must render nearest the bottom")

	xr, ok := c.XAxis.Range.(*chart.ContinuousRange)
	require.True(t, ok)
	assert.False(t, xr.Descending)
}

func TestPaddedBounds(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		lo, hi float64
	}{
		{"empty", nil, 0, 1},
		{"spread", []float64{0, 1}, -0.05, 1.05},
		{"constant", []float64{1, 1}, 0.95, 1.05},
		{"constant zero", []float64{0}, -0.05, 0.05},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := paddedBounds(tt.values)
			assert.InDelta(t, tt.lo, lo, 1e-9)
			assert.InDelta(t, tt.hi, hi, 1e-9)
			assert.Less(t, lo, hi)
		})
	}
}

func TestRender_PNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(Build(sampleCurve(), Options{Width: 640, Height: 320}), schema.PNGImage, &buf))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 640, img.Bounds().Dx())
	assert.Equal(t, 320, img.Bounds().Dy())
}

func TestRender_SVG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(Build(sampleCurve(), Options{Width: 640, Height: 320}), schema.SVGImage, &buf))

	out := buf.String()
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, "Light Curve: c.csv")
}

func TestRender_SinglePoint(t *testing.T) {
	lc := schema.LightCurve{Name: "one.csv", Phase: []float64{0.3}, Flux: []float64{1.0}}
	var buf bytes.Buffer
	require.NoError(t, Render(Build(lc, Options{Width: 400, Height: 300}), schema.PNGImage, &buf))
	assert.NotZero(t, buf.Len())
}

func TestRender_Deterministic(t *testing.T) {
	var first, second bytes.Buffer
	require.NoError(t, Render(Build(sampleCurve(), Options{Width: 400, Height: 300}), schema.PNGImage, &first))
	require.NoError(t, Render(Build(sampleCurve(), Options{Width: 400, Height: 300}), schema.PNGImage, &second))
	assert.Equal(t, first.Bytes(), second.Bytes())
}

func TestRender_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Render(Build(sampleCurve(), Options{}), schema.ImageFormat("gif"), &buf)
	assert.ErrorContains(t, err, "unsupported image format")
}
