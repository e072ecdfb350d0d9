package mcp_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/lightcurve/internal/contract"
	"github.com/huangsam/lightcurve/internal/history"
	mcp_internal "github.com/huangsam/lightcurve/internal/mcp"
	"github.com/huangsam/lightcurve/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newBaseConfig(dir string) *contract.Config {
	return &contract.Config{
		BaseDir:       dir,
		PhaseColumn:   schema.DefaultPhaseColumn,
		FluxColumn:    schema.DefaultFluxColumn,
		Display:       schema.WindowDisplay,
		Format:        schema.SVGImage,
		Width:         320,
		Height:        240,
		TimeColumn:    schema.DefaultTimeColumn,
		RawFluxColumn: schema.DefaultRawFlux,
		ISOColumn:     schema.ISOTimeColumn,
	}
}

func callTool(t *testing.T, cfg *contract.Config, store contract.HistoryStore, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	s := mcp_internal.NewMCPServer(cfg, store)
	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	req := mcp.CallToolRequest{Params: mcp.CallToolParams{Name: name, Arguments: args}}
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	return res
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestRenderLightCurve(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.csv", "phase,normalized_flux\n0.0,1.0\n0.25,0.8\n0.5,1.0\n")

	res := callTool(t, newBaseConfig(dir), nil, "render_light_curve", map[string]any{"filename": "a.csv"})
	require.False(t, res.IsError)
	require.Len(t, res.Content, 2)

	assert.Equal(t, "Light Curve: a.csv (3 points)", res.Content[0].(mcp.TextContent).Text)
	img := res.Content[1].(mcp.ImageContent)
	assert.Equal(t, "image/png", img.MIMEType)

	raw, err := base64.StdEncoding.DecodeString(img.Data)
	require.NoError(t, err)
	decoded, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, 320, decoded.Bounds().Dx())
}

func TestRenderLightCurve_Errors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "c.csv", "time,flux\n1,2\n")

	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{"missing file", map[string]any{"filename": "b.csv"}, "Error: File 'b.csv' not found."},
		{"missing columns", map[string]any{"filename": "c.csv"}, "Error: The data file must contain 'phase' and 'normalized_flux' columns (missing: phase, normalized_flux)."},
		{"no filename", map[string]any{}, "Error: a filename is required"},
		{"bad base location", map[string]any{"filename": "a.csv", "base_dir": "s3://"}, "invalid base location"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := callTool(t, newBaseConfig(dir), nil, "render_light_curve", tt.args)
			assert.True(t, res.IsError, "The response should indicate an error state")
			assert.Contains(t, res.Content[0].(mcp.TextContent).Text, tt.want)
		})
	}
}

func TestRenderLightCurve_BaseDirOverride(t *testing.T) {
	dir := t.TempDir()
	other := t.TempDir()
	writeFile(t, other, "a.csv", "phase,normalized_flux\n0.0,1.0\n0.5,0.5\n")

	res := callTool(t, newBaseConfig(dir), nil, "render_light_curve", map[string]any{"filename": "a.csv", "base_dir": other})
	assert.False(t, res.IsError)
}

func TestInspectLightCurve(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.csv", "phase,normalized_flux\n0.0,1.0\n0.25,0.8\n0.5,1.0\n")

	store := &history.MockStore{}
	store.On("Record", mock.Anything, mock.Anything).Return(errors.New("history offline"))

	res := callTool(t, newBaseConfig(dir), store, "inspect_light_curve", map[string]any{"filename": "a.csv"})
	require.False(t, res.IsError)

	var summary schema.Summary
	require.NoError(t, json.Unmarshal([]byte(res.Content[0].(mcp.TextContent).Text), &summary))
	assert.Equal(t, 3, summary.Points)
	assert.Equal(t, 0.8, summary.FluxMin)
	assert.Equal(t, 1, summary.Faintest.Index)
	store.AssertNumberOfCalls(t, "Record", 1)
}

func TestFoldLightCurve(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "raw.csv", "jd,flux\n2459000.0,1.0\n2459000.25,0.5\n2459000.5,0.2\n")
	output := filepath.Join(dir, "out.ecsv")

	res := callTool(t, newBaseConfig(dir), nil, "fold_light_curve", map[string]any{
		"filename":    "raw.csv",
		"period":      1.0,
		"epoch":       2459000.0,
		"output_file": "out.ecsv",
	})
	require.False(t, res.IsError, res.Content[0].(mcp.TextContent).Text)

	var result schema.FoldResult
	require.NoError(t, json.Unmarshal([]byte(res.Content[0].(mcp.TextContent).Text), &result))
	assert.Equal(t, 3, result.Points)
	assert.Equal(t, "provided", result.EpochSource)
	assert.Equal(t, output, result.OutputFile)
	_, err := os.Stat(output)
	assert.NoError(t, err)
}

func TestFoldLightCurve_DefaultOutputUnderBaseDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "raw.csv", "jd,flux\n2459000.0,1.0\n2459000.5,0.2\n")

	res := callTool(t, newBaseConfig(dir), nil, "fold_light_curve", map[string]any{"filename": "raw.csv", "period": 1.0})
	require.False(t, res.IsError, res.Content[0].(mcp.TextContent).Text)

	_, err := os.Stat(filepath.Join(dir, "raw_folded.csv"))
	assert.NoError(t, err)
}

func TestFoldLightCurve_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing period", func(t *testing.T) {
		res := callTool(t, newBaseConfig(dir), nil, "fold_light_curve", map[string]any{"filename": "raw.csv"})
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, `required argument "period" not found`)
	})

	for name, output := range map[string]string{
		"parent directory": "../escaped.csv",
		"absolute path":    filepath.Join(t.TempDir(), "escaped.csv"),
	} {
		t.Run(name, func(t *testing.T) {
			writeFile(t, dir, "raw.csv", "jd,flux\n2459000.0,1.0\n2459000.5,0.2\n")
			res := callTool(t, newBaseConfig(dir), nil, "fold_light_curve", map[string]any{
				"filename":    "raw.csv",
				"period":      1.0,
				"output_file": output,
			})
			assert.True(t, res.IsError)
			assert.Equal(t, "Error: output_file must be a relative path inside the base directory.", res.Content[0].(mcp.TextContent).Text)
			if !filepath.IsAbs(output) {
				output = filepath.Join(dir, output)
			}
			_, err := os.Stat(output)
			assert.True(t, os.IsNotExist(err))
		})
	}

	t.Run("non-positive period", func(t *testing.T) {
		res := callTool(t, newBaseConfig(dir), nil, "fold_light_curve", map[string]any{"filename": "raw.csv", "period": -2.0})
		assert.True(t, res.IsError)
		assert.Equal(t, "Error: a positive period in days is required to fold a light curve.", res.Content[0].(mcp.TextContent).Text)
	})
}
