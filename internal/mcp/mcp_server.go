// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/lightcurve/internal/contract"
	"github.com/huangsam/lightcurve/internal/display"
	"github.com/huangsam/lightcurve/internal/source"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the light curve MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, history contract.HistoryStore) *server.MCPServer {
	s := server.NewMCPServer(
		"Light Curve Server",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg:   baseCfg,
		history:   history,
		display:   display.None{},
		newSource: source.New,
	}

	// --- 1. Tool: render_light_curve ---
	s.AddTool(mcp.NewTool("render_light_curve",
		mcp.WithDescription("Render a phase-folded light curve (phase vs normalized flux, inverted y-axis) as a PNG image."),
		mcp.WithString("filename", mcp.Description("CSV or ECSV file under the base location."), mcp.Required()),
		mcp.WithString("base_dir", mcp.Description("Directory or s3://bucket/prefix the filename is resolved against. Defaults to the server's base location.")),
	), h.handleRenderLightCurve)

	// --- 2. Tool: inspect_light_curve ---
	s.AddTool(mcp.NewTool("inspect_light_curve",
		mcp.WithDescription("Summarize a phase-folded light curve: point count, phase and flux ranges, brightest and faintest points."),
		mcp.WithString("filename", mcp.Description("CSV or ECSV file under the base location."), mcp.Required()),
		mcp.WithString("base_dir", mcp.Description("Directory or s3://bucket/prefix the filename is resolved against.")),
	), h.handleInspectLightCurve)

	// --- 3. Tool: fold_light_curve ---
	s.AddTool(mcp.NewTool("fold_light_curve",
		mcp.WithDescription("Phase-fold a raw time series (jd, flux) with a period in days and write a phase/normalized_flux table."),
		mcp.WithString("filename", mcp.Description("CSV or ECSV file with time and flux columns."), mcp.Required()),
		mcp.WithNumber("period", mcp.Description("Period in days."), mcp.Required()),
		mcp.WithNumber("epoch", mcp.Description("Reference Julian Date. Defaults to the time of minimum flux.")),
		mcp.WithString("output_file", mcp.Description("Output path (.csv or .ecsv) relative to a local base_dir. Defaults to <stem>_folded.csv.")),
		mcp.WithString("base_dir", mcp.Description("Directory or s3://bucket/prefix the filename is resolved against.")),
	), h.handleFoldLightCurve)

	return s
}

// StartMCPServer starts the light curve MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, history contract.HistoryStore) error {
	s := NewMCPServer(baseCfg, history)
	return server.ServeStdio(s)
}
