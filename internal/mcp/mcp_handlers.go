package mcp

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/huangsam/lightcurve/core"
	"github.com/huangsam/lightcurve/internal/contract"
	"github.com/huangsam/lightcurve/internal/source"
	"github.com/huangsam/lightcurve/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg   *contract.Config
	history   contract.HistoryStore
	display   contract.Display
	newSource func(context.Context, *contract.Config) (contract.Source, error)
}

// prepare clones the base config, applies base_dir and builds the services for one call.
func (h *toolHandler) prepare(ctx context.Context, request mcp.CallToolRequest) (*contract.Config, contract.Services, error) {
	cfg := h.baseCfg.Clone()
	cfg.Display = schema.NoDisplay
	cfg.Format = schema.PNGImage
	cfg.OutputFile = ""
	if p := request.GetString("base_dir", ""); p != "" {
		cfg.BaseDir = p
	}

	src, err := h.newSource(ctx, cfg)
	if err != nil {
		return nil, contract.Services{}, fmt.Errorf("invalid base location: %w", err)
	}
	return cfg, contract.Services{Source: src, Display: h.display, History: h.history}, nil
}

func (h *toolHandler) handleRenderLightCurve(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, svc, err := h.prepare(ctx, request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := core.Render(ctx, cfg, svc, request.GetString("filename", ""))
	if err != nil {
		return mcp.NewToolResultError(core.UserMessage(err)), nil
	}

	caption := fmt.Sprintf("%s%s (%d points)", schema.TitlePrefix, result.Name, result.Points)
	return mcp.NewToolResultImage(caption, base64.StdEncoding.EncodeToString(result.Image), result.Format.MimeType()), nil
}

func (h *toolHandler) handleInspectLightCurve(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, svc, err := h.prepare(ctx, request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := core.Inspect(ctx, cfg, svc, request.GetString("filename", ""))
	if err != nil {
		return mcp.NewToolResultError(core.UserMessage(err)), nil
	}

	jsonData, _ := json.MarshalIndent(result.Summary, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleFoldLightCurve(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, svc, err := h.prepare(ctx, request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	period, err := request.RequireFloat("period")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid fold parameters: %v", err)), nil
	}
	cfg.Period = period
	cfg.Epoch = nil
	if _, ok := request.GetArguments()["epoch"]; ok {
		epoch := request.GetFloat("epoch", 0)
		cfg.Epoch = &epoch
	}
	filename := request.GetString("filename", "")
	out, err := foldOutputPath(cfg.BaseDir, filename, request.GetString("output_file", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error: %v.", err)), nil
	}
	cfg.OutputFile = out

	result, err := core.Fold(ctx, cfg, svc, filename)
	if err != nil {
		return mcp.NewToolResultError(core.UserMessage(err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

var errOutsideBase = errors.New("output_file must be a relative path inside the base directory")

// foldOutputPath places the folded table under a local base directory.
// Absolute paths and paths that climb out with ".." are rejected.
func foldOutputPath(baseDir, filename, requested string) (string, error) {
	out := requested
	if out == "" {
		out = schema.FoldedName(filename)
	}
	if !filepath.IsLocal(out) {
		return "", errOutsideBase
	}
	if baseDir == "" || strings.HasPrefix(baseDir, source.S3Scheme) {
		return out, nil
	}
	return filepath.Join(baseDir, out), nil
}
