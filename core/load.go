package core

import (
	"context"
	"errors"
	"io/fs"
	"strings"

	"github.com/huangsam/lightcurve/internal/contract"
	"github.com/huangsam/lightcurve/internal/table"
	"github.com/huangsam/lightcurve/schema"
	"github.com/rs/zerolog/log"
)

// openTable resolves name against the source and reads it as a table.
// The resolved location is returned even when the read fails.
func openTable(ctx context.Context, src contract.Source, name string) (*table.Table, string, error) {
	if strings.TrimSpace(name) == "" {
		return nil, "", &ValidationError{Reason: "a filename is required"}
	}
	location := src.Location(name)
	log.Debug().Str("file", name).Str("location", location).Msg("opening table")

	rc, err := src.Open(ctx, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, location, &NotFoundError{Name: name, Location: location, Err: err}
		}
		return nil, location, unclassified(err)
	}
	defer func() { _ = rc.Close() }()

	format := schema.AutoTable
	if schema.DetectTableFormat(name) == schema.ECSVTable {
		format = schema.ECSVTable
	}
	t, err := table.Read(rc, format)
	if err != nil {
		return nil, location, unclassified(err)
	}
	return t, location, nil
}

// requireColumns reports a ValidationError naming every required column when any is absent.
func requireColumns(t *table.Table, name string, required ...string) error {
	if missing := t.Missing(required...); len(missing) > 0 {
		return &ValidationError{Name: name, Required: required, Missing: missing}
	}
	return nil
}

// LoadLightCurve reads a light curve and validates its phase and flux columns.
func LoadLightCurve(ctx context.Context, cfg *contract.Config, src contract.Source, name string) (schema.LightCurve, string, error) {
	t, location, err := openTable(ctx, src, name)
	if err != nil {
		return schema.LightCurve{}, location, err
	}
	if err := requireColumns(t, name, cfg.PhaseColumn, cfg.FluxColumn); err != nil {
		return schema.LightCurve{}, location, err
	}
	if t.Len() == 0 {
		return schema.LightCurve{}, location, &UnclassifiedError{Err: errNoRows}
	}

	phase, err := t.Floats(cfg.PhaseColumn)
	if err != nil {
		return schema.LightCurve{}, location, unclassified(err)
	}
	flux, err := t.Floats(cfg.FluxColumn)
	if err != nil {
		return schema.LightCurve{}, location, unclassified(err)
	}

	log.Debug().Str("file", name).Int("points", len(phase)).Msg("loaded light curve")
	return schema.LightCurve{Name: name, Phase: phase, Flux: flux}, location, nil
}
