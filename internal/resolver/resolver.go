// Package resolver decides what to encode and where to write it.
//
// Each value is taken from the first non-empty source in the order
// flag, environment variable, config default.
package resolver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kpauljoseph/qrgen/internal/config"
	"github.com/kpauljoseph/qrgen/internal/naming"
	"github.com/kpauljoseph/qrgen/pkg/logger"
	"github.com/kpauljoseph/qrgen/pkg/models"
)

// ErrNoContent is returned when the resolved input text is blank.
var ErrNoContent = errors.New("no content to encode")

// Getter is satisfied by config.Env.
type Getter interface {
	Get(key string) string
}

type Resolver struct {
	cfg    *config.Config
	env    Getter
	logger *logger.Logger
}

func New(cfg *config.Config, env Getter, log *logger.Logger) *Resolver {
	if log == nil {
		log = logger.Discard()
	}
	return &Resolver{
		cfg:    cfg,
		env:    env,
		logger: log,
	}
}

// Resolve runs all three steps. The output directory is created as a side
// effect; nothing is touched on disk when the text is blank.
func (r *Resolver) Resolve(flags *config.Flags) (models.Plan, error) {
	text, err := r.InputText(flags.URL)
	if err != nil {
		return models.Plan{}, err
	}

	dir, err := r.OutputDirectory(flags.OutputDir)
	if err != nil {
		return models.Plan{}, err
	}

	return models.Plan{
		InputText:       text,
		OutputDirectory: dir,
		OutputPath:      r.OutputPath(flags.Out, dir, text),
	}, nil
}

// InputText returns the trimmed text to encode.
func (r *Resolver) InputText(flagValue string) (string, error) {
	text, source := r.pick(flagValue, config.EnvURL, r.cfg.URL)
	r.logger.Trace("Input text candidate from %s: %q", source, text)

	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrNoContent
	}

	r.logger.Debug("Using input text from %s", source)
	return text, nil
}

// OutputDirectory returns the absolute output directory, creating it and
// any parents when missing.
func (r *Resolver) OutputDirectory(flagValue string) (string, error) {
	dir, source := r.pick(flagValue, config.EnvOutputDir, r.cfg.OutputDir)
	r.logger.Trace("Output directory candidate from %s: %q", source, dir)

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve output directory %q: %w", dir, err)
	}

	if err := os.MkdirAll(abs, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	r.logger.Debug("Using output directory %s (from %s)", abs, source)
	return abs, nil
}

// OutputPath places a bare out name (including "." and "..") inside dir
// and normalizes its extension. A name with a directory component is used
// as given. Without out, the name is derived from the host in text.
func (r *Resolver) OutputPath(out, dir, text string) string {
	if out == "" {
		result := naming.DefaultName(text)
		switch {
		case result.Parsed:
			r.logger.Debug("Derived %s from host %s", result.Name, result.Host)
		case result.Err != nil:
			r.logger.Debug("Could not parse %q as a URL, using %s: %v", text, result.Name, result.Err)
		default:
			r.logger.Debug("No host in input text, using %s", result.Name)
		}
		return filepath.Join(dir, result.Name)
	}

	path := out
	if !filepath.IsAbs(path) && filepath.Dir(path) == "." {
		switch filepath.Base(path) {
		case ".", "..":
			// Join would clean these away and land outside dir.
			path = dir + string(filepath.Separator) + path
		default:
			path = filepath.Join(dir, path)
		}
	}

	normalized := naming.EnsureExt(path)
	if normalized != path {
		r.logger.Info("Output name %q has no image extension, writing %s", out, normalized)
	}
	return normalized
}

func (r *Resolver) pick(flagValue, envKey, fallback string) (string, string) {
	if flagValue != "" {
		return flagValue, "flag"
	}
	if r.env != nil {
		if v := r.env.Get(envKey); v != "" {
			return v, "env " + envKey
		}
	}
	return fallback, "config"
}
