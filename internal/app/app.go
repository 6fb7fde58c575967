// Package app runs one qrgen invocation: resolve parameters, then generate.
package app

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/kpauljoseph/qrgen/internal/config"
	"github.com/kpauljoseph/qrgen/internal/qr"
	"github.com/kpauljoseph/qrgen/internal/resolver"
	"github.com/kpauljoseph/qrgen/pkg/logger"
	"github.com/kpauljoseph/qrgen/pkg/models"
	"github.com/kpauljoseph/qrgen/pkg/version"
)

const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2

	NoContentMessage = "Error: No content to encode. Provide --url or set DEFAULT_URL."
)

// Execute parses args (without the program name), writes the QR image and
// returns the process exit code. env supplies DEFAULT_URL and OUTPUT_DIR.
func Execute(args []string, env *config.Env, stdout, stderr io.Writer) int {
	flags, err := config.ParseFlags(version.Name, args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitOK
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitUsage
	}

	if flags.Version {
		fmt.Fprint(stdout, version.GetDetailedVersionInfo())
		return ExitOK
	}

	log := logger.New(
		logger.WithOutput(stderr),
		logger.WithPrefix("[qrgen] "),
		logger.WithLevel(logger.LevelFor(flags.Verbose, flags.Debug)),
	)

	plan, gen, err := prepare(flags, env, log)
	if err != nil {
		if errors.Is(err, resolver.ErrNoContent) {
			fmt.Fprintln(stderr, NoContentMessage)
		} else {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return ExitError
	}

	if err := generate(gen, plan, log); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitError
	}

	fmt.Fprintf(stdout, "QR code saved to %s\n", plan.OutputPath)
	return ExitOK
}

func prepare(flags *config.Flags, env *config.Env, log *logger.Logger) (models.Plan, qr.ImageGenerator, error) {
	if env == nil {
		env = config.NewEnv(nil)
	}
	if err := env.LoadDotenv(flags.EnvFile); err != nil {
		return models.Plan{}, nil, err
	}

	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		return models.Plan{}, nil, err
	}
	flags.Apply(cfg)
	if err := cfg.Validate(); err != nil {
		return models.Plan{}, nil, err
	}
	log.Trace("Effective config: %+v", *cfg)

	plan, err := resolver.New(cfg, env, log).Resolve(flags)
	if err != nil {
		return models.Plan{}, nil, err
	}

	gen, err := qr.NewGenerator(cfg.Level, cfg.Size, log)
	if err != nil {
		return models.Plan{}, nil, err
	}

	return plan, gen, nil
}

func generate(gen qr.ImageGenerator, plan models.Plan, log *logger.Logger) error {
	log.Debug("Encoding %d characters into %s", len(plan.InputText), plan.OutputPath)
	return gen.Generate(plan.InputText, plan.OutputPath)
}
