package config

import (
	"flag"
	"fmt"
	"io"
)

// Flags mirrors the command line. Empty strings mean "not given".
type Flags struct {
	URL        string
	Out        string
	OutputDir  string
	ConfigPath string
	EnvFile    string
	Size       int
	Level      string
	Verbose    bool
	Debug      bool
	Version    bool
}

// ParseFlags parses args (without the program name). Usage and parse errors
// are written to output.
func ParseFlags(name string, args []string, output io.Writer) (*Flags, error) {
	f := &Flags{}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&f.URL, "url", "",
		fmt.Sprintf("URL/text to encode (falls back to env %s, then a default)", EnvURL))
	fs.StringVar(&f.Out, "out", "",
		"Output filename (with or without extension)")
	fs.StringVar(&f.OutputDir, "output-dir", "",
		fmt.Sprintf("Directory for output (falls back to env %s, then ./%s)", EnvOutputDir, DefaultOutputDir))
	fs.StringVar(&f.ConfigPath, "config", "",
		"Path to an optional YAML config file")
	fs.StringVar(&f.EnvFile, "env-file", ".env",
		"Dotenv file consulted after the process environment")
	fs.IntVar(&f.Size, "size", 0,
		fmt.Sprintf("Pixels per QR module (default %d)", DefaultSize))
	fs.StringVar(&f.Level, "level", "",
		fmt.Sprintf("Recovery level L, M, Q or H (default %s)", DefaultLevel))
	fs.BoolVar(&f.Verbose, "verbose", false,
		"Enable verbose logging")
	fs.BoolVar(&f.Debug, "debug", false,
		"Enable debug mode with trace logging")
	fs.BoolVar(&f.Version, "version", false,
		"Print version information and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	return f, nil
}

// Apply overlays the rendering flags onto cfg.
func (f *Flags) Apply(cfg *Config) {
	if f.Size != 0 {
		cfg.Size = f.Size
	}
	if f.Level != "" {
		cfg.Level = f.Level
	}
}
