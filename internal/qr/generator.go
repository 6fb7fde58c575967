package qr

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/skip2/go-qrcode"

	"github.com/kpauljoseph/qrgen/pkg/logger"
)

const (
	// QuietZone is the blank border, in modules, that go-qrcode draws.
	QuietZone = 4

	JPEGQuality = 75
)

type encodeFunc func(w io.Writer, img image.Image) error

func encodeJPEG(w io.Writer, img image.Image) error {
	return jpeg.Encode(w, img, &jpeg.Options{Quality: JPEGQuality})
}

var encoders = map[string]encodeFunc{
	".png":  png.Encode,
	".jpg":  encodeJPEG,
	".jpeg": encodeJPEG,
}

var levels = map[string]qrcode.RecoveryLevel{
	"L": qrcode.Low,
	"M": qrcode.Medium,
	"Q": qrcode.High,
	"H": qrcode.Highest,
}

// ParseLevel maps a recovery level name (L, M, Q or H, any case) onto the
// go-qrcode level.
func ParseLevel(name string) (qrcode.RecoveryLevel, error) {
	rl, ok := levels[strings.ToUpper(name)]
	if !ok {
		return 0, fmt.Errorf("recovery level must be one of L, M, Q, H, got %q", name)
	}
	return rl, nil
}

type Generator struct {
	level           qrcode.RecoveryLevel
	pixelsPerModule int
	logger          *logger.Logger
}

// NewGenerator takes a recovery level name (L, M, Q or H) and the module
// size in pixels.
func NewGenerator(level string, pixelsPerModule int, log *logger.Logger) (*Generator, error) {
	rl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if pixelsPerModule < 1 {
		return nil, fmt.Errorf("pixels per module must be at least 1, got %d", pixelsPerModule)
	}
	if log == nil {
		log = logger.Discard()
	}

	return &Generator{
		level:           rl,
		pixelsPerModule: pixelsPerModule,
		logger:          log,
	}, nil
}

func (g *Generator) Encode(text string) (image.Image, error) {
	code, err := qrcode.New(text, g.level)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}

	// A negative size asks go-qrcode for a fixed number of pixels per module.
	img := code.Image(-g.pixelsPerModule)
	g.logger.Trace("Encoded %d bytes as QR version %d, %dx%d px",
		len(text), code.VersionNumber, img.Bounds().Dx(), img.Bounds().Dy())

	return img, nil
}

// Save writes img to path in the format implied by its extension. The file
// is replaced if it exists.
func (g *Generator) Save(img image.Image, path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	enc, ok := encoders[ext]
	if !ok {
		return fmt.Errorf("unsupported image extension %q", filepath.Ext(path))
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}

	if err := enc(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to write image %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close image %s: %w", path, err)
	}

	g.logger.Debug("Wrote %s", path)
	return nil
}

// Generate is Encode followed by Save.
func (g *Generator) Generate(text, path string) error {
	img, err := g.Encode(text)
	if err != nil {
		return err
	}
	return g.Save(img, path)
}
