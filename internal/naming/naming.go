// Package naming turns user input into safe image file names.
package naming

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/kpauljoseph/qrgen/pkg/models"
)

const (
	DefaultExt   = ".png"
	FallbackBase = "qr"
)

var validExts = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
}

// IsValidExt reports whether ext (with leading dot) is an allowed image
// extension. The match is case-insensitive.
func IsValidExt(ext string) bool {
	_, ok := validExts[strings.ToLower(ext)]
	return ok
}

// EnsureExt returns path unchanged when it already ends in an allowed
// extension. Otherwise .png is appended, so "file.txt" becomes
// "file.txt.png" and "file." becomes "file..png".
func EnsureExt(path string) string {
	if IsValidExt(filepath.Ext(path)) {
		return path
	}
	return path + DefaultExt
}

// DefaultName derives a file name from the network location of text.
// It never fails: anything without a host falls back to "qr.png" and the
// result records which branch was taken.
func DefaultName(text string) models.NameResult {
	u, err := url.Parse(text)
	if err != nil {
		return fallback(err)
	}

	host := netloc(u)
	if host == "" {
		return fallback(nil)
	}

	base := sanitize(host)
	if base == "" {
		return fallback(nil)
	}

	return models.NameResult{
		Name:   base + DefaultExt,
		Host:   host,
		Parsed: true,
	}
}

// netloc rebuilds the userinfo@host[:port] part of u.
func netloc(u *url.URL) string {
	if u.User == nil {
		return u.Host
	}
	return u.User.String() + "@" + u.Host
}

func sanitize(base string) string {
	return strings.NewReplacer(":", "-", "/", "-").Replace(base)
}

func fallback(err error) models.NameResult {
	return models.NameResult{
		Name: FallbackBase + DefaultExt,
		Err:  err,
	}
}
