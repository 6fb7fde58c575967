package qr

import (
	"image"
)

// ImageGenerator encodes text into a QR raster and persists it.
type ImageGenerator interface {
	Encode(text string) (image.Image, error)
	Save(img image.Image, path string) error
	Generate(text, path string) error
}
