// Package testutil holds helpers shared by the test suites.
package testutil

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/makiuchi-d/gozxing"
	zxingqr "github.com/makiuchi-d/gozxing/qrcode"
)

// ReadImage decodes the image at path and reports its format name.
func ReadImage(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	return image.Decode(f)
}

// DecodeQR scans img and returns the text it carries.
func DecodeQR(img image.Image) (string, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", fmt.Errorf("creating bitmap: %w", err)
	}

	result, err := zxingqr.NewQRCodeReader().Decode(bmp, nil)
	if err != nil {
		return "", fmt.Errorf("no QR code found in image: %w", err)
	}

	return result.GetText(), nil
}

// ImageHash hashes the pixels of img as 16-bit RGBA, ignoring the
// container format, so a PNG and its re-encoding hash the same.
func ImageHash(img image.Image) string {
	hasher := sha256.New()
	bounds := img.Bounds()

	buf := make([]byte, 8)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.RGBA64Model.Convert(img.At(x, y)).(color.RGBA64)
			binary.BigEndian.PutUint16(buf[0:], c.R)
			binary.BigEndian.PutUint16(buf[2:], c.G)
			binary.BigEndian.PutUint16(buf[4:], c.B)
			binary.BigEndian.PutUint16(buf[6:], c.A)
			hasher.Write(buf)
		}
	}

	return hex.EncodeToString(hasher.Sum(nil))
}

// FileImageHash reads the image at path and returns its pixel hash.
func FileImageHash(path string) (string, error) {
	img, _, err := ReadImage(path)
	if err != nil {
		return "", err
	}
	return ImageHash(img), nil
}
