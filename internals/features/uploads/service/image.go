// file: internals/features/uploads/service/image.go
package service

import (
	"bytes"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

const (
	slipMaxWidth = 1280
	webpQuality  = 80
)

// RecompressImage re-encodes jpg/png slips to webp, downscaling wide photos.
// Non-image files (pdf, csv, xlsx) pass through untouched.
func RecompressImage(data []byte, ext string) ([]byte, string, error) {
	switch strings.ToLower(ext) {
	case "jpg", "jpeg", "png":
	default:
		return data, ext, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		// keep the original bytes when decoding fails; the file was accepted
		// by extension only
		return data, ext, nil
	}

	if img.Bounds().Dx() > slipMaxWidth {
		img = imaging.Resize(img, slipMaxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: webpQuality}); err != nil {
		return data, ext, nil
	}
	return buf.Bytes(), "webp", nil
}
