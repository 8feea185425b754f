// Package imaging validates and compresses uploaded item photos before they
// reach object storage.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"net/http"

	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
)

// MaxWidth is the widest stored image; taller-than-wide images keep their
// aspect ratio.
const MaxWidth = 1400

// JPEGQuality is the re-encode quality for stored images.
const JPEGQuality = 80

var allowedMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// Result is the processed image ready for upload.
type Result struct {
	Data []byte
	Ext  string
	MIME string
}

// Process sniffs the real MIME type from the bytes, decodes, downscales to
// MaxWidth if wider, and re-encodes as JPEG.
func Process(data []byte) (*Result, error) {
	detected := http.DetectContentType(data)
	if !allowedMIME[detected] {
		return nil, fmt.Errorf("unsupported image format: %s", detected)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	img = downscale(img, MaxWidth)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("encoding JPEG: %w", err)
	}

	return &Result{
		Data: buf.Bytes(),
		Ext:  "jpg",
		MIME: "image/jpeg",
	}, nil
}

// downscale resizes the image so its width does not exceed maxWidth, using
// Catmull-Rom interpolation. Returns the original if already narrow enough.
func downscale(img image.Image, maxWidth int) image.Image {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()

	if w <= maxWidth {
		return img
	}

	newH := h * maxWidth / w
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
