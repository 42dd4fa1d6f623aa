package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg" // register JPEG for image.Decode
	_ "image/png"  // register PNG for image.Decode
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
)

// MaxSize is the largest texture edge uploaded to the GPU. Larger images are downscaled.
const MaxSize = 4096

// Decode decodes texture bytes, picking the decoder from name's extension
// and falling back to content sniffing for PNG and JPEG.
func Decode(data []byte, name string) (image.Image, error) {
	var (
		img image.Image
		err error
	)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".tga":
		img, err = DecodeTGA(data)
	case ".bmp":
		img, err = bmp.Decode(bytes.NewReader(data))
	default:
		img, _, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("decoding texture %s: %w", name, err)
	}
	return img, nil
}

// ImageToRGBA converts any image.Image to a zero-origin *image.RGBA no
// larger than MaxSize on either edge.
func ImageToRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	if w > MaxSize || h > MaxSize {
		scale := float64(MaxSize) / float64(max(w, h))
		dw := max(1, int(float64(w)*scale))
		dh := max(1, int(float64(h)*scale))
		dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
		return dst
	}

	if rgba, ok := img.(*image.RGBA); ok && b.Min == (image.Point{}) {
		return rgba
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
