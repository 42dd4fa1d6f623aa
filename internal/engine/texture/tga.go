// Package texture decodes model textures into RGBA images ready for GPU upload.
package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image type constants.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

// ErrTGAFormat is returned for TGA variants the decoder does not handle.
var ErrTGAFormat = errors.New("unsupported TGA format")

type tgaHeader struct {
	idLength    int
	imageType   byte
	width       int
	height      int
	bytesPerPix int
	topToBottom bool
}

func parseTGAHeader(data []byte) (tgaHeader, error) {
	if len(data) < 18 {
		return tgaHeader{}, fmt.Errorf("TGA data too short (%d bytes)", len(data))
	}
	h := tgaHeader{
		idLength:    int(data[0]),
		imageType:   data[2],
		width:       int(data[12]) | int(data[13])<<8,
		height:      int(data[14]) | int(data[15])<<8,
		bytesPerPix: int(data[16]) / 8,
		// Bit 5 of the descriptor selects top-to-bottom row order
		topToBottom: data[17]&0x20 != 0,
	}
	if data[1] != 0 {
		return h, fmt.Errorf("%w: color-mapped", ErrTGAFormat)
	}
	if h.imageType != TGATypeUncompressed && h.imageType != TGATypeRLE {
		return h, fmt.Errorf("%w: image type %d", ErrTGAFormat, h.imageType)
	}
	if h.bytesPerPix != 3 && h.bytesPerPix != 4 {
		return h, fmt.Errorf("%w: %d bits per pixel", ErrTGAFormat, data[16])
	}
	if h.width == 0 || h.height == 0 {
		return h, fmt.Errorf("TGA has zero size %dx%d", h.width, h.height)
	}
	return h, nil
}

// DecodeTGA decodes an uncompressed (type 2) or RLE (type 10) true-color TGA.
func DecodeTGA(data []byte) (image.Image, error) {
	h, err := parseTGAHeader(data)
	if err != nil {
		return nil, err
	}

	offset := 18 + h.idLength
	if offset > len(data) {
		return nil, fmt.Errorf("TGA data truncated")
	}
	pixelData := data[offset:]

	img := image.NewRGBA(image.Rect(0, 0, h.width, h.height))
	put := func(pixelIdx int, c color.RGBA) {
		x := pixelIdx % h.width
		y := pixelIdx / h.width
		if !h.topToBottom {
			y = h.height - 1 - y
		}
		img.SetRGBA(x, y, c)
	}

	if h.imageType == TGATypeUncompressed {
		pixelCount := h.width * h.height
		if len(pixelData) < pixelCount*h.bytesPerPix {
			return nil, fmt.Errorf("TGA pixel data truncated")
		}
		for i := 0; i < pixelCount; i++ {
			put(i, readBGRA(pixelData[i*h.bytesPerPix:], h.bytesPerPix))
		}
		return img, nil
	}

	if err := decodeTGARLE(pixelData, h, put); err != nil {
		return nil, err
	}
	return img, nil
}

// decodeTGARLE expands RLE packets. Truncated data leaves the remaining pixels transparent.
func decodeTGARLE(pixelData []byte, h tgaHeader, put func(int, color.RGBA)) error {
	pixelCount := h.width * h.height
	pixelIdx := 0
	dataIdx := 0

	for pixelIdx < pixelCount && dataIdx < len(pixelData) {
		packet := pixelData[dataIdx]
		dataIdx++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			// Run packet: one pixel repeated
			if dataIdx+h.bytesPerPix > len(pixelData) {
				break
			}
			c := readBGRA(pixelData[dataIdx:], h.bytesPerPix)
			dataIdx += h.bytesPerPix
			for i := 0; i < count && pixelIdx < pixelCount; i++ {
				put(pixelIdx, c)
				pixelIdx++
			}
			continue
		}

		// Raw packet: count literal pixels
		for i := 0; i < count && pixelIdx < pixelCount; i++ {
			if dataIdx+h.bytesPerPix > len(pixelData) {
				return nil
			}
			put(pixelIdx, readBGRA(pixelData[dataIdx:], h.bytesPerPix))
			dataIdx += h.bytesPerPix
			pixelIdx++
		}
	}

	return nil
}

func readBGRA(p []byte, bytesPerPix int) color.RGBA {
	a := uint8(255)
	if bytesPerPix == 4 {
		a = p[3]
	}
	return color.RGBA{R: p[2], G: p[1], B: p[0], A: a}
}
