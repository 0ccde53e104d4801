package formats

import (
	"bytes"
	"image"
	"image/png"
	"io"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"

	"github.com/spaghettifunk/anima-assets/engine/core"
)

/**
 * @brief A structure to hold decoded image data. Pixels are always
 * 8-bit, non-premultiplied RGBA, row by row from the top-left corner.
 */
type ImageData struct {
	/** @brief The number of channels. */
	ChannelCount uint8
	/** @brief The width of the image. */
	Width uint32
	/** @brief The height of the image. */
	Height uint32
	/** @brief The pixel data of the image. */
	Pixels []uint8
	/** @brief True if any pixel has an alpha below 255. */
	HasTransparency bool
}

type PNG struct{}

func (PNG) Extension() string { return "png" }

func (PNG) Parse(b []byte) (ImageData, error) {
	return decodeImage("png", b, png.Decode)
}

type BMP struct{}

func (BMP) Extension() string { return "bmp" }

func (BMP) Parse(b []byte) (ImageData, error) {
	return decodeImage("bmp", b, bmp.Decode)
}

type TIFF struct{}

func (TIFF) Extension() string { return "tiff" }

func (TIFF) Parse(b []byte) (ImageData, error) {
	return decodeImage("tiff", b, tiff.Decode)
}

type WebP struct{}

func (WebP) Extension() string { return "webp" }

func (WebP) Parse(b []byte) (ImageData, error) {
	return decodeImage("webp", b, webp.Decode)
}

func decodeImage(ext string, b []byte, decode func(io.Reader) (image.Image, error)) (data ImageData, err error) {
	defer recoverParse(ext, &err)

	if len(b) == 0 {
		return ImageData{}, core.NewFormatError(ext, "empty input", nil)
	}

	img, err := decode(bytes.NewReader(b))
	if err != nil {
		return ImageData{}, core.NewFormatError(ext, "failed to decode image", err)
	}

	bounds := img.Bounds()
	if bounds.Empty() {
		return ImageData{}, core.NewFormatError(ext, "image has no pixels", nil)
	}

	nrgba, ok := img.(*image.NRGBA)
	if !ok || nrgba.Rect.Min != (image.Point{}) || nrgba.Stride != 4*bounds.Dx() {
		nrgba = image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)
	}

	pixels := make([]uint8, len(nrgba.Pix))
	copy(pixels, nrgba.Pix)

	hasTransparency := false
	for i := 3; i < len(pixels); i += 4 {
		if pixels[i] < 255 {
			hasTransparency = true
			break
		}
	}

	return ImageData{
		ChannelCount:    4,
		Width:           uint32(bounds.Dx()),
		Height:          uint32(bounds.Dy()),
		Pixels:          pixels,
		HasTransparency: hasTransparency,
	}, nil
}
