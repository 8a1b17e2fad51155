// Package imageproc provides favicon transforms: plain fill resize, shrink-and-center and grow-and-center-crop,
// plus decoding/encoding helpers around them.
package imageproc

import (
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/UnendingLoop/FaviconNormalizer/internal/model"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// Decode reads an image and converts it to a 4-channel NRGBA raster anchored at (0,0).
func Decode(r io.Reader) (*image.NRGBA, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: nil-reader provided to Decode", model.ErrDecode)
	}
	img, err := imaging.Decode(r)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("%w: %w", model.ErrUnsupportedFormat, err)
		}
		return nil, fmt.Errorf("%w: %w", model.ErrDecode, err)
	}

	return imaging.Clone(img), nil
}
