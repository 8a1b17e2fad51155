package imageproc

import (
	"image"

	"github.com/UnendingLoop/FaviconNormalizer/internal/model"
	"github.com/disintegration/imaging"
)

// GrowAndCenterCrop crops to the opaque content, enlarges it past size and cuts the central
// size x size window back out. Corners of the content may be clipped.
func GrowAndCenterCrop(img image.Image, size int) *image.NRGBA {
	box, ok := BoundingBox(img)
	if !ok {
		return Fill(img, size)
	}

	side := max(size, scaledSide(size, model.GrowFactor))
	grown := imaging.Resize(imaging.Crop(img, box), side, side, imaging.Lanczos)

	return imaging.CropCenter(grown, size, size)
}
