package imageproc

import (
	"image"
	"image/color"

	"github.com/UnendingLoop/FaviconNormalizer/internal/model"
	"github.com/disintegration/imaging"
)

// ShrinkAndCenter crops to the opaque content, scales it to half of size and pastes it
// in the middle of a transparent size x size canvas.
// The content never gets smaller than one pixel, so at size 1 it covers the whole
// canvas and there is no transparent margin left.
func ShrinkAndCenter(img image.Image, size int) *image.NRGBA {
	box, ok := BoundingBox(img)
	if !ok {
		return Fill(img, size)
	}

	side := scaledSide(size, model.ShrinkFactor)
	content := imaging.Resize(imaging.Crop(img, box), side, side, imaging.Lanczos)

	canvas := imaging.New(size, size, color.NRGBA{})

	// находим точку вставки так, чтобы контент оказался по центру
	offset := image.Pt(
		(size-content.Bounds().Dx())/2,
		(size-content.Bounds().Dy())/2,
	)

	// альфа самого контента работает как маска
	return imaging.Overlay(canvas, content, offset, 1.0)
}

// scaledSide - сторона после масштабирования, не меньше одного пикселя
func scaledSide(size int, factor float64) int {
	return max(1, int(float64(size)*factor))
}
