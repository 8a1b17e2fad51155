package imageproc

import (
	"image"
)

// BoundingBox returns the smallest rectangle holding every pixel with non-zero alpha.
// ok is false when the image is empty or fully transparent.
func BoundingBox(img image.Image) (box image.Rectangle, ok bool) {
	if img == nil {
		return image.Rectangle{}, false
	}
	b := img.Bounds()

	// быстрый путь для NRGBA - альфа лежит в каждом 4-м байте
	if n, isNRGBA := img.(*image.NRGBA); isNRGBA {
		return nrgbaBoundingBox(n)
	}

	minX, minY, maxX, maxY := b.Max.X, b.Max.Y, b.Min.X-1, b.Min.Y-1
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a == 0 {
				continue
			}
			minX, minY = min(minX, x), min(minY, y)
			maxX, maxY = max(maxX, x), max(maxY, y)
		}
	}

	if maxX < minX || maxY < minY {
		return image.Rectangle{}, false
	}
	return image.Rect(minX, minY, maxX+1, maxY+1), true
}

func nrgbaBoundingBox(img *image.NRGBA) (image.Rectangle, bool) {
	b := img.Rect
	minX, minY, maxX, maxY := b.Max.X, b.Max.Y, b.Min.X-1, b.Min.Y-1
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):]
		for i := 0; i < b.Dx(); i++ {
			if row[i*4+3] == 0 {
				continue
			}
			x := b.Min.X + i
			minX, minY = min(minX, x), min(minY, y)
			maxX, maxY = max(maxX, x), max(maxY, y)
		}
	}

	if maxX < minX || maxY < minY {
		return image.Rectangle{}, false
	}
	return image.Rect(minX, minY, maxX+1, maxY+1), true
}
