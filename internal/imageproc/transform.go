package imageproc

import (
	"fmt"
	"image"

	"github.com/UnendingLoop/FaviconNormalizer/internal/model"
)

// Transform applies the selected variant and returns a size x size canvas.
func Transform(img image.Image, variant model.Variant, size int) (*image.NRGBA, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image provided to Transform", model.ErrDecode)
	}
	if size <= 0 {
		return nil, fmt.Errorf("%w: got %d", model.ErrIncorrectSize, size)
	}

	switch variant {
	case model.VariantFill:
		return Fill(img, size), nil
	case model.VariantShrinkAndCenter:
		return ShrinkAndCenter(img, size), nil
	case model.VariantGrowAndCenterCrop:
		return GrowAndCenterCrop(img, size), nil
	default:
		return nil, fmt.Errorf("%w: %q", model.ErrIncorrectVariant, variant)
	}
}
