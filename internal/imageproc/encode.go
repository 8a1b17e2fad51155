package imageproc

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/UnendingLoop/FaviconNormalizer/internal/model"
	"github.com/disintegration/imaging"
	ico "github.com/sergeymakinen/go-ico"
)

var pngLevels = map[string]png.CompressionLevel{
	model.CompressionBest:    png.BestCompression,
	model.CompressionDefault: png.DefaultCompression,
	model.CompressionSpeed:   png.BestSpeed,
	model.CompressionNone:    png.NoCompression,
}

// Encode renders the image into an in-memory buffer, so a failure never touches the target file.
func Encode(img image.Image, format model.OutputFormat, compression string) (io.Reader, int64, error) {
	if img == nil {
		return nil, 0, fmt.Errorf("%w: nil image provided to Encode", model.ErrEncode)
	}

	var buf bytes.Buffer
	switch format {
	case model.FormatPNG:
		level, ok := pngLevels[compression]
		if !ok {
			level = png.BestCompression
		}
		if err := imaging.Encode(&buf, img, imaging.PNG, imaging.PNGCompressionLevel(level)); err != nil {
			return nil, 0, fmt.Errorf("%w: png: %w", model.ErrEncode, err)
		}
	case model.FormatICO:
		if err := ico.Encode(&buf, img); err != nil {
			return nil, 0, fmt.Errorf("%w: ico: %w", model.ErrEncode, err)
		}
	default:
		return nil, 0, fmt.Errorf("%w: output format %q", model.ErrUnsupportedFormat, format)
	}

	return &buf, int64(buf.Len()), nil
}
