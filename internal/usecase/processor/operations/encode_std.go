//go:build !libjpeg

package operations

import (
	"image"
	"image/jpeg"
	"io"
)

// encodeBaseline uses the pure Go encoder. Quality below 1 is treated as 1.
func encodeBaseline(w io.Writer, img image.Image, quality int) error {
	return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
}
