//go:build libjpeg

package operations

import (
	"image"
	"io"

	"github.com/pixiv/go-libjpeg/jpeg"
)

// encodeBaseline uses libjpeg with optimized Huffman tables. Build with
// -tags libjpeg and cgo enabled.
func encodeBaseline(w io.Writer, img image.Image, quality int) error {
	return jpeg.Encode(w, ToRGBA(img), &jpeg.EncoderOptions{
		Quality:        max(1, quality),
		OptimizeCoding: true,
	})
}
