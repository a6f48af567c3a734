package operations

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// PrepareLogo resizes a decoded logo to its configured template size.
func PrepareLogo(img image.Image, width, height int) *image.RGBA {
	if img.Bounds().Dx() == width && img.Bounds().Dy() == height {
		return ToRGBA(img)
	}
	return ToRGBA(imaging.Resize(img, width, height, imaging.Lanczos))
}

// ScaleLogoForCanvas shrinks logo so that it takes at most maxRatio of the
// canvas in each dimension. A logo that already fits is returned as is with a
// factor of exactly 1. The input logo is never modified.
func ScaleLogoForCanvas(logo *image.RGBA, canvasW, canvasH int, maxRatio float64) (*image.RGBA, float64) {
	maxW := int(math.Floor(float64(canvasW) * maxRatio))
	maxH := int(math.Floor(float64(canvasH) * maxRatio))

	w, h := logo.Bounds().Dx(), logo.Bounds().Dy()
	if w <= maxW && h <= maxH {
		return logo, 1.0
	}

	scale := math.Min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	newW := max(1, int(math.Round(float64(w)*scale)))
	newH := max(1, int(math.Round(float64(h)*scale)))

	return ToRGBA(imaging.Resize(logo, newW, newH, imaging.Lanczos)), scale
}
