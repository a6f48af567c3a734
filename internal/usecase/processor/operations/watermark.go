package operations

import (
	"image"
	"math"

	"photo-brander/internal/domain"

	xdraw "golang.org/x/image/draw"
)

// Watermarker blends the logo into a canvas at a fixed corner.
type Watermarker struct {
	position domain.LogoPosition
	offset   int
}

func NewWatermarker(position domain.LogoPosition, offset int) *Watermarker {
	return &Watermarker{
		position: position,
		offset:   offset,
	}
}

// Apply composites logo into canvas in place and returns where it was placed.
// scaleFactor is the factor the logo was shrunk by; the configured offset is
// shrunk by the same amount.
func (w *Watermarker) Apply(canvas, logo *image.RGBA, scaleFactor float64) (image.Point, error) {
	return Composite(canvas, logo, w.position, w.offset, scaleFactor)
}

// Composite blends logo over canvas (source-over) at the computed corner.
func Composite(canvas, logo *image.RGBA, position domain.LogoPosition, baseOffset int, scaleFactor float64) (image.Point, error) {
	bounds := canvas.Bounds()
	size := logo.Bounds().Size()

	at, err := ComputeLogoPosition(bounds.Dx(), bounds.Dy(), size.X, size.Y, position, EffectiveOffset(baseOffset, scaleFactor))
	if err != nil {
		return image.Point{}, err
	}

	at = at.Add(bounds.Min)
	xdraw.Draw(canvas, image.Rectangle{Min: at, Max: at.Add(size)}, logo, logo.Bounds().Min, xdraw.Over)
	return at, nil
}

func EffectiveOffset(baseOffset int, scaleFactor float64) int {
	return max(0, int(math.Round(float64(baseOffset)*scaleFactor)))
}

// Flatten composites canvas over an opaque white background.
func Flatten(canvas *image.RGBA) *image.RGBA {
	bounds := canvas.Bounds()
	out := image.NewRGBA(bounds)
	xdraw.Draw(out, bounds, image.White, image.Point{}, xdraw.Src)
	xdraw.Draw(out, bounds, canvas, bounds.Min, xdraw.Over)
	return out
}
