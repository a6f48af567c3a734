package operations

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"photo-brander/internal/domain"

	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"
)

// Fitter maps a source image onto the output canvas according to a resize mode.
type Fitter struct {
	filter imaging.ResampleFilter
}

func NewFitter() *Fitter {
	return &Fitter{filter: imaging.Lanczos}
}

// Fit returns the canvas for img. In none mode the canvas keeps the source
// dimensions, every other mode yields exactly width x height.
func (f *Fitter) Fit(img image.Image, width, height int, mode domain.ResizeMode, pad color.Color) (*image.RGBA, error) {
	mode = NormalizeMode(mode)
	switch mode {
	case domain.ResizeNone:
		return ToRGBA(img), nil
	case domain.ResizeStretch, domain.ResizeCover, domain.ResizeFitPad:
	default:
		return nil, fmt.Errorf("%w: %q, use none | fit_pad | stretch | cover", ErrInvalidResizeMode, mode)
	}

	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: canvas %dx%d", ErrInvalidDimensions, width, height)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: empty source image", ErrInvalidDimensions)
	}

	switch mode {
	case domain.ResizeStretch:
		return ToRGBA(imaging.Resize(img, width, height, f.filter)), nil
	case domain.ResizeCover:
		return ToRGBA(imaging.Fill(img, width, height, imaging.Center, f.filter)), nil
	default:
		return f.fitPad(img, width, height, pad), nil
	}
}

func (f *Fitter) fitPad(img image.Image, width, height int, pad color.Color) *image.RGBA {
	size := FitPadSize(img.Bounds().Dx(), img.Bounds().Dy(), width, height)
	resized := imaging.Resize(img, size.X, size.Y, f.filter)

	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.Draw(canvas, canvas.Bounds(), image.NewUniform(pad), image.Point{}, xdraw.Src)

	at := image.Pt((width-size.X)/2, (height-size.Y)/2)
	xdraw.Draw(canvas, image.Rectangle{Min: at, Max: at.Add(size)}, resized, resized.Bounds().Min, xdraw.Over)
	return canvas
}

// FitPadSize is the size of a srcW x srcH image scaled to fit inside
// width x height with its aspect ratio preserved.
func FitPadSize(srcW, srcH, width, height int) image.Point {
	scale := math.Min(float64(width)/float64(srcW), float64(height)/float64(srcH))
	return image.Pt(
		max(1, int(math.Round(float64(srcW)*scale))),
		max(1, int(math.Round(float64(srcH)*scale))),
	)
}

func NormalizeMode(mode domain.ResizeMode) domain.ResizeMode {
	return domain.ResizeMode(strings.ToLower(strings.TrimSpace(string(mode))))
}

// ToRGBA returns img as an *image.RGBA anchored at the origin, converting
// only when needed.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}

	bounds := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	xdraw.Draw(dst, dst.Bounds(), img, bounds.Min, xdraw.Src)
	return dst
}
