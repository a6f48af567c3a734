package processor

import (
	"image"
	"image/color"

	"photo-brander/internal/domain"
)

type canvasFitter interface {
	Fit(img image.Image, width, height int, mode domain.ResizeMode, pad color.Color) (*image.RGBA, error)
}

type logoCompositor interface {
	Apply(canvas, logo *image.RGBA, scaleFactor float64) (image.Point, error)
}
