package operations

import (
	"fmt"
	"image"
	"strings"

	"photo-brander/internal/domain"
)

// ComputeLogoPosition returns the top-left corner of a logoW x logoH logo
// placed in the given canvas corner, moved inward by offset on both axes.
// The result is not clamped to the canvas.
func ComputeLogoPosition(canvasW, canvasH, logoW, logoH int, position domain.LogoPosition, offset int) (image.Point, error) {
	switch NormalizePosition(position) {
	case domain.LogoLeftTop:
		return image.Pt(offset, offset), nil
	case domain.LogoLeftBottom:
		return image.Pt(offset, canvasH-logoH-offset), nil
	case domain.LogoRightTop:
		return image.Pt(canvasW-logoW-offset, offset), nil
	case domain.LogoRightBottom:
		return image.Pt(canvasW-logoW-offset, canvasH-logoH-offset), nil
	default:
		return image.Point{}, fmt.Errorf("%w: %q, use left_top | left_bottom | right_top | right_bottom", ErrInvalidPosition, position)
	}
}

func NormalizePosition(position domain.LogoPosition) domain.LogoPosition {
	return domain.LogoPosition(strings.ToLower(strings.TrimSpace(string(position))))
}
