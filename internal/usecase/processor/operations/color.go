package operations

import (
	"encoding/hex"
	"fmt"
	"image/color"
	"strings"
)

// ParseColor parses #RRGGBB or #RRGGBBAA (the # is optional, case is ignored).
// Six-digit colors are fully opaque.
func ParseColor(s string) (color.NRGBA, error) {
	digits := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(digits) != 6 && len(digits) != 8 {
		return color.NRGBA{}, fmt.Errorf("%w: %q, use #RRGGBB or #RRGGBBAA", ErrInvalidColorFormat, s)
	}

	b, err := hex.DecodeString(digits)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %q: %v", ErrInvalidColorFormat, s, err)
	}

	c := color.NRGBA{R: b[0], G: b[1], B: b[2], A: 255}
	if len(b) == 4 {
		c.A = b[3]
	}
	return c, nil
}
