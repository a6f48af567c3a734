package operations

import "errors"

var (
	ErrInvalidColorFormat = errors.New("invalid color format")
	ErrInvalidPosition    = errors.New("invalid logo position")
	ErrInvalidResizeMode  = errors.New("invalid resize mode")
	ErrInvalidDimensions  = errors.New("invalid dimensions")
)
