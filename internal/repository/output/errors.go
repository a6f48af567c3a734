package output

import "errors"

var (
	ErrInvalidName  = errors.New("invalid output name")
	ErrStorageError = errors.New("storage error")
)
