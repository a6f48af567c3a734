package processor

import (
	"errors"
	"fmt"

	"photo-brander/internal/domain"
)

var (
	ErrLogoAsset = errors.New("logo asset unavailable")
	ErrDecode    = errors.New("failed to decode image")
)

// StageError records which pipeline step produced Err.
type StageError struct {
	Stage domain.Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// StageOf reports the stage recorded in err, if any.
func StageOf(err error) (domain.Stage, bool) {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage, true
	}
	return "", false
}

func stageError(stage domain.Stage, err error) error {
	return &StageError{Stage: stage, Err: err}
}
