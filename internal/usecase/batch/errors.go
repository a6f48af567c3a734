package batch

import "errors"

var ErrSourceFile = errors.New("source file failed")
