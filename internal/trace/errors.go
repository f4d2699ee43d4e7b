package trace

import "errors"

var (
	ErrRunNotFound = errors.New("trace: run not found")
	ErrNoFrames    = errors.New("trace: frame count must be positive")
)
