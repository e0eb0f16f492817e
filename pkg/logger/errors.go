package logger

import "errors"

var (
	ErrUnknownLevel     = errors.New("logger: unknown level")
	ErrUnknownColorMode = errors.New("logger: unknown color mode")
)
