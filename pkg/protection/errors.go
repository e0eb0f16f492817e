package protection

import "errors"

var (
	ErrInitFailed = errors.New("protection: failed to initialize")
	ErrClosed     = errors.New("protection: layer already closed")
)
