package logfile

import "errors"

var (
	// ErrClosed is returned by Close when the queue has already been closed.
	ErrClosed = errors.New("logfile: queue closed")

	ErrCreateDir        = errors.New("logfile: failed to create log directory")
	ErrOpenFile         = errors.New("logfile: failed to open log file")
	ErrWriteFailed      = errors.New("logfile: failed to append log lines")
	ErrInvalidRetention = errors.New("logfile: retention must be at least one day")
	ErrPruneFailed      = errors.New("logfile: failed to remove expired log entries")
)
