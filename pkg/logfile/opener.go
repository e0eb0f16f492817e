package logfile

import (
	"errors"
	"io"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

const filePerm = 0o644

// Opener opens the destination of a Queue in append mode.
type Opener func(path string) (io.WriteCloser, error)

// AppendOpener opens path with O_APPEND, creating it when missing.
func AppendOpener(path string) (io.WriteCloser, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, filePerm)
	if err != nil {
		return nil, errors.Join(ErrOpenFile, err)
	}
	return f, nil
}

// SizeCappedOpener appends to path until it reaches maxSizeMB, then moves it
// aside as "<name>-<timestamp>.log" in the same day directory and continues in
// a fresh file. Backups are left to Rotator.Prune.
func SizeCappedOpener(maxSizeMB int) Opener {
	return func(path string) (io.WriteCloser, error) {
		return &lumberjack.Logger{
			Filename:  path,
			MaxSize:   maxSizeMB,
			LocalTime: true,
		}, nil
	}
}
