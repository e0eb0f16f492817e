package redact

import "errors"

var (
	ErrInvalidRule  = errors.New("redact: invalid rule")
	ErrReadingRules = errors.New("redact: failed to read rules file")
	ErrParsingRules = errors.New("redact: failed to parse rules file")
)
