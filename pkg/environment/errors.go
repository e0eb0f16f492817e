package environment

import "errors"

// ErrUnknownEnvironment is returned by Parse for values outside the known set.
var ErrUnknownEnvironment = errors.New("unknown application environment")
