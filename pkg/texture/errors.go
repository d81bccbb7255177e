package texture

import "errors"

// Error kinds reported by every texture operation. Callers match them with
// errors.Is; the wrapped message carries the detail.
var (
	// ErrUnsupportedMode means the pixel layout is not one of the registered modes.
	ErrUnsupportedMode = errors.New("unsupported mode")
	// ErrInvalidMode means the mode is registered but not accepted by the operation.
	ErrInvalidMode = errors.New("invalid mode")
	// ErrInvalidArgument covers malformed masks, colours, thresholds and paths.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrIO covers decode/encode failures and filesystem errors.
	ErrIO = errors.New("i/o error")
)
