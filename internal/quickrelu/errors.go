package quickrelu

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrSizeMismatch is returned when the buffers of one call differ in length.
	ErrSizeMismatch = errors.New("quickrelu: buffer size mismatch")

	// ErrUnavailable is returned when a backend's device cannot be used on this system.
	ErrUnavailable = errors.New("quickrelu: backend unavailable")
)

func sizeMismatch(op, buffer string, got, want int) error {
	return errors.Wrapf(ErrSizeMismatch, "%s: %s has %d elements, output has %d", op, buffer, got, want)
}

// DeviceError reports a failure of the device executing a kernel: launch,
// memory access or synchronization. Output buffers are undefined after it.
type DeviceError struct {
	Backend string // Backend name, e.g. "WebGPU".
	Op      string // Stage that failed, e.g. "dispatch" or "readback".
	Err     error  // Underlying cause.
}

// Error implements error.
func (e *DeviceError) Error() string {
	return fmt.Sprintf("quickrelu: %s device failure during %s: %v", e.Backend, e.Op, e.Err)
}

// Unwrap returns the underlying cause.
func (e *DeviceError) Unwrap() error {
	return e.Err
}

// IsDeviceError reports whether err is, or wraps, a *DeviceError.
func IsDeviceError(err error) bool {
	var de *DeviceError
	return errors.As(err, &de)
}
