package tensor

// Device represents the compute device a kernel runs on.
type Device int

// Supported compute devices.
const (
	CPU Device = iota
	Multicore
	WebGPU
)

// String returns a human-readable device name.
func (d Device) String() string {
	switch d {
	case CPU:
		return "CPU"
	case Multicore:
		return "Multicore"
	case WebGPU:
		return "WebGPU"
	default:
		return "Unknown"
	}
}
