package tensor

import (
	"fmt"

	"github.com/pkg/errors"
)

// Tensor is a flat, contiguous element buffer with a shape and a device.
// Elements are addressed in row-major (flattened) order.
type Tensor[T DType] struct {
	shape  Shape
	data   []T
	device Device
}

// New allocates a zero-filled tensor.
func New[T DType](shape Shape, device Device) (*Tensor[T], error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	return &Tensor[T]{
		shape:  shape.Clone(),
		data:   make([]T, shape.NumElements()),
		device: device,
	}, nil
}

// FromSlice wraps data without copying. len(data) must match the shape.
func FromSlice[T DType](data []T, shape Shape, device Device) (*Tensor[T], error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if n := shape.NumElements(); n != len(data) {
		return nil, errors.Errorf("tensor: shape %v needs %d elements, got %d", shape, n, len(data))
	}
	return &Tensor[T]{
		shape:  shape.Clone(),
		data:   data,
		device: device,
	}, nil
}

// Shape returns the tensor's dimensions.
func (t *Tensor[T]) Shape() Shape {
	return t.shape
}

// Data returns the flattened element buffer. Writes are visible to the tensor.
func (t *Tensor[T]) Data() []T {
	return t.data
}

// NumElements returns the element count.
func (t *Tensor[T]) NumElements() int {
	return len(t.data)
}

// DType returns the runtime data type.
func (t *Tensor[T]) DType() DataType {
	return DataTypeOf[T]()
}

// Device returns the device the tensor belongs to.
func (t *Tensor[T]) Device() Device {
	return t.device
}

// ByteSize returns the size of the element buffer in bytes.
func (t *Tensor[T]) ByteSize() int {
	return len(t.data) * t.DType().Size()
}

// String returns a short description of the tensor.
func (t *Tensor[T]) String() string {
	return fmt.Sprintf("Tensor[%s]%v on %s", t.DType(), t.shape, t.device)
}
