// Package tensor provides the minimal tensor types the quick ReLU operator consumes.
package tensor

import (
	"reflect"

	"github.com/x448/float16"
)

// DType is a constraint for supported tensor element types.
type DType interface {
	~float32 | ~float64 | float16.Float16
}

// DataType represents runtime type information for tensors.
type DataType int

// Supported data types for tensors.
const (
	Float32 DataType = iota
	Float64
	Float16
)

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Float16:
		return 2
	case Float32:
		return 4
	case Float64:
		return 8
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float16:
		return "float16"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return "unknown"
	}
}

// ParseDataType maps a name produced by DataType.String back to its DataType.
func ParseDataType(name string) (DataType, bool) {
	for _, dt := range []DataType{Float32, Float64, Float16} {
		if dt.String() == name {
			return dt, true
		}
	}
	return 0, false
}

// DataTypeOf returns the DataType of T. Named element types map through
// their underlying type.
func DataTypeOf[T DType]() DataType {
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Uint16:
		return Float16
	case reflect.Float64:
		return Float64
	case reflect.Float32:
		return Float32
	default:
		panic("unsupported type")
	}
}
