// Package signal defines the element types carried by pipes. It allows to:
//	- describe fixed-width scalar and complex elements
//	- view committed elements as their raw bytes
//	- convert bit depth for int samples
package signal

import (
	"errors"
	"math"
	"unsafe"
)

// Scalar is a fixed-width numeric element kind.
type Scalar interface {
	~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Complex is a cartesian pair of scalars.
type Complex[T Scalar] struct {
	Re, Im T
}

// Cartesian is the capability of exposing real and imaginary components.
// Blocks that format complex-valued streams accept any element implementing
// it instead of a single numeric representation.
type Cartesian interface {
	Cartesian() (re, im float64)
}

// Cartesian returns both components as float64.
func (c Complex[T]) Cartesian() (re, im float64) {
	return float64(c.Re), float64(c.Im)
}

// Width returns the in-memory size of one element of T in bytes.
func Width[T any]() int {
	var v T
	return int(unsafe.Sizeof(v))
}

// Bytes views an element slice as its raw bytes. T must be a plain
// fixed-width value type: descriptor adapters and the serializer move these
// bytes across type boundaries unchanged.
func Bytes[T any](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*Width[T]())
}

const (
	// BitDepth8 is 8 bit depth.
	BitDepth8 = BitDepth(8)
	// BitDepth16 is 16 bit depth.
	BitDepth16 = BitDepth(16)
	// BitDepth32 is 32 bit depth.
	BitDepth32 = BitDepth(32)
)

// BitDepth contains values required for int-to-float and backward conversion.
type BitDepth int

// ErrUnsupportedBitDepth is returned when a wav adapter is asked for a bit
// depth it cannot convert.
var ErrUnsupportedBitDepth = errors.New("only 8, 16 and 32 bit depth is supported")

// Supported reports whether the wav adapters can convert this bit depth.
func (bitDepth BitDepth) Supported() bool {
	switch bitDepth {
	case BitDepth8, BitDepth16, BitDepth32:
		return true
	}
	return false
}

// devider is used when int to float conversion is done.
func (bitDepth BitDepth) devider() int {
	switch bitDepth {
	case BitDepth8:
		return math.MaxInt8
	case BitDepth16:
		return math.MaxInt16
	case BitDepth32:
		return math.MaxInt32
	default:
		return 1
	}
}

// multiplier is used when float to int conversion is done.
func (bitDepth BitDepth) multiplier() int {
	switch bitDepth {
	case BitDepth8:
		return math.MaxInt8 - 1
	case BitDepth16:
		return math.MaxInt16 - 1
	case BitDepth32:
		return math.MaxInt32 - 1
	default:
		return 1
	}
}

// AsFloat converts an integer sample of this bit depth to the [-1, 1] range.
func (bitDepth BitDepth) AsFloat(v int) float64 {
	return float64(v) / float64(bitDepth.devider())
}

// AsInt converts a [-1, 1] float sample to an integer of this bit depth.
func (bitDepth BitDepth) AsInt(v float64) int {
	return int(v * float64(bitDepth.multiplier()))
}
