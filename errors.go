package rlebw

import "github.com/pkg/errors"

// Size limits of an image. Requests above them fail with ErrAllocation
// instead of exhausting memory.
const (
	// MaxDimension is the largest width or height an image may have.
	MaxDimension = 1 << 24
	// MaxPixels is the largest width*height an image may have.
	MaxPixels = 1 << 32
)

var (
	// ErrAllocation is returned when the storage for an image or a row cannot be reserved.
	ErrAllocation = errors.New("rlebw: allocation failure")
	// ErrDimensionMismatch is returned when two operands do not have compatible sizes.
	ErrDimensionMismatch = errors.New("rlebw: dimension mismatch")
	// ErrMalformedRow is returned for rows without a terminator, with non-positive
	// run lengths or whose runs do not add up to the image width.
	ErrMalformedRow = errors.New("rlebw: malformed row")
	// ErrInvalidGeometry is returned for impossible image dimensions.
	ErrInvalidGeometry = errors.New("rlebw: invalid geometry")
	// ErrDestroyed is returned when a destroyed (or nil) image is used.
	ErrDestroyed = errors.New("rlebw: image destroyed")
	// ErrUnsupportedFormat is returned by the codecs for unknown file formats.
	ErrUnsupportedFormat = errors.New("rlebw: unsupported format")
)

// checkAlloc verifies that n elements can be reserved.
func checkAlloc(n int) error {
	if n < 0 || n > MaxDimension*2 {
		return errors.Wrapf(ErrAllocation, "cannot reserve %d elements", n)
	}
	return nil
}
