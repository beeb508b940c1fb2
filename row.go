package rlebw

import (
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Color is the value of a single pixel.
type Color uint8

const (
	// White is the background pixel value.
	White Color = 0
	// Black is the ink pixel value.
	Black Color = 1
)

// EOR marks the end of a serialized row. It can never be a run length.
const EOR = -1

// Invert returns the opposite color.
func (c Color) Invert() Color { return c ^ 1 }

func (c Color) String() string {
	if c == Black {
		return "black"
	}
	return "white"
}

// Row is a run-length encoded image row. First is the color of the leftmost
// pixel, and Runs holds the lengths of the maximal spans of equal pixels.
// Consecutive runs alternate color, starting with First.
type Row struct {
	First Color
	Runs  []int
}

// RunCount returns the number of runs in the row.
func (r Row) RunCount() int { return len(r.Runs) }

// SerializedSize returns the number of elements of the serialized row,
// the leading color and the trailing EOR included.
func (r Row) SerializedSize() int { return len(r.Runs) + 2 }

// Width returns the number of pixels covered by the row.
func (r Row) Width() int { return lo.Sum(r.Runs) }

// LastColor returns the color of the rightmost run.
func (r Row) LastColor() Color {
	if len(r.Runs)%2 == 0 {
		return r.First.Invert()
	}
	return r.First
}

// ColorAt returns the color of the pixel at column x.
func (r Row) ColorAt(x int) Color {
	c := r.First
	for _, n := range r.Runs {
		if x < n {
			return c
		}
		x -= n
		c ^= 1
	}
	return White
}

// Validate checks the row invariants against the expected width.
func (r Row) Validate(width int) error {
	if r.First > Black {
		return errors.Wrapf(ErrMalformedRow, "invalid first color %d", r.First)
	}
	if len(r.Runs) == 0 {
		return errors.Wrap(ErrMalformedRow, "row has no runs")
	}
	sum := 0
	for i, n := range r.Runs {
		if n <= 0 {
			return errors.Wrapf(ErrMalformedRow, "run %d has length %d", i, n)
		}
		sum += n
	}
	if sum != width {
		return errors.Wrapf(ErrMalformedRow, "runs cover %d pixels, expected %d", sum, width)
	}
	return nil
}

// Serialize returns the row in its flat form: [First, run1, ..., runK, EOR].
func (r Row) Serialize() []int {
	seq := make([]int, 0, r.SerializedSize())
	seq = append(seq, int(r.First))
	seq = append(seq, r.Runs...)
	return append(seq, EOR)
}

// ParseRow reads a flat serialized row. The scan stops at the first EOR and
// never goes past the end of seq.
func ParseRow(seq []int) (Row, error) {
	if len(seq) < 3 {
		return Row{}, errors.Wrapf(ErrMalformedRow, "serialized row too short (%d)", len(seq))
	}
	if seq[0] != int(White) && seq[0] != int(Black) {
		return Row{}, errors.Wrapf(ErrMalformedRow, "invalid first color %d", seq[0])
	}
	end := -1
	for i := 1; i < len(seq); i++ {
		if seq[i] == EOR {
			end = i
			break
		}
		if seq[i] <= 0 {
			return Row{}, errors.Wrapf(ErrMalformedRow, "run %d has length %d", i-1, seq[i])
		}
	}
	if end < 0 {
		return Row{}, errors.Wrap(ErrMalformedRow, "missing end of row marker")
	}
	if end == 1 {
		return Row{}, errors.Wrap(ErrMalformedRow, "row has no runs")
	}
	runs := make([]int, end-1)
	copy(runs, seq[1:end])

	return Row{First: Color(seq[0]), Runs: runs}, nil
}

// clone returns a deep copy of the row.
func (r Row) clone() Row {
	runs := make([]int, len(r.Runs))
	copy(runs, r.Runs)
	return Row{First: r.First, Runs: runs}
}

// equal compares the serialized forms of two rows.
func (r Row) equal(o Row) bool {
	if r.First != o.First || r.SerializedSize() != o.SerializedSize() {
		return false
	}
	for i := range r.Runs {
		if r.Runs[i] != o.Runs[i] {
			return false
		}
	}
	return true
}

// countRuns returns the number of runs of a raw pixel row.
func countRuns(raw []uint8) int {
	n := 1
	for i := 1; i < len(raw); i++ {
		if (raw[i] != 0) != (raw[i-1] != 0) {
			n++
		}
	}
	return n
}

// Compress encodes a raw row, one pixel per element, into a run-length row.
// Any non-zero pixel is treated as black.
func Compress(raw []uint8) (Row, error) {
	if len(raw) == 0 {
		return Row{}, errors.Wrap(ErrInvalidGeometry, "empty raw row")
	}
	if err := checkAlloc(len(raw)); err != nil {
		return Row{}, err
	}
	runs := make([]int, 0, countRuns(raw))

	first := pixel(raw[0])
	cur, n := first, 0
	for _, p := range raw {
		if pixel(p) != cur {
			runs = append(runs, n)
			cur, n = pixel(p), 0
		}
		n++
	}
	runs = append(runs, n)

	return Row{First: first, Runs: runs}, nil
}

// Decompress expands the row into width raw pixels.
func Decompress(width int, r Row) ([]uint8, error) {
	if width <= 0 {
		return nil, errors.Wrapf(ErrInvalidGeometry, "width %d", width)
	}
	if err := checkAlloc(width); err != nil {
		return nil, err
	}
	raw := make([]uint8, width)
	if err := r.DecompressInto(raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// DecompressInto expands the row into dst, which must hold exactly the row width.
func (r Row) DecompressInto(dst []uint8) error {
	if err := r.Validate(len(dst)); err != nil {
		return err
	}
	x, c := 0, uint8(r.First)
	for _, n := range r.Runs {
		for end := x + n; x < end; x++ {
			dst[x] = c
		}
		c ^= 1
	}
	return nil
}

func pixel(p uint8) Color {
	if p != 0 {
		return Black
	}
	return White
}
