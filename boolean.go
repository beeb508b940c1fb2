package rlebw

import (
	"fmt"
	"strings"

	"github.com/esimov/rlebw/utils"
	"github.com/pkg/errors"
)

// Op is a pixel-wise binary boolean operator.
type Op int

const (
	OpAnd Op = iota
	OpOr
	OpXor
)

var opNames = [...]string{"and", "or", "xor"}

func (op Op) String() string {
	if op < OpAnd || op > OpXor {
		return fmt.Sprintf("Op(%d)", int(op))
	}
	return opNames[op]
}

// ParseOp returns the operator named s (case insensitive).
func ParseOp(s string) (Op, error) {
	for i, name := range opNames {
		if strings.EqualFold(s, name) {
			return Op(i), nil
		}
	}
	return 0, fmt.Errorf("unknown boolean operator %q", s)
}

// apply combines two pixel colors.
func (op Op) apply(a, b Color) Color {
	switch op {
	case OpAnd:
		return a & b
	case OpOr:
		return a | b
	default:
		return a ^ b
	}
}

// Neg returns the negative of img.
func Neg(img *Image) (*Image, error) {
	return NegWith(img, nil)
}

// NegWith is like Neg and records row accesses in c.
// Negation never moves a run boundary, so only the first color changes.
func NegWith(img *Image, c *Counters) (*Image, error) {
	if err := img.check(); err != nil {
		return nil, err
	}
	dst, err := newImage(img.width, img.height)
	if err != nil {
		return nil, err
	}
	for y, r := range img.rows {
		nr := r.clone()
		nr.First = nr.First.Invert()
		dst.rows[y] = nr
		c.read(r.SerializedSize())
		c.write(r.SerializedSize())
	}
	return dst, nil
}

// And returns the pixel-wise AND of two images of the same size.
func And(a, b *Image) (*Image, error) { return CombineWith(OpAnd, a, b, nil) }

// Or returns the pixel-wise OR of two images of the same size.
func Or(a, b *Image) (*Image, error) { return CombineWith(OpOr, a, b, nil) }

// Xor returns the pixel-wise XOR of two images of the same size.
func Xor(a, b *Image) (*Image, error) { return CombineWith(OpXor, a, b, nil) }

// Combine applies op to every pair of pixels of a and b.
func Combine(op Op, a, b *Image) (*Image, error) {
	return CombineWith(op, a, b, nil)
}

// CombineWith is like Combine and records row accesses in c.
// The rows are merged run by run; none of them is ever decompressed.
func CombineWith(op Op, a, b *Image, c *Counters) (*Image, error) {
	if op < OpAnd || op > OpXor {
		return nil, fmt.Errorf("unknown boolean operator %v", op)
	}
	if err := sameSize(a, b); err != nil {
		return nil, errors.WithMessage(err, op.String())
	}
	dst, err := newImage(a.width, a.height)
	if err != nil {
		return nil, err
	}
	for y := range dst.rows {
		dst.rows[y] = mergeRows(op, a.rows[y], b.rows[y], c)
	}
	return dst, nil
}

// mergeRows walks the runs of both rows in lockstep. Each cursor keeps the
// color of its current run and the pixels left in it. At every step the
// cursors advance by the shorter remainder; when both remainders are equal
// both cursors move to their next run in the same step. The output run grows
// as long as the combined color stays the same.
func mergeRows(op Op, ra, rb Row, c *Counters) Row {
	// At most every boundary of both rows survives.
	runs := make([]int, 0, ra.RunCount()+rb.RunCount())

	ia, ib := 0, 0
	ca, cb := ra.First, rb.First
	na, nb := ra.Runs[0], rb.Runs[0]
	c.read(4)

	first := op.apply(ca, cb)
	cur, n := first, 0
	for ia < len(ra.Runs) && ib < len(rb.Runs) {
		c.step()
		if col := op.apply(ca, cb); col != cur {
			runs = append(runs, n)
			c.write(1)
			cur, n = col, 0
		}
		adv := utils.Min(na, nb)
		n += adv
		na -= adv
		nb -= adv

		if na == 0 {
			if ia++; ia < len(ra.Runs) {
				na = ra.Runs[ia]
				c.read(1)
			}
			ca ^= 1
		}
		if nb == 0 {
			if ib++; ib < len(rb.Runs) {
				nb = rb.Runs[ib]
				c.read(1)
			}
			cb ^= 1
		}
	}
	runs = append(runs, n)
	c.write(3)

	// Keep only what was used.
	exact := make([]int, len(runs))
	copy(exact, runs)

	return Row{First: first, Runs: exact}
}
