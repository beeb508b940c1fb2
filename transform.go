package rlebw

import (
	"github.com/pkg/errors"
)

// MirrorHorizontal flips the image top to bottom.
func MirrorHorizontal(img *Image) (*Image, error) {
	return MirrorHorizontalWith(img, nil)
}

// MirrorHorizontalWith is like MirrorHorizontal and records row accesses in c.
func MirrorHorizontalWith(img *Image, c *Counters) (*Image, error) {
	if err := img.check(); err != nil {
		return nil, err
	}
	dst, err := newImage(img.width, img.height)
	if err != nil {
		return nil, err
	}
	for y := range dst.rows {
		src := img.rows[img.height-1-y]
		dst.rows[y] = src.clone()
		c.read(src.SerializedSize())
		c.write(src.SerializedSize())
	}
	return dst, nil
}

// MirrorVertical flips the image left to right.
func MirrorVertical(img *Image) (*Image, error) {
	return MirrorVerticalWith(img, nil)
}

// MirrorVerticalWith is like MirrorVertical and records row accesses in c.
func MirrorVerticalWith(img *Image, c *Counters) (*Image, error) {
	if err := img.check(); err != nil {
		return nil, err
	}
	dst, err := newImage(img.width, img.height)
	if err != nil {
		return nil, err
	}
	for y, r := range img.rows {
		n := len(r.Runs)
		runs := make([]int, n)
		for i, v := range r.Runs {
			runs[n-1-i] = v
		}
		// The reversed row starts with the color the original row ends with.
		dst.rows[y] = Row{First: r.LastColor(), Runs: runs}
		c.read(r.SerializedSize())
		c.write(r.SerializedSize())
	}
	return dst, nil
}

// ConcatBelow returns a new image with b placed under a.
// Both images must have the same width.
func ConcatBelow(a, b *Image) (*Image, error) {
	return ConcatBelowWith(a, b, nil)
}

// ConcatBelowWith is like ConcatBelow and records row accesses in c.
func ConcatBelowWith(a, b *Image, c *Counters) (*Image, error) {
	if err := a.check(); err != nil {
		return nil, err
	}
	if err := b.check(); err != nil {
		return nil, err
	}
	if a.width != b.width {
		return nil, errors.Wrapf(ErrDimensionMismatch,
			"cannot stack widths %d and %d", a.width, b.width)
	}
	dst, err := newImage(a.width, a.height+b.height)
	if err != nil {
		return nil, err
	}
	for y, r := range a.rows {
		dst.rows[y] = r.clone()
		c.read(r.SerializedSize())
		c.write(r.SerializedSize())
	}
	for y, r := range b.rows {
		dst.rows[a.height+y] = r.clone()
		c.read(r.SerializedSize())
		c.write(r.SerializedSize())
	}
	return dst, nil
}

// ConcatRight returns a new image with b placed to the right of a.
// Both images must have the same height.
func ConcatRight(a, b *Image) (*Image, error) {
	return ConcatRightWith(a, b, nil)
}

// ConcatRightWith is like ConcatRight and records row accesses in c.
func ConcatRightWith(a, b *Image, c *Counters) (*Image, error) {
	if err := a.check(); err != nil {
		return nil, err
	}
	if err := b.check(); err != nil {
		return nil, err
	}
	if a.height != b.height {
		return nil, errors.Wrapf(ErrDimensionMismatch,
			"cannot join heights %d and %d", a.height, b.height)
	}
	dst, err := newImage(a.width+b.width, a.height)
	if err != nil {
		return nil, err
	}
	for y := range dst.rows {
		dst.rows[y] = spliceRows(a.rows[y], b.rows[y])
		c.read(a.rows[y].SerializedSize() + b.rows[y].SerializedSize())
		c.write(dst.rows[y].SerializedSize())
	}
	return dst, nil
}

// spliceRows joins two rows. When the left row ends with the color the right
// row starts with, the two touching runs become a single run.
func spliceRows(l, r Row) Row {
	nl, nr := len(l.Runs), len(r.Runs)
	merge := l.LastColor() == r.First

	size := nl + nr
	if merge {
		size--
	}
	runs := make([]int, 0, size)
	runs = append(runs, l.Runs...)
	if merge {
		runs[nl-1] += r.Runs[0]
		runs = append(runs, r.Runs[1:]...)
	} else {
		runs = append(runs, r.Runs...)
	}
	return Row{First: l.First, Runs: runs}
}

// SplitBelow cuts img horizontally: top receives the first at rows and
// bottom the rest. It reverses ConcatBelow.
func SplitBelow(img *Image, at int) (top, bottom *Image, err error) {
	if err := img.check(); err != nil {
		return nil, nil, err
	}
	if at <= 0 || at >= img.height {
		return nil, nil, errors.Wrapf(ErrInvalidGeometry,
			"cannot split %d rows at row %d", img.height, at)
	}
	if top, err = FromRows(img.width, img.rows[:at]); err != nil {
		return nil, nil, err
	}
	if bottom, err = FromRows(img.width, img.rows[at:]); err != nil {
		return nil, nil, err
	}
	return top, bottom, nil
}
