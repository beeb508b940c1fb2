package rlebw

import (
	"github.com/esimov/rlebw/utils"
	"github.com/pkg/errors"
)

// Image is a black and white image whose rows are stored run-length encoded.
// An Image is never modified after construction: every operation returns
// a new image, so images may be shared freely between goroutines.
type Image struct {
	width  int
	height int
	rows   []Row
}

// rowChunk bounds the rows reserved up front by the decoders.
const rowChunk = 1024

// checkSize validates the dimensions of an image.
func checkSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return errors.Wrapf(ErrInvalidGeometry, "image size %dx%d", width, height)
	}
	if width > MaxDimension || height > MaxDimension || int64(width)*int64(height) > MaxPixels {
		return errors.Wrapf(ErrAllocation, "image size %dx%d", width, height)
	}
	return nil
}

// newImage allocates the header and the row container of an image.
func newImage(width, height int) (*Image, error) {
	if err := checkSize(width, height); err != nil {
		return nil, err
	}
	return &Image{
		width:  width,
		height: height,
		rows:   make([]Row, height),
	}, nil
}

// newDecodedImage returns an image without rows. Decoders append the rows
// as they are read, so a lying header costs nothing until the data shows up.
func newDecodedImage(width, height int) (*Image, error) {
	if err := checkSize(width, height); err != nil {
		return nil, err
	}
	return &Image{
		width:  width,
		height: height,
		rows:   make([]Row, 0, utils.Min(height, rowChunk)),
	}, nil
}

// New creates a width x height image filled with a single color.
func New(width, height int, c Color) (*Image, error) {
	if c > Black {
		return nil, errors.Wrapf(ErrMalformedRow, "invalid color %d", c)
	}
	img, err := newImage(width, height)
	if err != nil {
		return nil, err
	}
	for i := range img.rows {
		img.rows[i] = Row{First: c, Runs: []int{width}}
	}
	return img, nil
}

// NewChessboard creates a chessboard pattern made of edge x edge squares.
// The top left square has the color first. Both width and height must be
// multiples of edge.
func NewChessboard(width, height, edge int, first Color) (*Image, error) {
	if first > Black {
		return nil, errors.Wrapf(ErrMalformedRow, "invalid color %d", first)
	}
	if edge <= 0 {
		return nil, errors.Wrapf(ErrInvalidGeometry, "square edge %d", edge)
	}
	if width%edge != 0 || height%edge != 0 {
		return nil, errors.Wrapf(ErrInvalidGeometry,
			"image size %dx%d is not a multiple of the square edge %d", width, height, edge)
	}
	img, err := newImage(width, height)
	if err != nil {
		return nil, err
	}

	// Every row of a band shares the same runs; only the starting color
	// alternates from one band to the next.
	template := make([]int, width/edge)
	for i := range template {
		template[i] = edge
	}
	c := first
	for y := range img.rows {
		if y > 0 && y%edge == 0 {
			c = c.Invert()
		}
		runs := make([]int, len(template))
		copy(runs, template)
		img.rows[y] = Row{First: c, Runs: runs}
	}
	return img, nil
}

// FromRows builds an image out of already encoded rows. Every row is
// validated against width and copied.
func FromRows(width int, rows []Row) (*Image, error) {
	img, err := newImage(width, len(rows))
	if err != nil {
		return nil, err
	}
	for i, r := range rows {
		if err := r.Validate(width); err != nil {
			return nil, errors.Wrapf(err, "row %d", i)
		}
		img.rows[i] = r.clone()
	}
	return img, nil
}

// FromRaw compresses width x height raw pixels, stored row after row.
func FromRaw(width, height int, pix []uint8) (*Image, error) {
	if len(pix) != width*height {
		return nil, errors.Wrapf(ErrInvalidGeometry,
			"%d pixels for a %dx%d image", len(pix), width, height)
	}
	img, err := newImage(width, height)
	if err != nil {
		return nil, err
	}
	for y := range img.rows {
		if img.rows[y], err = Compress(pix[y*width : (y+1)*width]); err != nil {
			return nil, err
		}
	}
	return img, nil
}

// Width returns the image width in pixels.
func (img *Image) Width() int {
	if img == nil {
		return 0
	}
	return img.width
}

// Height returns the image height in pixels.
func (img *Image) Height() int {
	if img == nil {
		return 0
	}
	return img.height
}

// Row returns a copy of the encoded row y. Like slice indexing, it panics
// when y is out of range; a destroyed image has no rows at all, so check
// Destroyed first when the image may have been released.
func (img *Image) Row(y int) Row {
	return img.rows[y].clone()
}

// Raw decompresses the whole image, one byte per pixel, row after row.
func (img *Image) Raw() ([]uint8, error) {
	if err := img.check(); err != nil {
		return nil, err
	}
	pix := make([]uint8, img.width*img.height)
	for y, r := range img.rows {
		if err := r.DecompressInto(pix[y*img.width : (y+1)*img.width]); err != nil {
			return nil, errors.Wrapf(err, "row %d", y)
		}
	}
	return pix, nil
}

// Clone returns a deep copy of the image.
func (img *Image) Clone() (*Image, error) {
	if err := img.check(); err != nil {
		return nil, err
	}
	dst, err := newImage(img.width, img.height)
	if err != nil {
		return nil, err
	}
	for y, r := range img.rows {
		dst.rows[y] = r.clone()
	}
	return dst, nil
}

// Destroy releases the rows of the image. Any later operation on the image
// returns ErrDestroyed. Calling Destroy more than once is harmless.
func (img *Image) Destroy() {
	if img == nil {
		return
	}
	for y := range img.rows {
		img.rows[y] = Row{}
	}
	img.rows = nil
	img.width, img.height = 0, 0
}

// Destroyed reports whether the image was destroyed.
func (img *Image) Destroyed() bool {
	return img == nil || img.rows == nil
}

// Equal reports whether img and other hold identical run-length rows,
// which for valid rows is the same as holding identical pixels.
func (img *Image) Equal(other *Image) bool {
	return Equal(img, other)
}

// Equal reports whether two images are identical. Images with different
// dimensions are never equal.
func Equal(a, b *Image) bool {
	if a.Destroyed() || b.Destroyed() {
		return false
	}
	if a.width != b.width || a.height != b.height {
		return false
	}
	for y := range a.rows {
		if !a.rows[y].equal(b.rows[y]) {
			return false
		}
	}
	return true
}

func (img *Image) check() error {
	if img.Destroyed() {
		return ErrDestroyed
	}
	return nil
}

// sameSize verifies that a and b can be combined pixel by pixel.
func sameSize(a, b *Image) error {
	if err := a.check(); err != nil {
		return err
	}
	if err := b.check(); err != nil {
		return err
	}
	if a.width != b.width || a.height != b.height {
		return errors.Wrapf(ErrDimensionMismatch,
			"%dx%d and %dx%d", a.width, a.height, b.width, b.height)
	}
	return nil
}
