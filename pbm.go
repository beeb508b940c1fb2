package rlebw

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// UnpackBits expands packed PBM bytes into raw pixels, eight pixels per byte
// with the most significant bit first. raw must hold 8*len(packed) pixels.
func UnpackBits(packed []byte, raw []uint8) {
	for b, v := range packed {
		for bit := 0; bit < 8; bit++ {
			raw[8*b+bit] = (v >> (7 - bit)) & 1
		}
	}
}

// PackBits is the inverse of UnpackBits.
func PackBits(raw []uint8, packed []byte) {
	for b := range packed {
		var v byte
		for bit := 0; bit < 8; bit++ {
			if raw[8*b+bit] != 0 {
				v |= 1 << (7 - bit)
			}
		}
		packed[b] = v
	}
}

// pbmReader tokenizes a netpbm header.
type pbmReader struct {
	*bufio.Reader
}

// skipSpace consumes whitespace and comments up to the next token.
func (r pbmReader) skipSpace() error {
	for {
		c, err := r.ReadByte()
		if err != nil {
			return err
		}
		switch {
		case c == '#':
			if _, err := r.ReadString('\n'); err != nil {
				return err
			}
		case isSpace(c):
		default:
			return r.UnreadByte()
		}
	}
}

// readInt reads a non-negative decimal number.
func (r pbmReader) readInt() (int, error) {
	if err := r.skipSpace(); err != nil {
		return 0, err
	}
	var digits []byte
	for {
		c, err := r.ReadByte()
		if err == io.EOF && len(digits) > 0 {
			break
		}
		if err != nil {
			return 0, err
		}
		if c < '0' || c > '9' {
			if err := r.UnreadByte(); err != nil {
				return 0, err
			}
			break
		}
		digits = append(digits, c)
	}
	if len(digits) == 0 {
		return 0, errors.New("number expected")
	}
	return strconv.Atoi(string(digits))
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

// DecodePBM reads a binary (P4) or plain (P1) PBM image.
func DecodePBM(r io.Reader) (*Image, error) {
	br := pbmReader{bufio.NewReader(r)}

	var magic [2]byte
	if _, err := io.ReadFull(br, magic[:]); err != nil {
		return nil, errors.Wrap(err, "pbm: reading magic number")
	}
	if magic[0] != 'P' || (magic[1] != '4' && magic[1] != '1') {
		return nil, errors.Wrapf(ErrUnsupportedFormat, "pbm: invalid magic number %q", magic[:])
	}
	w, err := br.readInt()
	if err != nil {
		return nil, errors.Wrap(err, "pbm: invalid width")
	}
	h, err := br.readInt()
	if err != nil {
		return nil, errors.Wrap(err, "pbm: invalid height")
	}
	img, err := newDecodedImage(w, h)
	if err != nil {
		return nil, errors.WithMessage(err, "pbm")
	}
	if magic[1] == '1' {
		return decodePlain(br, img)
	}

	// A single whitespace separates the header from the raster.
	c, err := br.ReadByte()
	if err != nil || !isSpace(c) {
		return nil, errors.New("pbm: whitespace expected after header")
	}
	nbytes := (w + 7) / 8
	packed := make([]byte, nbytes)
	raw := make([]uint8, nbytes*8)
	for y := 0; y < h; y++ {
		if _, err := io.ReadFull(br, packed); err != nil {
			return nil, errors.Wrapf(err, "pbm: reading pixels of row %d", y)
		}
		UnpackBits(packed, raw)
		row, err := Compress(raw[:w])
		if err != nil {
			return nil, err
		}
		img.rows = append(img.rows, row)
	}
	return img, nil
}

func decodePlain(br pbmReader, img *Image) (*Image, error) {
	raw := make([]uint8, img.width)
	for y := 0; y < img.height; y++ {
		for x := range raw {
			if err := br.skipSpace(); err != nil {
				return nil, errors.Wrapf(err, "pbm: reading pixel (%d,%d)", x, y)
			}
			c, err := br.ReadByte()
			if err != nil {
				return nil, errors.Wrapf(err, "pbm: reading pixel (%d,%d)", x, y)
			}
			switch c {
			case '0':
				raw[x] = 0
			case '1':
				raw[x] = 1
			default:
				return nil, fmt.Errorf("pbm: invalid pixel %q at (%d,%d)", c, x, y)
			}
		}
		row, err := Compress(raw)
		if err != nil {
			return nil, err
		}
		img.rows = append(img.rows, row)
	}
	return img, nil
}

// EncodePBM writes img as a binary (P4) PBM image. Padding bits are white.
func EncodePBM(w io.Writer, img *Image) error {
	if err := img.check(); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P4\n%d %d\n", img.width, img.height); err != nil {
		return errors.Wrap(err, "pbm: writing header")
	}
	nbytes := (img.width + 7) / 8
	raw := make([]uint8, nbytes*8)
	packed := make([]byte, nbytes)
	for y, r := range img.rows {
		if err := r.DecompressInto(raw[:img.width]); err != nil {
			return errors.Wrapf(err, "pbm: row %d", y)
		}
		PackBits(raw, packed)
		if _, err := bw.Write(packed); err != nil {
			return errors.Wrap(err, "pbm: writing pixels")
		}
	}
	return bw.Flush()
}

// EncodePlainPBM writes img as a plain (P1) PBM image.
func EncodePlainPBM(w io.Writer, img *Image) error {
	if err := img.check(); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "P1\n%d %d\n", img.width, img.height)

	raw := make([]uint8, img.width)
	line := make([]byte, 0, 2*img.width)
	for y, r := range img.rows {
		if err := r.DecompressInto(raw); err != nil {
			return errors.Wrapf(err, "pbm: row %d", y)
		}
		line = line[:0]
		for x, p := range raw {
			if x > 0 {
				line = append(line, ' ')
			}
			line = append(line, '0'+p)
		}
		line = append(line, '\n')
		if _, err := bw.Write(line); err != nil {
			return errors.Wrap(err, "pbm: writing pixels")
		}
	}
	return bw.Flush()
}
