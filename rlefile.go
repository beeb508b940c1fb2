package rlebw

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"

	"github.com/esimov/rlebw/utils"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

// rleMagic opens every run-length container file.
const rleMagic = "RLBW"

const rleVersion = 1

// EncodeRLE writes img in the native run-length container format: the magic
// number and a version byte, followed by a zstd stream of unsigned varints
// holding the width, the height and, for every row, its first color, its run
// count and its runs.
func EncodeRLE(w io.Writer, img *Image) error {
	if err := img.check(); err != nil {
		return err
	}
	if _, err := io.WriteString(w, rleMagic); err != nil {
		return errors.Wrap(err, "rle: writing magic number")
	}
	if _, err := w.Write([]byte{rleVersion}); err != nil {
		return errors.Wrap(err, "rle: writing version")
	}

	enc, err := zstd.NewWriter(w)
	if err != nil {
		return errors.Wrap(err, "rle: zstd encoder")
	}
	bw := bufio.NewWriter(enc)
	buf := make([]byte, 0, binary.MaxVarintLen64)
	put := func(v int) error {
		buf = binary.AppendUvarint(buf[:0], uint64(v))
		_, err := bw.Write(buf)
		return err
	}

	if err := put(img.width); err != nil {
		enc.Close()
		return errors.Wrap(err, "rle: writing header")
	}
	if err := put(img.height); err != nil {
		enc.Close()
		return errors.Wrap(err, "rle: writing header")
	}
	for y, r := range img.rows {
		if err := put(int(r.First)); err != nil {
			enc.Close()
			return errors.Wrapf(err, "rle: writing row %d", y)
		}
		if err := put(len(r.Runs)); err != nil {
			enc.Close()
			return errors.Wrapf(err, "rle: writing row %d", y)
		}
		for _, n := range r.Runs {
			if err := put(n); err != nil {
				enc.Close()
				return errors.Wrapf(err, "rle: writing row %d", y)
			}
		}
	}
	if err := bw.Flush(); err != nil {
		enc.Close()
		return errors.Wrap(err, "rle: flushing")
	}
	return errors.Wrap(enc.Close(), "rle: closing zstd stream")
}

// DecodeRLE reads an image written by EncodeRLE. Every row is validated.
func DecodeRLE(r io.Reader) (*Image, error) {
	var hdr [len(rleMagic) + 1]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, errors.Wrap(err, "rle: reading header")
	}
	if !bytes.Equal(hdr[:len(rleMagic)], []byte(rleMagic)) {
		return nil, errors.Wrap(ErrUnsupportedFormat, "rle: invalid magic number")
	}
	if hdr[len(rleMagic)] != rleVersion {
		return nil, errors.Wrapf(ErrUnsupportedFormat, "rle: unknown version %d", hdr[len(rleMagic)])
	}

	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "rle: zstd decoder")
	}
	defer dec.Close()
	br := bufio.NewReader(dec)

	get := func() (int, error) {
		v, err := binary.ReadUvarint(br)
		if err != nil {
			return 0, err
		}
		if v > MaxDimension {
			return 0, errors.Wrapf(ErrAllocation, "value %d out of range", v)
		}
		return int(v), nil
	}

	width, err := get()
	if err != nil {
		return nil, errors.Wrap(err, "rle: reading width")
	}
	height, err := get()
	if err != nil {
		return nil, errors.Wrap(err, "rle: reading height")
	}
	img, err := newDecodedImage(width, height)
	if err != nil {
		return nil, errors.WithMessage(err, "rle")
	}
	for y := 0; y < height; y++ {
		first, err := get()
		if err != nil {
			return nil, errors.Wrapf(err, "rle: row %d", y)
		}
		n, err := get()
		if err != nil {
			return nil, errors.Wrapf(err, "rle: row %d", y)
		}
		if n == 0 || n > width {
			return nil, errors.Wrapf(ErrMalformedRow, "rle: row %d has %d runs", y, n)
		}
		row := Row{First: Color(first), Runs: make([]int, 0, utils.Min(n, rowChunk))}
		for i := 0; i < n; i++ {
			v, err := get()
			if err != nil {
				return nil, errors.Wrapf(err, "rle: row %d", y)
			}
			row.Runs = append(row.Runs, v)
		}
		if first > int(Black) {
			return nil, errors.Wrapf(ErrMalformedRow, "rle: row %d starts with color %d", y, first)
		}
		if err := row.Validate(width); err != nil {
			return nil, errors.Wrapf(err, "rle: row %d", y)
		}
		img.rows = append(img.rows, row)
	}
	return img, nil
}
