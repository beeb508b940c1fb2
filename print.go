package rlebw

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// WriteRaw prints the image one pixel per character, a row per line.
func (img *Image) WriteRaw(w io.Writer) error {
	if err := img.check(); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "width = %d height = %d\n", img.width, img.height)
	fmt.Fprintln(bw, "RAW image:")

	for _, r := range img.rows {
		c := byte('0' + r.First)
		for _, n := range r.Runs {
			for i := 0; i < n; i++ {
				bw.WriteByte(c)
			}
			c ^= 1
		}
		bw.WriteByte('\n')
	}
	bw.WriteByte('\n')
	return bw.Flush()
}

// WriteRLE prints the serialized rows of the image, terminator included.
func (img *Image) WriteRLE(w io.Writer) error {
	if err := img.check(); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "width = %d height = %d\n", img.width, img.height)
	fmt.Fprintln(bw, "RLE encoding:")

	for _, r := range img.rows {
		for i, v := range r.Serialize() {
			if i > 0 {
				bw.WriteByte(' ')
			}
			bw.WriteString(strconv.Itoa(v))
		}
		bw.WriteByte('\n')
	}
	bw.WriteByte('\n')
	return bw.Flush()
}
