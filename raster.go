package rlebw

import (
	"bufio"
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
)

// DefaultThreshold is the luminance under which a raster pixel becomes black.
const DefaultThreshold = 128

var (
	blackGray = color.Gray{Y: 0x00}
	whiteGray = color.Gray{Y: 0xff}

	bwPalette = color.Palette{whiteGray, blackGray}
)

// ColorModel implements the image.Image interface.
func (img *Image) ColorModel() color.Model { return color.GrayModel }

// Bounds implements the image.Image interface.
func (img *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, img.Width(), img.Height())
}

// At implements the image.Image interface. It walks the runs of row y,
// so prefer Gray when every pixel is needed.
func (img *Image) At(x, y int) color.Color {
	if !image.Pt(x, y).In(img.Bounds()) {
		return whiteGray
	}
	if img.rows[y].ColorAt(x) == Black {
		return blackGray
	}
	return whiteGray
}

// Gray renders the image into an 8-bit grayscale raster.
func (img *Image) Gray() *image.Gray {
	dst := image.NewGray(img.Bounds())
	raw := make([]uint8, img.Width())
	for y, r := range img.rows {
		if err := r.DecompressInto(raw); err != nil {
			continue
		}
		row := dst.Pix[y*dst.Stride : y*dst.Stride+img.width]
		for x, p := range raw {
			if p == uint8(Black) {
				row[x] = blackGray.Y
			} else {
				row[x] = whiteGray.Y
			}
		}
	}
	return dst
}

// paletted renders the image into a two color paletted raster, index 1 being black.
func (img *Image) paletted() *image.Paletted {
	dst := image.NewPaletted(img.Bounds(), bwPalette)
	for y, r := range img.rows {
		r.DecompressInto(dst.Pix[y*dst.Stride : y*dst.Stride+img.width])
	}
	return dst
}

// FromImage converts any raster image into a black and white image. Pixels
// whose luminance is below threshold become black; fully transparent pixels
// are white.
func FromImage(src image.Image, threshold uint8) (*Image, error) {
	b := src.Bounds()
	img, err := newImage(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	gray := imaging.Grayscale(src)

	raw := make([]uint8, img.width)
	for y := range img.rows {
		off := gray.PixOffset(0, y)
		for x := range raw {
			px := gray.Pix[off+x*4 : off+x*4+4]
			if px[3] != 0 && px[0] < threshold {
				raw[x] = uint8(Black)
			} else {
				raw[x] = uint8(White)
			}
		}
		if img.rows[y], err = Compress(raw); err != nil {
			return nil, err
		}
	}
	return img, nil
}

// Supported file formats.
const (
	FormatPBM      = "pbm"
	FormatPlainPBM = "pbm-plain"
	FormatRLE      = "rle"
	FormatPNG      = "png"
	FormatJPEG     = "jpeg"
	FormatGIF      = "gif"
	FormatBMP      = "bmp"
)

// FormatFromExt returns the format matching the extension of a file name.
func FormatFromExt(name string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".pbm":
		return FormatPBM, nil
	case ".rle":
		return FormatRLE, nil
	case ".png":
		return FormatPNG, nil
	case ".jpg", ".jpeg":
		return FormatJPEG, nil
	case ".gif":
		return FormatGIF, nil
	case ".bmp":
		return FormatBMP, nil
	default:
		return "", errors.Wrapf(ErrUnsupportedFormat, "%q file type not supported", ext)
	}
}

// Decode reads an image in any supported format. Raster formats are turned
// into black and white using threshold. The name of the detected format is
// returned with the image.
func Decode(r io.Reader, threshold uint8) (*Image, string, error) {
	br := bufio.NewReader(r)
	head, _ := br.Peek(len(rleMagic))

	switch {
	case bytes.HasPrefix(head, []byte(rleMagic)):
		img, err := DecodeRLE(br)
		return img, FormatRLE, err
	case bytes.HasPrefix(head, []byte("P4")):
		img, err := DecodePBM(br)
		return img, FormatPBM, err
	case bytes.HasPrefix(head, []byte("P1")):
		img, err := DecodePBM(br)
		return img, FormatPlainPBM, err
	}

	src, format, err := image.Decode(br)
	if err != nil {
		return nil, "", errors.Wrap(err, "could not decode the source image")
	}
	img, err := FromImage(src, threshold)
	return img, format, err
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img *Image, format string) error {
	if err := img.check(); err != nil {
		return err
	}
	switch format {
	case FormatPBM:
		return EncodePBM(w, img)
	case FormatPlainPBM:
		return EncodePlainPBM(w, img)
	case FormatRLE:
		return EncodeRLE(w, img)
	case FormatPNG:
		return png.Encode(w, img.paletted())
	case FormatJPEG:
		return jpeg.Encode(w, img.Gray(), &jpeg.Options{Quality: 100})
	case FormatGIF:
		return gif.Encode(w, img.paletted(), &gif.Options{NumColors: 2})
	case FormatBMP:
		return bmp.Encode(w, img.Gray())
	default:
		return errors.Wrapf(ErrUnsupportedFormat, "%q", format)
	}
}
