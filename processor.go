package rlebw

import (
	"io"
	"os"

	"github.com/esimov/rlebw/utils"
	"github.com/pkg/errors"
)

// Processor options
type Processor struct {
	// Format forces the output format. When empty it is derived from the
	// destination file extension, falling back to binary PBM.
	Format string
	// Threshold is the luminance under which raster pixels become black.
	// Zero selects DefaultThreshold.
	Threshold uint8
	Negate    bool
	FlipTB    bool // mirror top to bottom
	FlipLR    bool // mirror left to right
	Counters  *Counters
	Spinner   *utils.Spinner
}

// Apply runs the configured unary operations over img. The operations are
// applied in a fixed order: negation, top-bottom flip, left-right flip.
func (p *Processor) Apply(img *Image) (*Image, error) {
	var err error
	if p.Negate {
		if img, err = NegWith(img, p.Counters); err != nil {
			return nil, err
		}
	}
	if p.FlipTB {
		if img, err = MirrorHorizontalWith(img, p.Counters); err != nil {
			return nil, err
		}
	}
	if p.FlipLR {
		if img, err = MirrorVerticalWith(img, p.Counters); err != nil {
			return nil, err
		}
	}
	return img, nil
}

// Process decodes the source image, applies the configured operations and
// encodes the result into w.
// We are using the io package, since we can provide different input and output types,
// as long as they implement the io.Reader and io.Writer interface.
func (p *Processor) Process(r io.Reader, w io.Writer) error {
	threshold := p.Threshold
	if threshold == 0 {
		threshold = DefaultThreshold
	}
	src, _, err := Decode(r, threshold)
	if err != nil {
		return err
	}
	img, err := p.Apply(src)
	if err != nil {
		return err
	}
	format, err := p.outputFormat(w)
	if err != nil {
		return err
	}
	return Encode(w, img, format)
}

// outputFormat picks the encoding of the destination.
func (p *Processor) outputFormat(w io.Writer) (string, error) {
	if p.Format != "" {
		return p.Format, nil
	}
	if f, ok := w.(*os.File); ok && f != os.Stdout {
		format, err := FormatFromExt(f.Name())
		if err != nil {
			return "", errors.WithMessage(err, "destination")
		}
		return format, nil
	}
	return FormatPBM, nil
}
