package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/esimov/rlebw"
	"github.com/esimov/rlebw/utils"
	"golang.org/x/term"
)

// loadImage decodes an image from a file, a URL or stdin.
func loadImage(path string) (*rlebw.Image, error) {
	var r io.Reader

	switch {
	case path == pipeName:
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, errors.New("`-` should be used with a pipe for stdin")
		}
		r = os.Stdin
	case utils.IsValidUrl(path):
		f, err := utils.DownloadImage(path)
		if f != nil {
			defer os.Remove(f.Name())
			defer f.Close()
		}
		if err != nil {
			return nil, err
		}
		r = f
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("unable to open the source file: %w", err)
		}
		defer f.Close()
		r = f
	}

	img, _, err := rlebw.Decode(r, threshold)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// saveImage encodes img into a file or stdout. An empty format is derived
// from the file extension; stdout defaults to binary PBM.
func saveImage(path string, img *rlebw.Image, format string) (err error) {
	if path == pipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return errors.New("`-` should be used with a pipe for stdout")
		}
		if format == "" {
			format = rlebw.FormatPBM
		}
		return rlebw.Encode(os.Stdout, img, format)
	}

	if format == "" {
		if format, err = rlebw.FormatFromExt(path); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create the destination file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(path)
		}
	}()
	return rlebw.Encode(f, img, format)
}

// printSaved reports where the result went.
func printSaved(path string) {
	if path == pipeName {
		return
	}
	fmt.Fprintf(os.Stderr, "The image has been saved as: %s\n",
		utils.DecorateText(path, utils.SuccessMessage))
}
