package rlebw

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/esimov/rlebw/utils"
	"github.com/samber/lo"
	"golang.org/x/term"
)

// maxWorkers sets the maximum number of concurrently running workers.
const maxWorkers = 20

// validExtensions lists the file types picked up when walking a directory.
var validExtensions = []string{".pbm", ".rle", ".png", ".jpg", ".jpeg", ".gif", ".bmp"}

// Ops describes where the images processed by Execute come from and go to.
type Ops struct {
	Src, Dst, PipeName string
	Workers            int
}

// result holds the relevant information about the processing of one image.
type result struct {
	path string
	err  error
}

// Execute runs the processor over the source. The source may be a regular
// file, a pipe, a URL or a directory; directories are processed recursively
// by a pool of workers and the results are written under Dst.
func (p *Processor) Execute(op *Ops) error {
	var (
		fs  os.FileInfo
		src = op.Src
		err error
	)
	if p.Spinner == nil {
		p.Spinner = utils.NewSpinner(fmt.Sprintf("%s %s",
			utils.DecorateText("▚ RLEBW", utils.StatusMessage),
			utils.DecorateText("⇢ processing image...", utils.DefaultMessage),
		), time.Millisecond*80, true)
	}

	// Check if source path is a local image or URL.
	if utils.IsValidUrl(src) {
		tmp, err := utils.DownloadImage(src)
		if tmp != nil {
			defer os.Remove(tmp.Name())
			defer tmp.Close()
		}
		if err != nil {
			return fmt.Errorf("failed to load the source image: %w", err)
		}
		src = tmp.Name()
	}

	// Check if the source is a pipe name or a regular file.
	if src == op.PipeName {
		fs, err = os.Stdin.Stat()
	} else {
		fs, err = os.Stat(src)
	}
	if err != nil {
		return fmt.Errorf("failed to load the source image: %w", err)
	}

	now := time.Now()

	switch mode := fs.Mode(); {
	case mode.IsDir():
		if _, err := os.Stat(op.Dst); err != nil {
			if err := os.MkdirAll(op.Dst, 0755); err != nil {
				return fmt.Errorf("unable to create the destination directory: %w", err)
			}
		}

		// Limit the concurrently running workers to maxWorkers.
		if op.Workers <= 0 || op.Workers > maxWorkers {
			op.Workers = runtime.NumCPU()
		}
		// Several images are processed at once; a single progress line would be garbled.
		p.Spinner.Disable()

		// Process recursively the image files from the specified directory concurrently.
		ch := make(chan result)
		done := make(chan interface{})
		defer close(done)

		paths, errc := walkDir(done, src, validExtensions)

		var wg sync.WaitGroup
		wg.Add(op.Workers)
		for i := 0; i < op.Workers; i++ {
			go func() {
				defer wg.Done()
				op.consumer(p, src, ch, done, paths)
			}()
		}

		// Close the channel after the values are consumed.
		go func() {
			defer close(ch)
			wg.Wait()
		}()

		// Consume the channel values.
		var failed int
		for res := range ch {
			if res.err != nil {
				failed++
			}
			op.printOpStatus(res.path, res.err)
		}
		if err := <-errc; err != nil {
			return err
		}
		if failed > 0 {
			return fmt.Errorf("%d image(s) could not be processed", failed)
		}

	case mode.IsRegular() || mode&os.ModeNamedPipe != 0: // check for regular files or pipe names
		if op.Dst != op.PipeName && p.Format == "" {
			if _, err := FormatFromExt(op.Dst); err != nil {
				return err
			}
		}
		err = op.process(p, src, op.Dst)
		op.printOpStatus(op.Dst, err)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported source: %s", op.Src)
	}

	log.Printf("\nExecution time: %s\n", utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))
	return nil
}

// consumer reads the path names from the paths channel and calls the processor
// against each source image. Destination paths mirror the layout under root.
func (op *Ops) consumer(
	p *Processor,
	root string,
	res chan<- result,
	done <-chan interface{},
	paths <-chan string,
) {
	for src := range paths {
		rel, err := filepath.Rel(root, src)
		if err != nil {
			rel = filepath.Base(src)
		}
		dst := filepath.Join(op.Dst, rel)
		if p.Format != "" {
			dst = strings.TrimSuffix(dst, filepath.Ext(dst)) + "." + extFor(p.Format)
		}
		if err == nil {
			err = os.MkdirAll(filepath.Dir(dst), 0755)
		}
		if err == nil {
			err = op.process(p, src, dst)
		}

		select {
		case <-done:
			return
		case res <- result{
			path: src,
			err:  err,
		}:
		}
	}
}

// process opens the source and destination and runs the processor on them.
func (op *Ops) process(p *Processor, in, out string) error {
	src, dst, err := op.pathToFile(in, out)
	if err != nil {
		return err
	}
	defer func() {
		if f, ok := src.(*os.File); ok && f != os.Stdin {
			if err := f.Close(); err != nil {
				log.Printf("could not close the opened file: %v", err)
			}
		}
	}()

	p.Spinner.Start()
	err = p.Process(src, dst)

	if f, ok := dst.(*os.File); ok && f != os.Stdout {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
		if err != nil {
			// remove the generated image file in case of an error
			os.Remove(f.Name())
		}
	}

	msg := fmt.Sprintf("%s %s %s\n",
		utils.DecorateText("▚ RLEBW", utils.StatusMessage),
		utils.DecorateText("⇢", utils.DefaultMessage),
		utils.DecorateText("the image has been processed successfully ✔", utils.SuccessMessage),
	)
	if err != nil {
		msg = fmt.Sprintf("%s %s %s\n",
			utils.DecorateText("▚ RLEBW", utils.StatusMessage),
			utils.DecorateText("processing image failed...", utils.DefaultMessage),
			utils.DecorateText("✘", utils.ErrorMessage),
		)
	}
	p.Spinner.StopWith(msg)

	return err
}

// pathToFile converts the source and destination paths to readable and writable files.
func (op *Ops) pathToFile(in, out string) (io.Reader, io.Writer, error) {
	var (
		src io.Reader
		dst io.Writer
		err error
	)
	// Check if the source is a pipe name or a regular file.
	if in == op.PipeName {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, nil, errors.New("`-` should be used with a pipe for stdin")
		}
		src = os.Stdin
	} else {
		src, err = os.Open(in)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to open the source file: %v", err)
		}
	}

	// Check if the destination is a pipe name or a regular file.
	if out == op.PipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			if f, ok := src.(*os.File); ok && f != os.Stdin {
				f.Close()
			}
			return nil, nil, errors.New("`-` should be used with a pipe for stdout")
		}
		dst = os.Stdout
	} else {
		dst, err = os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			if f, ok := src.(*os.File); ok && f != os.Stdin {
				f.Close()
			}
			return nil, nil, fmt.Errorf("unable to create the destination file: %v", err)
		}
	}
	return src, dst, nil
}

// printOpStatus displays the relevant information about the image processing.
func (op *Ops) printOpStatus(fname string, err error) {
	if err != nil {
		log.Printf("%s%s",
			utils.DecorateText("\nError processing the image: ", utils.ErrorMessage),
			utils.DecorateText(fmt.Sprintf("%s\n\tReason: %v\n", fname, err), utils.DefaultMessage),
		)
		return
	}
	if fname != op.PipeName {
		log.Printf("\nThe image has been saved as: %s %s\n",
			utils.DecorateText(filepath.Base(fname), utils.SuccessMessage),
			utils.DefaultColor,
		)
	}
}

// walkDir starts a new goroutine to walk the specified directory tree
// in recursive manner and sends the path of each regular file to a new channel.
// It finishes in case the done channel is getting closed.
func walkDir(
	done <-chan interface{},
	src string,
	srcExts []string,
) (<-chan string, <-chan error) {
	pathChan := make(chan string)
	errChan := make(chan error, 1)

	go func() {
		// Close the paths channel after Walk returns.
		defer close(pathChan)

		errChan <- filepath.Walk(src, func(path string, f os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !f.Mode().IsRegular() {
				return nil
			}
			if isValidExtension(filepath.Ext(f.Name()), srcExts) {
				select {
				case <-done:
					return errors.New("directory walk cancelled")
				case pathChan <- path:
				}
			}
			return nil
		})
	}()
	return pathChan, errChan
}

// isValidExtension checks for the supported extensions.
func isValidExtension(ext string, extensions []string) bool {
	return lo.Contains(extensions, strings.ToLower(ext))
}

// extFor returns the file extension used for a format.
func extFor(format string) string {
	switch format {
	case FormatPlainPBM:
		return "pbm"
	case FormatJPEG:
		return "jpg"
	default:
		return format
	}
}
