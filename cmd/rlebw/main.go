package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/esimov/rlebw"
	"github.com/esimov/rlebw/utils"
	"github.com/spf13/cobra"
)

const helpBanner = `
█▀█ █   █▀▀ █▄▄ █ █ █
█▀▄ █▄▄ ██▄ █▄█ ▀▄▀▄▀

Run-length encoded black and white images.
    Version: %s
`

// pipeName is the file name that indicates stdin/stdout is being used.
const pipeName = "-"

// Version indicates the current build version.
var Version string

var (
	threshold uint8
	showStats bool
	workers   int

	// counters is shared by every command; it is printed when --stats is set.
	counters = rlebw.NewCounters()
)

var rootCmd = &cobra.Command{
	Use:   "rlebw",
	Short: "Process black and white images without decompressing them",
	Long:  fmt.Sprintf(helpBanner, Version),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if threshold == 0 {
			return errors.New("--threshold must be between 1 and 255: with 0 no pixel would turn black")
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if showStats {
			fmt.Fprintf(os.Stderr, "%s %s\n",
				utils.DecorateText("stats:", utils.StatusMessage), counters)
		}
	},
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.Uint8Var(&threshold, "threshold", rlebw.DefaultThreshold, "Luminance under which raster pixels become black")
	pf.BoolVar(&showStats, "stats", false, "Print row access counters")
	pf.IntVar(&workers, "conc", runtime.NumCPU(), "Number of files to process concurrently")
}

func main() {
	log.SetFlags(0)

	if err := rootCmd.Execute(); err != nil {
		log.Println(utils.DecorateText(err.Error(), utils.ErrorMessage))
		os.Exit(1)
	}
}
