package main

import (
	"fmt"

	"github.com/esimov/rlebw"
	"github.com/spf13/cobra"
)

var negCmd = &cobra.Command{
	Use:   "neg",
	Short: "Negate an image or every image of a directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcessor(cmd, &rlebw.Processor{Negate: true})
	},
}

var mirrorCmd = &cobra.Command{
	Use:   "mirror",
	Short: "Flip an image or every image of a directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		axis, _ := cmd.Flags().GetString("axis")
		p := &rlebw.Processor{}
		switch axis {
		case "tb", "horizontal":
			p.FlipTB = true
		case "lr", "vertical":
			p.FlipLR = true
		case "both":
			p.FlipTB, p.FlipLR = true, true
		default:
			return fmt.Errorf("invalid axis %q (expected tb, lr or both)", axis)
		}
		return runProcessor(cmd, p)
	},
}

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert an image or every image of a directory between formats",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcessor(cmd, &rlebw.Processor{})
	},
}

func init() {
	for _, c := range []*cobra.Command{negCmd, mirrorCmd, convertCmd} {
		c.Flags().StringP("in", "i", pipeName, "Source file, directory, URL or - for stdin")
		c.Flags().StringP("out", "o", pipeName, "Destination file, directory or - for stdout")
		c.Flags().StringP("format", "f", "", "Output format (pbm, pbm-plain, rle, png, jpeg, gif, bmp)")
	}
	mirrorCmd.Flags().String("axis", "tb", "Mirror axis: tb (top-bottom), lr (left-right) or both")

	rootCmd.AddCommand(negCmd, mirrorCmd, convertCmd)
}

// runProcessor completes the processor with the shared flags and executes it.
func runProcessor(cmd *cobra.Command, p *rlebw.Processor) error {
	in, _ := cmd.Flags().GetString("in")
	out, _ := cmd.Flags().GetString("out")
	format, _ := cmd.Flags().GetString("format")

	p.Format = format
	p.Threshold = threshold
	p.Counters = counters

	return p.Execute(&rlebw.Ops{
		Src:      in,
		Dst:      out,
		PipeName: pipeName,
		Workers:  workers,
	})
}
