package main

import (
	"fmt"

	"github.com/esimov/rlebw"
	"github.com/spf13/cobra"
)

func newBooleanCmd(op rlebw.Op) *cobra.Command {
	return &cobra.Command{
		Use:   fmt.Sprintf("%s <image1> <image2>", op),
		Short: fmt.Sprintf("Pixel-wise %s of two images of the same size", op),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBinary(cmd, args, func(a, b *rlebw.Image) (*rlebw.Image, error) {
				return rlebw.CombineWith(op, a, b, counters)
			})
		},
	}
}

var concatCmd = &cobra.Command{
	Use:   "concat <image1> <image2>",
	Short: "Place the second image below or to the right of the first one",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		side, _ := cmd.Flags().GetString("side")
		switch side {
		case "below":
			return runBinary(cmd, args, func(a, b *rlebw.Image) (*rlebw.Image, error) {
				return rlebw.ConcatBelowWith(a, b, counters)
			})
		case "right":
			return runBinary(cmd, args, func(a, b *rlebw.Image) (*rlebw.Image, error) {
				return rlebw.ConcatRightWith(a, b, counters)
			})
		}
		return fmt.Errorf("invalid side %q (expected below or right)", side)
	},
}

func init() {
	cmds := []*cobra.Command{
		newBooleanCmd(rlebw.OpAnd),
		newBooleanCmd(rlebw.OpOr),
		newBooleanCmd(rlebw.OpXor),
		concatCmd,
	}
	for _, c := range cmds {
		c.Flags().StringP("out", "o", pipeName, "Destination file or - for stdout")
		c.Flags().StringP("format", "f", "", "Output format (pbm, pbm-plain, rle, png, jpeg, gif, bmp)")
	}
	concatCmd.Flags().String("side", "right", "Where the second image goes: below or right")

	rootCmd.AddCommand(cmds...)
}

// runBinary loads both operands, applies fn and saves the result.
func runBinary(cmd *cobra.Command, args []string, fn func(a, b *rlebw.Image) (*rlebw.Image, error)) error {
	out, _ := cmd.Flags().GetString("out")
	format, _ := cmd.Flags().GetString("format")

	a, err := loadImage(args[0])
	if err != nil {
		return err
	}
	defer a.Destroy()
	b, err := loadImage(args[1])
	if err != nil {
		return err
	}
	defer b.Destroy()

	res, err := fn(a, b)
	if err != nil {
		return err
	}
	if err := saveImage(out, res, format); err != nil {
		return err
	}
	printSaved(out)
	return nil
}
