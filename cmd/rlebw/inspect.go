package main

import (
	"fmt"
	"os"

	"github.com/esimov/rlebw"
	"github.com/esimov/rlebw/utils"
	"github.com/spf13/cobra"
)

var equalCmd = &cobra.Command{
	Use:   "equal <image1> <image2>",
	Short: "Report whether two images hold the same pixels",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadImage(args[0])
		if err != nil {
			return err
		}
		b, err := loadImage(args[1])
		if err != nil {
			return err
		}
		if !rlebw.Equal(a, b) {
			return fmt.Errorf("%s and %s differ", args[0], args[1])
		}
		fmt.Println(utils.DecorateText("equal", utils.SuccessMessage))
		return nil
	},
}

var printCmd = &cobra.Command{
	Use:   "print <image>",
	Short: "Print an image as raw pixels or as its run-length encoding",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetBool("raw")

		img, err := loadImage(args[0])
		if err != nil {
			return err
		}
		if raw {
			return img.WriteRaw(os.Stdout)
		}
		return img.WriteRLE(os.Stdout)
	},
}

func init() {
	printCmd.Flags().Bool("raw", false, "Print pixels instead of runs")
	rootCmd.AddCommand(equalCmd, printCmd)
}
