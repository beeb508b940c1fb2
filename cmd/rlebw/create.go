package main

import (
	"fmt"

	"github.com/esimov/rlebw"
	"github.com/spf13/cobra"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a single color image",
	RunE:  runCreate,
}

var chessCmd = &cobra.Command{
	Use:   "chessboard",
	Short: "Create a chessboard pattern image",
	RunE:  runChessboard,
}

func init() {
	for _, c := range []*cobra.Command{createCmd, chessCmd} {
		c.Flags().IntP("width", "W", 0, "Image width")
		c.Flags().IntP("height", "H", 0, "Image height")
		c.Flags().StringP("out", "o", pipeName, "Destination")
		c.Flags().StringP("format", "f", "", "Output format (pbm, pbm-plain, rle, png, jpeg, gif, bmp)")
		c.MarkFlagRequired("width")
		c.MarkFlagRequired("height")
	}
	createCmd.Flags().String("color", "white", "Pixel color (white or black)")
	chessCmd.Flags().Int("edge", 8, "Edge of the chessboard squares")
	chessCmd.Flags().String("first", "black", "Color of the top left square")

	rootCmd.AddCommand(createCmd, chessCmd)
}

func parseColor(s string) (rlebw.Color, error) {
	switch s {
	case "white", "0":
		return rlebw.White, nil
	case "black", "1":
		return rlebw.Black, nil
	}
	return 0, fmt.Errorf("invalid color %q (expected white or black)", s)
}

func runCreate(cmd *cobra.Command, args []string) error {
	width, _ := cmd.Flags().GetInt("width")
	height, _ := cmd.Flags().GetInt("height")
	out, _ := cmd.Flags().GetString("out")
	format, _ := cmd.Flags().GetString("format")
	colorStr, _ := cmd.Flags().GetString("color")

	c, err := parseColor(colorStr)
	if err != nil {
		return err
	}
	img, err := rlebw.New(width, height, c)
	if err != nil {
		return err
	}
	if err := saveImage(out, img, format); err != nil {
		return err
	}
	printSaved(out)
	return nil
}

func runChessboard(cmd *cobra.Command, args []string) error {
	width, _ := cmd.Flags().GetInt("width")
	height, _ := cmd.Flags().GetInt("height")
	edge, _ := cmd.Flags().GetInt("edge")
	out, _ := cmd.Flags().GetString("out")
	format, _ := cmd.Flags().GetString("format")
	firstStr, _ := cmd.Flags().GetString("first")

	first, err := parseColor(firstStr)
	if err != nil {
		return err
	}
	img, err := rlebw.NewChessboard(width, height, edge, first)
	if err != nil {
		return err
	}
	if err := saveImage(out, img, format); err != nil {
		return err
	}
	printSaved(out)
	return nil
}
