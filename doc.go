/*
Package rlebw stores black and white images as run-length encoded rows and
processes them without ever decompressing them.

Each row is kept as the color of its first pixel followed by the lengths of
the maximal spans of equal pixels. Boolean operations (NEG, AND, OR, XOR) merge
the runs of both operands in lockstep, and the geometric operations (mirroring,
concatenation) only rearrange run lengths, so the cost of every operation
depends on the number of runs, not on the number of pixels.

The package provides a command line interface, supporting subcommands for every operation.
To check the supported commands type:

	$ rlebw --help

In case you wish to integrate the API in a self constructed environment here is a simple example:

	package main

	import (
		"fmt"
		"os"

		"github.com/esimov/rlebw"
	)

	func main() {
		board, _ := rlebw.NewChessboard(64, 64, 8, rlebw.Black)
		mask, _ := rlebw.New(64, 64, rlebw.Black)

		res, err := rlebw.Xor(board, mask)
		if err != nil {
			fmt.Printf("Error combining images: %s", err.Error())
			return
		}
		rlebw.EncodePBM(os.Stdout, res)
	}
*/
package rlebw
