// Command chunkq re-frames a byte stream into fixed-size frames of bytes or
// runes, one frame per separator.
//
//	chunkq --mode text --frame 72 README.md
//	producer | chunkq --frame 512 --separator '' > framed.bin
package main

import (
	"fmt"
	"os"
)

func main() {
	app := newApp(os.Stdin, os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "chunkq:", err)
		os.Exit(1)
	}
}
