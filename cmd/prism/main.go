// Prism - dominant colour extraction
//
// Prism analyses raster images and reports the small set of colours that
// dominate them, along with how much of the image each colour covers.
//
// Copyright (c) 2025 James Whitfield
// Licensed under the MIT License
package main

import (
	"os"

	"github.com/jwhitfield/prism/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
