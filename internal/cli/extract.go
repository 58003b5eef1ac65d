package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jwhitfield/prism/internal/colour"
	imageutil "github.com/jwhitfield/prism/internal/image"
	"github.com/jwhitfield/prism/internal/render"
)

// newExtractCmd builds the extract command.
func newExtractCmd() *cobra.Command {
	var (
		colours       int
		format        = formatText
		swatch        bool
		output        string
		seed          uint64
		maxIterations int
		tolerance     float64
		sampleCap     int
		resize        int
		preview       bool
	)

	cmd := &cobra.Command{
		Use:   "extract <image>",
		Short: "Extract dominant colours from an image",
		Long: `Extract the dominant colours from an image and report how much of the
image each colour covers.

The image is downscaled, a bounded sample of its pixels is taken, and the
sample is clustered with k-means. Output is sorted by coverage, most
dominant colour first.

Supported image formats: JPEG, PNG, GIF, WebP. HTTP(S) URLs are fetched
and cached locally.

Examples:
  # Extract 6 colours (default) from an image
  prism extract wallpaper.jpg

  # Extract 3 colours and output as JSON
  prism extract --colours 3 --format json wallpaper.png

  # Write an SVG swatch next to the text output
  prism extract --swatch -o palette.svg wallpaper.jpg

  # Show colour previews in the terminal
  prism extract --preview wallpaper.jpg

  # Reproduce a palette with an explicit seed
  prism extract --seed 7 wallpaper.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd)
			imagePath := args[0]

			if err := imageutil.ValidateImagePath(imagePath); err != nil {
				return fmt.Errorf("invalid image path: %w", err)
			}

			extractor, err := colour.NewKMeansExtractor(colour.Config{
				Colours:       colours,
				Seed:          seed,
				MaxIterations: maxIterations,
				Tolerance:     tolerance,
				SampleCap:     sampleCap,
				Logger:        logger,
			})
			if err != nil {
				return err
			}

			loader := imageutil.NewSmartLoader()
			img, err := loader.Load(imagePath)
			if err != nil {
				return fmt.Errorf("failed to load image: %w", err)
			}
			bounds := img.Bounds()
			logger.Debug("image loaded", "path", imagePath, "width", bounds.Dx(), "height", bounds.Dy())

			img = imageutil.Resize(img, resize)

			palette, err := extractor.Extract(cmd.Context(), img)
			if err != nil {
				return fmt.Errorf("failed to extract colours: %w", err)
			}

			out, err := formatPalette(palette, format, preview)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)

			if swatch {
				if err := render.WriteSwatch(output, palette); err != nil {
					return err
				}
				logger.Info("wrote swatch", "path", output)
			}

			return nil
		},
	}

	cmd.Flags().IntVarP(&colours, "colours", "c", 6, "number of colours to extract (1-256)")
	cmd.Flags().VarP(&format, "format", "f", "output format (text, json, hex, rgb)")
	cmd.Flags().BoolVarP(&swatch, "swatch", "s", false, "write an SVG swatch of the palette")
	cmd.Flags().StringVarP(&output, "output", "o", "swatch.svg", "SVG swatch output file")
	cmd.Flags().Uint64Var(&seed, "seed", colour.DefaultSeed, "seed for deterministic clustering")
	cmd.Flags().IntVar(&maxIterations, "max-iterations", colour.DefaultMaxIterations, "maximum clustering iterations")
	cmd.Flags().Float64Var(&tolerance, "tolerance", colour.DefaultTolerance, "centroid movement below which clustering stops")
	cmd.Flags().IntVar(&sampleCap, "sample-cap", colour.DefaultSampleCap, "maximum number of pixel samples to cluster")
	cmd.Flags().IntVar(&resize, "resize", imageutil.DefaultResizeDim, "downscale so the longest side is at most this many pixels (0 disables)")
	cmd.Flags().BoolVar(&preview, "preview", false, "show colour previews in the terminal")

	return cmd
}

// formatPalette formats the palette according to the selected format.
// Previews only apply when stdout is a terminal, so piped output stays clean.
func formatPalette(palette *colour.Palette, format formatValue, preview bool) (string, error) {
	if preview && format == formatText && isTerminal() {
		return render.Preview(palette), nil
	}

	switch format {
	case formatText:
		return render.Text(palette), nil
	case formatHex:
		return render.Hex(palette), nil
	case formatRGB:
		return render.RGBLines(palette), nil
	case formatJSON:
		return render.JSON(palette)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// isTerminal reports whether stdout is attached to a terminal.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
