package cmd

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/garth74/jcc/extract"
	"github.com/garth74/jcc/imageio"
	"github.com/garth74/jcc/palette"
)

var (
	extractColors int
	extractOut    string
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <image>",
	Short: "Derive a palette CSV from an image",
	Long: `Reduce an image to its most prevalent colors and emit them as a
palette CSV. Each color is grouped and named after its nearest match
in the built-in x11 palette, so the output loads anywhere a named
palette does.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		img, err := imageio.Load(args[0])
		if err != nil {
			log.Fatal(err)
		}
		colors, err := extract.Colors(img, extractColors)
		if err != nil {
			log.Fatal(err)
		}

		ref, err := palette.NewRegistry().Get("x11")
		if err != nil {
			log.Fatal(err)
		}
		name := "extracted"
		if extractOut != "" {
			name = strings.TrimSuffix(filepath.Base(extractOut), filepath.Ext(extractOut))
		}
		p, err := extract.BuildPalette(name, colors, ref)
		if err != nil {
			log.Fatal(err)
		}

		out := os.Stdout
		if extractOut != "" {
			f, err := os.Create(extractOut)
			if err != nil {
				log.Fatal(err)
			}
			defer f.Close()
			out = f
		}
		if err := p.WriteCSV(out); err != nil {
			log.Fatal(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().IntVar(&extractColors, "colors", 16, "number of colors to extract")
	extractCmd.Flags().StringVar(&extractOut, "out", "", "write the palette CSV here instead of stdout")
}
