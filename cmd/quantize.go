package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/garth74/jcc/imageio"
	"github.com/garth74/jcc/palette"
)

// quantizeCmd represents the quantize command
var quantizeCmd = &cobra.Command{
	Use:   "quantize <input> <output>",
	Short: "Replace every pixel with its nearest palette color",
	Long: `Quantize an image against the configured palette and write the
result as PNG. The lookup table is built and cached on first use.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		q, err := newQuantizer()
		if err != nil {
			log.Fatal(err)
		}
		img, err := imageio.Load(args[0])
		if err != nil {
			log.Fatal(err)
		}
		if err := imageio.SavePNG(args[1], q.Apply(img)); err != nil {
			log.Fatal(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(quantizeCmd)
}

// newQuantizer wires the configured palette to its (lazily built)
// cached lookup table.
func newQuantizer() (*palette.Quantizer, error) {
	p, err := resolvePalette()
	if err != nil {
		return nil, err
	}
	s, err := newStore()
	if err != nil {
		return nil, err
	}
	t, err := s.Table(p)
	if err != nil {
		return nil, err
	}
	return palette.NewQuantizer(p, t)
}
