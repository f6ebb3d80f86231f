package cmd

import (
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/flosch/pongo2"
	"github.com/spf13/cobra"

	"github.com/garth74/jcc/imageio"
	"github.com/garth74/jcc/palette"
)

var (
	histTemplate string
	histGroups   bool
)

// histogramCmd represents the histogram command
var histogramCmd = &cobra.Command{
	Use:   "histogram <input>",
	Short: "Report an image's color composition",
	Long: `Count how many pixels of an image fall on each palette color,
aggregate the counts by color group and compute the metric entropy of
the composition. With --template the report is rendered through a
pongo2 template instead of the default table; the template context
holds "palette", "rows", "groups" and "entropy".`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		q, err := newQuantizer()
		if err != nil {
			log.Fatal(err)
		}
		img, err := imageio.Load(args[0])
		if err != nil {
			log.Fatal(err)
		}

		p := q.Palette()
		rows, err := p.Histogram(q.ImageIndices(img))
		if err != nil {
			log.Fatal(err)
		}
		groups := palette.GroupHistogram(rows)
		entropy := palette.Entropy(groups)

		if histTemplate != "" {
			tpl, err := pongo2.FromFile(histTemplate)
			if err != nil {
				log.Fatal(err)
			}
			out, err := tpl.Execute(pongo2.Context{
				"palette": p.Name(),
				"rows":    rows,
				"groups":  groups,
				"entropy": entropy,
			})
			if err != nil {
				log.Fatal(err)
			}
			fmt.Print(out)
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
		if histGroups {
			for _, g := range groups {
				fmt.Fprintf(w, "%s\t%d\n", g.Group, g.Count)
			}
		} else {
			for _, r := range rows {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", r.Group, r.Name, r.Hex, r.Count)
			}
		}
		w.Flush()
		fmt.Printf("entropy\t%.6f\n", entropy)
	},
}

func init() {
	rootCmd.AddCommand(histogramCmd)

	histogramCmd.Flags().StringVar(&histTemplate, "template", "", "pongo2 template file for the report")
	histogramCmd.Flags().BoolVar(&histGroups, "groups", false, "aggregate counts by color group")
}
