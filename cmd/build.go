package cmd

import (
	"log"
	"time"

	"github.com/spf13/cobra"
)

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build and cache the lookup table for a palette",
	Long: `Build the dense nearest-color lookup table for the configured
palette and cache it on disk. Later quantize and histogram runs reuse
the cached table; running build explicitly just front-loads the cost.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		p, err := resolvePalette()
		if err != nil {
			log.Fatal(err)
		}
		s, err := newStore()
		if err != nil {
			log.Fatal(err)
		}

		start := time.Now()
		if _, err := s.Table(p); err != nil {
			log.Fatal(err)
		}
		log.Printf("lookup table for %q (%d colors) ready in %s", p.Name(), p.Len(), time.Since(start).Round(time.Millisecond))
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
