package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/garth74/jcc/palette"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "jcc",
	Short: "Classify image colors against named palettes",
	Long: `jcc reduces images to named color palettes using the CIEDE2000
perceptual metric and reports on their color composition.

Nearest-palette lookups are served from a precomputed table covering
all 16.7M RGB values; tables are built once per palette and cached.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.jcc.yaml)")
	rootCmd.PersistentFlags().StringP("palette", "p", "", "palette name or path to a palette CSV")
	rootCmd.PersistentFlags().String("cache-dir", "", "directory for cached lookup tables")
	rootCmd.PersistentFlags().Int("workers", 0, "goroutines used for table builds (default one per CPU)")

	viper.BindPFlag("palette", rootCmd.PersistentFlags().Lookup("palette"))
	viper.BindPFlag("cache_dir", rootCmd.PersistentFlags().Lookup("cache-dir"))
	viper.BindPFlag("workers", rootCmd.PersistentFlags().Lookup("workers"))
	viper.SetDefault("palette", "x11")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".jcc")
	}

	viper.SetEnvPrefix("jcc")
	viper.AutomaticEnv()
	viper.ReadInConfig()
}

// resolvePalette loads the configured palette: a CSV path if the value
// looks like one, otherwise a registry name.
func resolvePalette() (*palette.Palette, error) {
	name := viper.GetString("palette")
	if strings.HasSuffix(name, ".csv") {
		return palette.Load(name)
	}
	return palette.NewRegistry().Get(name)
}

func newStore() (*palette.Store, error) {
	dir := viper.GetString("cache_dir")
	if dir == "" {
		home, err := homedir.Dir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, ".cache", "jcc")
	}
	return palette.NewStore(dir, viper.GetInt("workers")), nil
}
