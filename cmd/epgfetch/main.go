package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jgivc/epgfetch/internal/app"
)

var (
	cfgPath   string
	countries []string
	all       bool
)

var rootCmd = &cobra.Command{
	Use:   "epgfetch",
	Short: "Per-country EPG downloader and indexer",
	Long: `epgfetch acquires per-country XMLTV guide files from remote source
trees, resolving the naming differences between a country's display name
and the folder and file names the sources actually use, and builds a
metadata index over the downloaded guides.`,
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Acquire guide files for the given countries, then rebuild the index",
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.New(cfgPath).Fetch(cmd.Context(), countries, all)
	},
}

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Rebuild index.json from the guide files on disk",
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.New(cfgPath).Index(cmd.Context())
	},
}

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Concatenate all guide files into one gzipped stream",
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.New(cfgPath).Merge(cmd.Context())
	},
}

var discoverCmd = &cobra.Command{
	Use:   "discover [source]",
	Short: "List the country folders a source currently publishes",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source := ""
		if len(args) > 0 {
			source = args[0]
		}

		return app.New(cfgPath).Discover(cmd.Context(), source)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yml", "Path to config file")

	fetchCmd.Flags().StringSliceVar(&countries, "countries", nil, `Country display names, e.g. --countries "United Kingdom",Brazil`)
	fetchCmd.Flags().BoolVar(&all, "all", false, "Fetch all configured countries")

	rootCmd.AddCommand(fetchCmd, indexCmd, mergeCmd, discoverCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
