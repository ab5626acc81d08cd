package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "cinedeck",
		Short:         "Browse a movie catalog, keep favorites and search history",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().String("config-dir", "", "directory holding the local database (default ~/.config/cinedeck)")
	viper.BindPFlag("LOG_LEVEL", root.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("CONFIG_DIR", root.PersistentFlags().Lookup("config-dir"))

	root.AddCommand(
		newServeCmd(),
		newSearchCmd(),
		newMovieCmd(),
		newGenresCmd(),
		newFavoritesCmd(),
		newHistoryCmd(),
		newLoginCmd(),
		newLogoutCmd(),
		newThemeCmd(),
	)

	return root
}
