package main

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "dev"

func main() {
	if err := newRootCmd(afero.NewOsFs()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(fsys afero.Fs) *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "geoweaver",
		Short: "Hypermedia front end for geospatial collections",
		Long: `geoweaver serves the landing page, API description, conformance declaration
and collection documents of a geospatial service, composed from the
registered extensions.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "geoweaver.yml", "Path to the configuration file")

	rootCmd.AddCommand(newServeCmd(fsys, &configPath))
	rootCmd.AddCommand(newCheckCmd(fsys, &configPath))
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "geoweaver %s\n", Version)
		},
	})
	return rootCmd
}
