package main

import (
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newCheckCmd(fsys afero.Fs, configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the configuration and the extensions",
		Long:  "Load the configuration, run the extension preflight and build the API description and the collections once",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), fsys, *configPath, io.Discard)
			if err != nil {
				return err
			}
			defer a.close(cmd.Context())

			api, err := a.handler.API()
			if err != nil {
				return err
			}
			infos, err := a.catalog.Collections(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "extensions: %v\n", a.registry.Names())
			fmt.Fprintf(out, "api paths: %d\n", api.Paths.Len())
			fmt.Fprintf(out, "collections: %d\n", len(infos))
			return nil
		},
	}
}
