package main

import (
	"fmt"

	"github.com/kovalyov-valentin/ad-updates-dashboard/internal/dashboard"
	"github.com/kovalyov-valentin/ad-updates-dashboard/internal/render"
	"github.com/kovalyov-valentin/ad-updates-dashboard/internal/storage"
	"github.com/spf13/cobra"
)

func newBuildCmd(a *app) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Render the static dashboard from the snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if outDir == "" {
				outDir = a.cfg.OutputDir
			}

			updates, err := storage.NewUpdateFileStorage(a.cfg.DataFile).Updates(cmd.Context())
			if err != nil {
				return err
			}

			renderer, err := a.renderer()
			if err != nil {
				return err
			}

			written, err := render.NewSite(renderer, a.cfg.BasePath).Build(cmd.Context(), dashboard.Compose(updates), outDir)
			if err != nil {
				return err
			}

			for _, file := range written {
				fmt.Fprintln(cmd.OutOrStdout(), file)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (default from config)")

	return cmd
}
