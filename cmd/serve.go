package main

import (
	"github.com/kovalyov-valentin/ad-updates-dashboard/internal/server"
	"github.com/kovalyov-valentin/ad-updates-dashboard/internal/storage"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		addr  string
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a live preview of the dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.cfg.ListenAddr
			}

			renderer, err := a.renderer()
			if err != nil {
				return err
			}

			store := storage.NewUpdateFileStorage(a.cfg.DataFile)
			srv := server.New(store, renderer)

			if err := srv.Reload(cmd.Context()); err != nil {
				return err
			}

			g, ctx := errgroup.WithContext(cmd.Context())

			g.Go(func() error {
				return srv.Run(ctx, addr)
			})

			if watch {
				g.Go(func() error {
					return srv.Watch(ctx, store.Path())
				})
			}

			return g.Wait()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().BoolVar(&watch, "watch", true, "reload when the snapshot file changes")

	return cmd
}
