package main

import (
	"github.com/kovalyov-valentin/ad-updates-dashboard/internal/config"
	"github.com/kovalyov-valentin/ad-updates-dashboard/internal/render"
	"github.com/spf13/cobra"
)

// Общее состояние команд: конфиг загружается один раз перед запуском подкоманды
type app struct {
	configFiles []string
	cfg         config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "dashboard",
		Short: "Ad platform updates dashboard",
		Long: `dashboard renders the ad platform updates snapshot as a filterable page.

  dashboard build     # write the static site
  dashboard serve     # preview the dashboard locally
  dashboard collect   # refresh the snapshot from the tracked feeds
  dashboard bot       # answer /updates and /sources in Telegram`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configFiles...)
			if err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
	}

	root.PersistentFlags().StringSliceVar(&a.configFiles, "config", config.DefaultFiles, "config files (hcl), later ones override earlier")

	root.AddCommand(
		newBuildCmd(a),
		newServeCmd(a),
		newCollectCmd(a),
		newBotCmd(a),
	)

	return root
}

func (a *app) renderer() (*render.Renderer, error) {
	return render.NewRenderer(render.Meta{
		Title:       a.cfg.SiteTitle,
		Tagline:     a.cfg.SiteTagline,
		Description: a.cfg.SiteDescription,
	})
}
