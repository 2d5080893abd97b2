package main

import (
	"log"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/kovalyov-valentin/ad-updates-dashboard/internal/collector"
	"github.com/kovalyov-valentin/ad-updates-dashboard/internal/notifier"
	"github.com/kovalyov-valentin/ad-updates-dashboard/internal/storage"
	"github.com/kovalyov-valentin/ad-updates-dashboard/internal/summary"
	"github.com/spf13/cobra"
)

func newCollectCmd(a *app) *cobra.Command {
	var announce bool

	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Refresh the snapshot with new updates from the tracked feeds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := &http.Client{Timeout: a.cfg.FetchTimeout}

			c := collector.New(
				storage.NewUpdateFileStorage(a.cfg.DataFile),
				storage.NewFeedFileStorage(a.cfg.FeedsFile),
				summary.NewExtractor(client),
				summary.NewOpenAISummarizer(a.cfg.OpenAIKey, a.cfg.OpenAIModel),
				a.cfg.CollectWindow,
				a.cfg.CollectConcurrency,
				a.cfg.FilterKeywords,
				collector.WithHTTPClient(client),
			)

			fresh, err := c.Collect(cmd.Context())
			if err != nil {
				return err
			}

			if !announce || len(fresh) == 0 {
				return nil
			}

			if a.cfg.TelegramBotToken == "" || a.cfg.TelegramChannelID == 0 {
				log.Println("[WARN] telegram is not configured, skipping announcement")
				return nil
			}

			botAPI, err := tgbotapi.NewBotAPI(a.cfg.TelegramBotToken)
			if err != nil {
				return err
			}

			return notifier.New(botAPI, a.cfg.TelegramChannelID, a.cfg.AnnounceInterval).Announce(cmd.Context(), fresh)
		},
	}

	cmd.Flags().BoolVar(&announce, "announce", false, "post new updates to the telegram channel")

	return cmd
}
