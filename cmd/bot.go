package main

import (
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/kovalyov-valentin/ad-updates-dashboard/internal/bot"
	"github.com/kovalyov-valentin/ad-updates-dashboard/internal/bot/middleware"
	"github.com/kovalyov-valentin/ad-updates-dashboard/internal/botkit"
	"github.com/kovalyov-valentin/ad-updates-dashboard/internal/storage"
	"github.com/spf13/cobra"
)

func newBotCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Run the telegram bot over the snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.TelegramBotToken == "" {
				return errors.New("telegram_bot_token is required")
			}

			botAPI, err := tgbotapi.NewBotAPI(a.cfg.TelegramBotToken)
			if err != nil {
				return err
			}

			var (
				updates = storage.NewUpdateFileStorage(a.cfg.DataFile)
				feeds   = storage.NewFeedFileStorage(a.cfg.FeedsFile)
				channel = a.cfg.TelegramChannelID
			)

			// Управлять лентами могут только администраторы канала
			newsBot := botkit.New(botAPI)
			newsBot.RegisterCmdView("start", bot.ViewCmdStart())
			newsBot.RegisterCmdView("updates", bot.ViewCmdUpdates(updates))
			newsBot.RegisterCmdView("sources", bot.ViewCmdSources(updates))
			newsBot.RegisterCmdView("feeds", bot.ViewCmdListFeeds(feeds))
			newsBot.RegisterCmdView("addfeed", middleware.AdminOnly(channel, bot.ViewCmdAddFeed(feeds)))
			newsBot.RegisterCmdView("deletefeed", middleware.AdminOnly(channel, bot.ViewCmdDeleteFeed(feeds)))

			return newsBot.Run(cmd.Context())
		},
	}
}
