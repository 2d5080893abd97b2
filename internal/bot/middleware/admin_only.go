package middleware

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/kovalyov-valentin/ad-updates-dashboard/internal/botkit"
)

const accessDeniedText = "You are not allowed to run this command."

// AdminOnly пропускает команду дальше, только если ее прислал администратор канала
func AdminOnly(channelID int64, next botkit.ViewFunc) botkit.ViewFunc {
	return func(ctx context.Context, api botkit.API, update tgbotapi.Update) error {
		admins, err := api.GetChatAdministrators(
			tgbotapi.ChatAdministratorsConfig{
				ChatConfig: tgbotapi.ChatConfig{
					ChatID: channelID,
				},
			},
		)
		if err != nil {
			return err
		}

		for _, admin := range admins {
			if admin.User != nil && update.Message.From != nil && admin.User.ID == update.Message.From.ID {
				return next(ctx, api, update)
			}
		}

		_, err = api.Send(tgbotapi.NewMessage(update.Message.Chat.ID, accessDeniedText))
		return err
	}
}
