package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/kovalyov-valentin/ad-updates-dashboard/internal/botkit"
)

const startText = `Ad platform updates bot.

/updates - latest updates from all sources
/updates <source> - latest updates from one source
/sources - sources present on the dashboard
/feeds - tracked feeds`

func ViewCmdStart() botkit.ViewFunc {
	return func(_ context.Context, api botkit.API, update tgbotapi.Update) error {
		_, err := api.Send(tgbotapi.NewMessage(update.Message.Chat.ID, startText))
		return err
	}
}
