package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/kovalyov-valentin/ad-updates-dashboard/internal/botkit"
	"github.com/kovalyov-valentin/ad-updates-dashboard/internal/botkit/markup"
	"github.com/kovalyov-valentin/ad-updates-dashboard/internal/dashboard"
	"github.com/samber/lo"
)

// ViewCmdSources перечисляет источники, по которым можно фильтровать /updates
func ViewCmdSources(lister UpdateLister) botkit.ViewFunc {
	return func(ctx context.Context, api botkit.API, update tgbotapi.Update) error {
		updates, err := lister.Updates(ctx)
		if err != nil {
			return err
		}

		page := dashboard.Compose(updates)
		counts := make(map[string]int, len(page.Sources))
		for _, u := range page.Updates {
			counts[u.Source]++
		}

		lines := lo.Map(page.Sources, func(source string, _ int) string {
			return fmt.Sprintf("• %s \\(%d\\)", markup.EscapeForMarkdown(source), counts[source])
		})

		msgText := fmt.Sprintf("Sources \\(%d\\):\n\n%s", len(page.Sources), strings.Join(lines, "\n"))

		reply := tgbotapi.NewMessage(update.Message.Chat.ID, msgText)
		reply.ParseMode = tgbotapi.ModeMarkdownV2

		_, err = api.Send(reply)
		return err
	}
}
