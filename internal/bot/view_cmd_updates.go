package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/kovalyov-valentin/ad-updates-dashboard/internal/botkit"
	"github.com/kovalyov-valentin/ad-updates-dashboard/internal/botkit/markup"
	"github.com/kovalyov-valentin/ad-updates-dashboard/internal/dashboard"
	"github.com/kovalyov-valentin/ad-updates-dashboard/internal/model"
	"github.com/samber/lo"
)

type UpdateLister interface {
	Updates(ctx context.Context) ([]model.Update, error)
}

// Сколько обновлений помещаем в одно сообщение
const updatesPerMessage = 10

// ViewCmdUpdates - та же выборка, что и на дашборде, только в чате.
// Без аргумента показываем все источники, с аргументом - один.
func ViewCmdUpdates(lister UpdateLister) botkit.ViewFunc {
	return func(ctx context.Context, api botkit.API, update tgbotapi.Update) error {
		updates, err := lister.Updates(ctx)
		if err != nil {
			return err
		}

		view := dashboard.NewView(dashboard.Compose(updates))

		if source := strings.TrimSpace(update.Message.CommandArguments()); source != "" {
			view.Select(dashboard.BySource(source))
		}

		reply := tgbotapi.NewMessage(update.Message.Chat.ID, formatUpdates(view))
		reply.ParseMode = tgbotapi.ModeMarkdownV2
		reply.DisableWebPagePreview = true

		_, err = api.Send(reply)
		return err
	}
}

func formatUpdates(view *dashboard.View) string {
	visible := view.Visible()
	if len(visible) == 0 {
		return markup.EscapeForMarkdown(dashboard.EmptyMessage)
	}

	shown := lo.Subset(visible, 0, updatesPerMessage)
	lines := lo.Map(shown, func(u model.Update, _ int) string {
		return fmt.Sprintf(
			"%s · %s\n%s",
			markup.EscapeForMarkdown(dashboard.FormatDate(u.Date)),
			markup.EscapeForMarkdown(u.Source),
			markup.Link(u.Title, u.URL),
		)
	})

	header := fmt.Sprintf("*%s* \\(%d of %d\\)",
		markup.EscapeForMarkdown(view.Selected().Label()),
		len(shown),
		len(visible),
	)

	return header + "\n\n" + strings.Join(lines, "\n\n")
}
