package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/kovalyov-valentin/ad-updates-dashboard/internal/botkit"
	"github.com/kovalyov-valentin/ad-updates-dashboard/internal/botkit/markup"
	"github.com/kovalyov-valentin/ad-updates-dashboard/internal/model"
	"github.com/kovalyov-valentin/ad-updates-dashboard/internal/storage"
	"github.com/samber/lo"
)

type FeedLister interface {
	Feeds(ctx context.Context) ([]model.Feed, error)
}

type FeedStorage interface {
	Add(ctx context.Context, feed model.Feed) (string, error)
	Delete(ctx context.Context, name string) error
}

func ViewCmdListFeeds(lister FeedLister) botkit.ViewFunc {
	return func(ctx context.Context, api botkit.API, update tgbotapi.Update) error {
		feeds, err := lister.Feeds(ctx)
		if err != nil {
			return err
		}

		var (
			feedInfos = lo.Map(feeds, func(feed model.Feed, _ int) string {
				return formatFeed(feed)
			})
			msgText = fmt.Sprintf(
				"Tracked feeds \\(%d\\):\n\n%s",
				len(feeds),
				strings.Join(feedInfos, "\n\n"),
			)
		)

		reply := tgbotapi.NewMessage(update.Message.Chat.ID, msgText)
		reply.ParseMode = tgbotapi.ModeMarkdownV2
		reply.DisableWebPagePreview = true

		_, err = api.Send(reply)
		return err
	}
}

// ViewCmdAddFeed добавляет ленту: /addfeed {"name": "...", "url": "...", "type": "rss"}
func ViewCmdAddFeed(feeds FeedStorage) botkit.ViewFunc {
	return func(ctx context.Context, api botkit.API, update tgbotapi.Update) error {
		feed, err := botkit.ParseJSON[model.Feed](update.Message.CommandArguments())
		if err != nil {
			return reply(api, update, `Usage: /addfeed {"name": "Meta", "url": "https://example.com/rss.xml"}`)
		}

		name, err := feeds.Add(ctx, feed)
		if errors.Is(err, storage.ErrFeedExists) || errors.Is(err, storage.ErrInvalidFeed) {
			return reply(api, update, err.Error())
		}
		if err != nil {
			return err
		}

		return reply(api, update, fmt.Sprintf("Feed %q added.", name))
	}
}

func ViewCmdDeleteFeed(feeds FeedStorage) botkit.ViewFunc {
	return func(ctx context.Context, api botkit.API, update tgbotapi.Update) error {
		name := strings.TrimSpace(update.Message.CommandArguments())
		if name == "" {
			return reply(api, update, "Usage: /deletefeed <name>")
		}

		err := feeds.Delete(ctx, name)
		if errors.Is(err, storage.ErrFeedNotFound) {
			return reply(api, update, err.Error())
		}
		if err != nil {
			return err
		}

		return reply(api, update, fmt.Sprintf("Feed %q deleted.", name))
	}
}

func formatFeed(feed model.Feed) string {
	return fmt.Sprintf(
		"🌐 *%s*\nType: `%s`\nURL: %s",
		markup.EscapeForMarkdown(feed.Name),
		markup.EscapeForMarkdown(feed.Type),
		markup.EscapeForMarkdown(feed.URL),
	)
}

func reply(api botkit.API, update tgbotapi.Update, text string) error {
	_, err := api.Send(tgbotapi.NewMessage(update.Message.Chat.ID, text))
	return err
}
