package notifier

import (
	"context"
	"fmt"
	"log"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/kovalyov-valentin/ad-updates-dashboard/internal/botkit/markup"
	"github.com/kovalyov-valentin/ad-updates-dashboard/internal/dashboard"
	"github.com/kovalyov-valentin/ad-updates-dashboard/internal/model"
	"golang.org/x/time/rate"
)

// Sender - часть BotAPI, которая нужна для отправки сообщений
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Notifier публикует свежие обновления в телеграм канал
type Notifier struct {
	bot       Sender
	channelID int64
	// Телеграм режет ботов, которые пишут в канал слишком часто
	limiter *rate.Limiter
}

func New(bot Sender, channelID int64, sendInterval time.Duration) *Notifier {
	limit := rate.Inf
	if sendInterval > 0 {
		limit = rate.Every(sendInterval)
	}

	return &Notifier{
		bot:       bot,
		channelID: channelID,
		limiter:   rate.NewLimiter(limit, 1),
	}
}

// Announce отправляет обновления по одному. Снапшот хранит новые сверху,
// а в канале хронология идет снизу вверх, поэтому шлем с конца.
func (n *Notifier) Announce(ctx context.Context, updates []model.Update) error {
	for i := len(updates) - 1; i >= 0; i-- {
		if err := n.limiter.Wait(ctx); err != nil {
			return err
		}

		if err := n.sendUpdate(updates[i]); err != nil {
			return fmt.Errorf("announce update %s: %w", updates[i].ID, err)
		}

		log.Printf("[INFO] announced update %s (%s)", updates[i].ID, updates[i].Title)
	}

	return nil
}

func (n *Notifier) sendUpdate(update model.Update) error {
	msg := tgbotapi.NewMessage(n.channelID, FormatUpdate(update))
	msg.ParseMode = tgbotapi.ModeMarkdownV2

	_, err := n.bot.Send(msg)
	return err
}

// FormatUpdate - карточка обновления в MarkdownV2:
// источник и дата, жирный заголовок, summary и ссылка
func FormatUpdate(update model.Update) string {
	const msgFormat = "%s · %s\n*%s*\n\n%s\n\n%s"

	return fmt.Sprintf(
		msgFormat,
		markup.EscapeForMarkdown(update.Source),
		markup.EscapeForMarkdown(dashboard.FormatDate(update.Date)),
		markup.EscapeForMarkdown(update.Title),
		markup.EscapeForMarkdown(dashboard.SummaryOrPlaceholder(update)),
		markup.EscapeForMarkdown(update.URL),
	)
}
