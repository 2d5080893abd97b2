package collector

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/kovalyov-valentin/ad-updates-dashboard/internal/model"
	"github.com/kovalyov-valentin/ad-updates-dashboard/internal/source"
	"github.com/kovalyov-valentin/ad-updates-dashboard/internal/summary"
	"github.com/samber/lo"
	"github.com/tomakado/containers/set"
	"golang.org/x/sync/errgroup"
)

type UpdateStorage interface {
	Updates(ctx context.Context) ([]model.Update, error)
	Save(ctx context.Context, updates []model.Update) error
}

type FeedProvider interface {
	Feeds(ctx context.Context) ([]model.Feed, error)
}

type Extractor interface {
	Extract(ctx context.Context, item model.Item) (string, error)
}

type Summarizer interface {
	Summarize(ctx context.Context, title string, text string) (summary.Verdict, error)
}

// Collector обновляет снапшот: опрашивает ленты, отбирает свежие статьи,
// прогоняет их через модель и дописывает новые обновления в начало снапшота.
type Collector struct {
	updates    UpdateStorage
	feeds      FeedProvider
	extractor  Extractor
	summarizer Summarizer

	// Статьи старше окна считаются уже неактуальными
	window         time.Duration
	filterKeywords []string
	concurrency    int

	newSource func(model.Feed) (source.Source, error)
	now       func() time.Time
}

type Option func(*Collector)

// WithHTTPClient задает клиент, которым ходим в источники
func WithHTTPClient(client *http.Client) Option {
	return func(c *Collector) {
		c.newSource = func(feed model.Feed) (source.Source, error) {
			return source.FromFeed(feed, client)
		}
	}
}

func WithSourceFactory(factory func(model.Feed) (source.Source, error)) Option {
	return func(c *Collector) {
		c.newSource = factory
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Collector) {
		c.now = now
	}
}

func New(
	updates UpdateStorage,
	feeds FeedProvider,
	extractor Extractor,
	summarizer Summarizer,
	window time.Duration,
	concurrency int,
	filterKeywords []string,
	opts ...Option,
) *Collector {
	if concurrency < 1 {
		concurrency = 1
	}

	c := &Collector{
		updates:        updates,
		feeds:          feeds,
		extractor:      extractor,
		summarizer:     summarizer,
		window:         window,
		concurrency:    concurrency,
		filterKeywords: lo.Map(filterKeywords, func(k string, _ int) string { return strings.ToLower(k) }),
		now:            time.Now,
	}
	WithHTTPClient(http.DefaultClient)(c)

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Collect делает один проход и возвращает только что добавленные обновления
// в том порядке, в каком они легли в снапшот.
func (c *Collector) Collect(ctx context.Context) ([]model.Update, error) {
	existing, err := c.updates.Updates(ctx)
	if err != nil {
		return nil, err
	}

	feeds, err := c.feeds.Feeds(ctx)
	if err != nil {
		return nil, err
	}

	items, err := c.fetchAll(ctx, feeds)
	if err != nil {
		return nil, err
	}

	knownURLs := set.New(lo.Map(existing, func(u model.Update, _ int) string { return u.URL })...)
	candidates := lo.UniqBy(lo.Filter(items, func(item model.Item, _ int) bool {
		return !knownURLs.Contains(item.Link) && c.isRecent(item) && !c.itemShouldBeSkipped(item)
	}), func(item model.Item) string {
		return item.Link
	})

	log.Printf("[INFO] found %d potential new articles", len(candidates))

	nextID := nextNumericID(existing)
	collectedAt := c.now().UTC().Format(time.RFC3339)

	var fresh []model.Update
	for _, item := range candidates {
		update, ok, err := c.processItem(ctx, item)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Printf("[ERROR] processing %q from %s: %v", item.Title, item.SourceName, err)
			continue
		}
		if !ok {
			log.Printf("[INFO] skipped %q: not a relevant platform update", item.Title)
			continue
		}

		update.ID = model.UpdateID(strconv.FormatInt(nextID, 10))
		update.Timestamp = collectedAt
		nextID++

		fresh = append(fresh, update)
	}

	if len(fresh) == 0 {
		log.Println("[INFO] no new relevant updates found")
		return nil, nil
	}

	// Новые обновления идут в начало, как и раньше
	all := make([]model.Update, 0, len(fresh)+len(existing))
	all = append(all, fresh...)
	all = append(all, existing...)

	if err := c.updates.Save(ctx, all); err != nil {
		return nil, err
	}

	log.Printf("[INFO] saved %d new updates", len(fresh))

	return fresh, nil
}

// Источники опрашиваются параллельно. Ошибка одного источника не мешает остальным,
// поэтому наружу возвращаем только отмену контекста.
func (c *Collector) fetchAll(ctx context.Context, feeds []model.Feed) ([]model.Item, error) {
	// Каждая горутина пишет только в свою ячейку
	results := make([][]model.Item, len(feeds))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for i, feed := range feeds {
		g.Go(func() error {
			src, err := c.newSource(feed)
			if err != nil {
				log.Printf("[ERROR] source %s: %v", feed.Name, err)
				return nil
			}

			items, err := src.Fetch(gctx)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				log.Printf("[ERROR] fetching items from source %s: %v", src.Name(), err)
				return nil
			}

			results[i] = items

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Сохраняем порядок источников из списка, чтобы id раздавались детерминированно
	return lo.Flatten(results), nil
}

func (c *Collector) processItem(ctx context.Context, item model.Item) (model.Update, bool, error) {
	text, err := c.extractor.Extract(ctx, item)
	if err != nil {
		return model.Update{}, false, fmt.Errorf("extract text: %w", err)
	}

	verdict, err := c.summarizer.Summarize(ctx, item.Title, text)
	if err != nil {
		return model.Update{}, false, fmt.Errorf("summarize: %w", err)
	}

	if !verdict.Relevant {
		return model.Update{}, false, nil
	}

	date := item.Date.UTC()
	if item.Date.IsZero() {
		date = c.now().UTC()
	}

	return model.Update{
		Source:  item.SourceName,
		Title:   strings.TrimSpace(item.Title),
		URL:     item.Link,
		Date:    date.Format("2006-01-02"),
		Summary: verdict.Summary,
	}, true, nil
}

// Статья без даты считается свежей: отсеять ее по времени мы не можем
func (c *Collector) isRecent(item model.Item) bool {
	if item.Date.IsZero() || c.window <= 0 {
		return true
	}

	return item.Date.After(c.now().Add(-c.window))
}

// Ключевые слова ищем в категориях и заголовке, как в фильтре ленты
func (c *Collector) itemShouldBeSkipped(item model.Item) bool {
	categoriesSet := set.New(lo.Map(item.Categories, func(c string, _ int) string {
		return strings.ToLower(c)
	})...)

	for _, keyword := range c.filterKeywords {
		titleContainsKeyword := strings.Contains(strings.ToLower(item.Title), keyword)

		if categoriesSet.Contains(keyword) || titleContainsKeyword {
			return true
		}
	}

	return false
}

// Новые id продолжают числовую последовательность снапшота.
// Нечисловые id в расчет не берутся.
func nextNumericID(existing []model.Update) int64 {
	var maxID int64
	for _, u := range existing {
		n, err := strconv.ParseInt(string(u.ID), 10, 64)
		if err == nil && n > maxID {
			maxID = n
		}
	}

	return maxID + 1
}
