package source

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/SlyMarbo/rss"
	"github.com/kovalyov-valentin/ad-updates-dashboard/internal/model"
	"github.com/samber/lo"
)

// RSS клиент
type RSSSource struct {
	URL        string
	SourceName string
	client     *http.Client
}

func NewRSSSourceFromModel(m model.Feed, client *http.Client) RSSSource {
	return RSSSource{
		URL:        m.URL,
		SourceName: m.Name,
		client:     client,
	}
}

func (s RSSSource) Fetch(ctx context.Context) ([]model.Item, error) {
	feed, err := s.loadFeed(ctx)
	if err != nil {
		return nil, fmt.Errorf("load rss %s: %w", s.URL, err)
	}

	return lo.Map(feed.Items, func(item *rss.Item, _ int) model.Item {
		// В одних лентах текст лежит в summary, в других только в content
		content := item.Summary
		if content == "" {
			content = item.Content
		}

		return model.Item{
			Title:      item.Title,
			Categories: item.Categories,
			Link:       item.Link,
			Date:       item.Date,
			Content:    content,
			SourceName: s.SourceName,
		}
	}), nil
}

// Сами ходим за лентой, чтобы запрос отменялся вместе с контекстом,
// а разбор отдаем библиотеке
func (s RSSSource) loadFeed(ctx context.Context) (*rss.Feed, error) {
	body, err := get(ctx, s.client, s.URL)
	if err != nil {
		return nil, err
	}

	return rss.Parse(body)
}

func (s RSSSource) Name() string {
	return s.SourceName
}

// Ленты больше этого размера считаем мусором
const maxBodySize = 10 << 20

func get(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
}
