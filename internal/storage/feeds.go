package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/kovalyov-valentin/ad-updates-dashboard/internal/model"
	"github.com/samber/lo"
)

var (
	ErrFeedExists   = errors.New("feed already exists")
	ErrFeedNotFound = errors.New("feed not found")
	ErrInvalidFeed  = errors.New("invalid feed")
)

// Ленты по умолчанию, пока файл со списком не создан
var DefaultFeeds = []model.Feed{
	{Name: "Google Ads Blog", URL: "https://blog.google/products/ads-commerce/rss/", Type: model.FeedTypeRSS},
	{Name: "Yahoo! JAPAN Ads", URL: "https://www.lycbiz.com/jp/news/yahoo-ads/rss.xml", Type: model.FeedTypeRSS},
}

// Список лент в json файле. Имя ленты уникально и служит ее ключом,
// потому что оно же попадает в поле source у обновлений.
type FeedFileStorage struct {
	path string
	mu   sync.Mutex
}

func NewFeedFileStorage(path string) *FeedFileStorage {
	return &FeedFileStorage{path: path}
}

func (s *FeedFileStorage) Feeds(ctx context.Context) ([]model.Feed, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return s.load()
}

func (s *FeedFileStorage) Add(ctx context.Context, feed model.Feed) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}

	feed.Name = strings.TrimSpace(feed.Name)
	feed.URL = strings.TrimSpace(feed.URL)
	if feed.Type == "" {
		feed.Type = model.FeedTypeRSS
	}

	if err := validateFeed(feed); err != nil {
		return "", err
	}

	feeds, err := s.load()
	if err != nil {
		return "", err
	}

	if lo.ContainsBy(feeds, func(f model.Feed) bool { return f.Name == feed.Name }) {
		return "", fmt.Errorf("%w: %s", ErrFeedExists, feed.Name)
	}

	if err := writeJSON(s.path, append(feeds, feed)); err != nil {
		return "", fmt.Errorf("write feeds %s: %w", s.path, err)
	}

	return feed.Name, nil
}

func (s *FeedFileStorage) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	feeds, err := s.load()
	if err != nil {
		return err
	}

	rest := lo.Reject(feeds, func(f model.Feed, _ int) bool { return f.Name == name })
	if len(rest) == len(feeds) {
		return fmt.Errorf("%w: %s", ErrFeedNotFound, name)
	}

	if err := writeJSON(s.path, rest); err != nil {
		return fmt.Errorf("write feeds %s: %w", s.path, err)
	}

	return nil
}

func (s *FeedFileStorage) load() ([]model.Feed, error) {
	var feeds []model.Feed
	if err := readJSON(s.path, &feeds); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return append([]model.Feed(nil), DefaultFeeds...), nil
		}
		return nil, fmt.Errorf("read feeds %s: %w", s.path, err)
	}

	return feeds, nil
}

func validateFeed(feed model.Feed) error {
	switch {
	case feed.Name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidFeed)
	case !strings.HasPrefix(feed.URL, "http://") && !strings.HasPrefix(feed.URL, "https://"):
		return fmt.Errorf("%w: url must be absolute http(s)", ErrInvalidFeed)
	case feed.Type != model.FeedTypeRSS && feed.Type != model.FeedTypeHTML:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidFeed, feed.Type)
	case feed.Type == model.FeedTypeHTML && (feed.Selectors == nil || feed.Selectors.Item == "" || feed.Selectors.Link == ""):
		return fmt.Errorf("%w: html feed needs item and link selectors", ErrInvalidFeed)
	}

	return nil
}
