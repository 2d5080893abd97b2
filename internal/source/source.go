package source

import (
	"context"
	"fmt"
	"net/http"

	"github.com/kovalyov-valentin/ad-updates-dashboard/internal/model"
)

const userAgent = "ad-updates-dashboard/1.0 (+collector)"

// Source - то, что умеет отдать свежие статьи одного источника
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]model.Item, error)
}

// FromFeed выбирает реализацию по типу источника
func FromFeed(feed model.Feed, client *http.Client) (Source, error) {
	switch feed.Type {
	case model.FeedTypeRSS, "":
		return NewRSSSourceFromModel(feed, client), nil
	case model.FeedTypeHTML:
		src, err := NewHTMLSourceFromModel(feed, client)
		if err != nil {
			return nil, err
		}
		return src, nil
	default:
		return nil, fmt.Errorf("unknown feed type %q for %s", feed.Type, feed.Name)
	}
}
