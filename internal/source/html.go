package source

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/kovalyov-valentin/ad-updates-dashboard/internal/model"
)

const defaultDateLayout = "2006-01-02"

// HTMLSource разбирает страницу новостей платформы, у которой нет ленты.
// Что считать статьей, задается css селекторами в описании источника.
type HTMLSource struct {
	URL        string
	SourceName string
	selectors  model.Selectors
	client     *http.Client
}

func NewHTMLSourceFromModel(m model.Feed, client *http.Client) (HTMLSource, error) {
	if m.Selectors == nil || m.Selectors.Item == "" || m.Selectors.Link == "" {
		return HTMLSource{}, fmt.Errorf("html source %s: item and link selectors are required", m.Name)
	}

	return HTMLSource{
		URL:        m.URL,
		SourceName: m.Name,
		selectors:  *m.Selectors,
		client:     client,
	}, nil
}

func (s HTMLSource) Fetch(ctx context.Context) ([]model.Item, error) {
	body, err := get(ctx, s.client, s.URL)
	if err != nil {
		return nil, fmt.Errorf("load page %s: %w", s.URL, err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse page %s: %w", s.URL, err)
	}

	base, err := url.Parse(s.URL)
	if err != nil {
		return nil, err
	}

	layout := s.selectors.DateLayout
	if layout == "" {
		layout = defaultDateLayout
	}

	var items []model.Item
	doc.Find(s.selectors.Item).Each(func(_ int, sel *goquery.Selection) {
		linkSel := sel.Find(s.selectors.Link).First()
		href, ok := linkSel.Attr("href")
		if !ok {
			return
		}

		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			return
		}

		title := linkSel.Text()
		if s.selectors.Title != "" {
			title = sel.Find(s.selectors.Title).First().Text()
		}

		item := model.Item{
			Title:      strings.Join(strings.Fields(title), " "),
			Link:       base.ResolveReference(ref).String(),
			Content:    strings.TrimSpace(sel.Text()),
			SourceName: s.SourceName,
		}

		if s.selectors.Date != "" {
			raw := strings.TrimSpace(sel.Find(s.selectors.Date).First().Text())
			if date, err := time.Parse(layout, raw); err == nil {
				item.Date = date
			}
		}

		if item.Title == "" {
			return
		}

		items = append(items, item)
	})

	return items, nil
}

func (s HTMLSource) Name() string {
	return s.SourceName
}
