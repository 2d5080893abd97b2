package summary

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/go-shiori/go-readability"
	"github.com/kovalyov-valentin/ad-updates-dashboard/internal/model"
	"github.com/microcosm-cc/bluemonday"
)

// Сколько текста статьи отдаем модели
const MaxContentRunes = 1000

// Extractor достает из статьи чистый текст для суммаризации.
// Сначала берем то, что пришло в ленте, и только если там пусто - идем по ссылке.
type Extractor struct {
	policy *bluemonday.Policy
	client *http.Client
}

func NewExtractor(client *http.Client) *Extractor {
	if client == nil {
		client = http.DefaultClient
	}

	return &Extractor{
		policy: bluemonday.StrictPolicy(),
		client: client,
	}
}

func (e *Extractor) Extract(ctx context.Context, item model.Item) (string, error) {
	text := e.StripHTML(item.Content)

	if text == "" && item.Link != "" {
		fetched, err := e.fetchArticle(ctx, item.Link)
		if err != nil {
			return "", err
		}
		text = fetched
	}

	return truncate(text, MaxContentRunes), nil
}

// StripHTML убирает разметку и схлопывает лишние пустые строки
func (e *Extractor) StripHTML(src string) string {
	// bluemonday экранирует сущности, а нам нужен обычный текст
	text := html.UnescapeString(e.policy.Sanitize(src))

	return cleanText(text)
}

func (e *Extractor) fetchArticle(ctx context.Context, link string) (string, error) {
	pageURL, err := url.Parse(link)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return "", err
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch article %s: %w", link, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch article %s: unexpected status %s", link, resp.Status)
	}

	doc, err := readability.FromReader(io.LimitReader(resp.Body, 10<<20), pageURL)
	if err != nil {
		return "", fmt.Errorf("parse article %s: %w", link, err)
	}

	return cleanText(doc.TextContent), nil
}

// readability и strip оставляют много пустых строк, схлопываем 3+ подряд в одну
var redundantNewLines = regexp.MustCompile(`\n{3,}`)

func cleanText(text string) string {
	return strings.TrimSpace(redundantNewLines.ReplaceAllString(text, "\n"))
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}

	return string(runes[:limit])
}
