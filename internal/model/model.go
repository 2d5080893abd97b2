package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Обновление рекламной платформы, как оно лежит в снапшоте updates.json
type Update struct {
	ID     UpdateID `json:"id"`
	Source string   `json:"source"`
	Title  string   `json:"title"`
	URL    string   `json:"url"`
	// Календарная дата в ISO-8601
	Date    string `json:"date"`
	Summary string `json:"summary,omitempty"`
	// Когда запись была собрана коллектором
	Timestamp string `json:"timestamp,omitempty"`
}

// Идентификатор обновления.
// Старые снапшоты хранили его числом, поэтому при чтении принимаем и число, и строку.
type UpdateID string

func (id *UpdateID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = UpdateID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("update id must be a string or a number: %w", err)
	}
	*id = UpdateID(n.String())

	return nil
}

// Типы источников, которые умеет опрашивать коллектор
const (
	FeedTypeRSS  = "rss"
	FeedTypeHTML = "html"
)

// Отслеживаемый источник (лента или страница новостей платформы)
type Feed struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Type string `json:"type"`
	// Селекторы нужны только для html источников
	Selectors *Selectors `json:"selectors,omitempty"`
}

// CSS селекторы для разбора html страницы со списком новостей
type Selectors struct {
	Item  string `json:"item"`
	Title string `json:"title"`
	Link  string `json:"link"`
	Date  string `json:"date,omitempty"`
	// Формат даты в терминах time.Parse, по умолчанию 2006-01-02
	DateLayout string `json:"date_layout,omitempty"`
}

// Статья как элемент ленты, до обработки коллектором
type Item struct {
	Title      string
	Categories []string
	Link       string
	// Дата публикации в источнике, нулевая если источник ее не отдал
	Date time.Time
	// Сырой текст или html из ленты
	Content    string
	SourceName string
}
