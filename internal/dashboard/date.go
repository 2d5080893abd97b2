package dashboard

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Форматы, в которых встречаются даты в снапшоте.
// Коллектор пишет календарную дату, но исторические записи бывают с временем.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseDate разбирает дату обновления. Часовой пояс, если он есть, отбрасывается:
// нас интересует только календарный день и порядок.
// Сначала пробуем строгие ISO форматы, потом все, что понимает dateparse
// (2024/01/10, Jan 10, 2024 и т.п.).
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return wallClock(t), true
		}
	}

	t, err := dateparse.ParseIn(raw, time.UTC)
	if err != nil {
		return time.Time{}, false
	}

	return wallClock(t), true
}

func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// FormatDate возвращает дату в виде YYYY.MM.DD.
// Неразборчивую дату показываем как есть, чтобы карточка не потеряла информацию.
func FormatDate(raw string) string {
	t, ok := ParseDate(raw)
	if !ok {
		return raw
	}

	return t.Format("2006.01.02")
}
