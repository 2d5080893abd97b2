package dashboard

import (
	"log"
	"sort"
	"strconv"
	"time"

	"github.com/kovalyov-valentin/ad-updates-dashboard/internal/model"
	"github.com/samber/lo"
)

// Page - то, что композер отдает view: обновления по убыванию даты и список источников.
type Page struct {
	Updates []model.Update
	// Источники в порядке первого появления во входной коллекции (до сортировки)
	Sources []string
}

// Compose собирает страницу из полного снапшота. Вход не изменяется.
//
// Записи с одинаковой датой сохраняют исходный относительный порядок.
// Записи с неразборчивой датой уходят в конец, тоже в исходном порядке.
// Ни одна запись не отбрасывается: повтор id влияет только на ключи карточек, см. Keys.
func Compose(updates []model.Update) Page {
	warnDuplicateIDs(updates)

	sources := lo.Uniq(lo.Map(updates, func(u model.Update, _ int) string {
		return u.Source
	}))

	type keyed struct {
		update model.Update
		date   time.Time
		valid  bool
	}

	keyedUpdates := lo.Map(updates, func(u model.Update, _ int) keyed {
		date, ok := ParseDate(u.Date)
		if !ok {
			log.Printf("[WARN] update %q has unparseable date %q, placing it last", u.ID, u.Date)
		}
		return keyed{update: u, date: date, valid: ok}
	})

	sort.SliceStable(keyedUpdates, func(i, j int) bool {
		a, b := keyedUpdates[i], keyedUpdates[j]
		if a.valid != b.valid {
			return a.valid
		}
		return a.date.After(b.date)
	})

	return Page{
		Updates: lo.Map(keyedUpdates, func(k keyed, _ int) model.Update {
			return k.update
		}),
		Sources: sources,
	}
}

func warnDuplicateIDs(updates []model.Update) {
	seen := make(map[model.UpdateID]struct{}, len(updates))

	for _, u := range updates {
		if u.ID == "" {
			continue
		}
		if _, ok := seen[u.ID]; ok {
			log.Printf("[WARN] duplicate update id %q (%s)", u.ID, u.URL)
			continue
		}
		seen[u.ID] = struct{}{}
	}
}

// Keys раздает обновлениям уникальные ключи для разметки.
// Первое вхождение id получает сам id, повторы - id с суффиксом -2, -3...
// Запись без id получает ключ по позиции в списке.
func Keys(updates []model.Update) []string {
	keys := make([]string, len(updates))
	used := make(map[string]bool, len(updates))

	for i, u := range updates {
		base := string(u.ID)
		if base == "" {
			base = "n" + strconv.Itoa(i+1)
		}

		key := base
		for n := 2; used[key]; n++ {
			key = base + "-" + strconv.Itoa(n)
		}

		used[key] = true
		keys[i] = key
	}

	return keys
}
