package dashboard

import (
	"github.com/kovalyov-valentin/ad-updates-dashboard/internal/model"
	"github.com/samber/lo"
)

// SummaryPlaceholder показывается вместо пустого summary
const SummaryPlaceholder = "No summary available."

// EmptyMessage показывается вместо сетки, когда под фильтр ничего не попало
const EmptyMessage = "No updates found for this selection."

// View держит единственное состояние дашборда - выбранный фильтр.
// Каждый экземпляр владеет своим выбором, общих изменяемых данных нет.
type View struct {
	page     Page
	selected Filter
}

func NewView(page Page) *View {
	return &View{page: page, selected: All}
}

// Select заменяет текущий выбор. Проверять, что источник известен, не нужно:
// неизвестный источник просто дает пустую выборку.
func (v *View) Select(f Filter) {
	v.selected = f
}

func (v *View) Selected() Filter {
	return v.selected
}

func (v *View) Page() Page {
	return v.page
}

// Visible возвращает обновления под текущим фильтром, порядок сохраняется.
func (v *View) Visible() []model.Update {
	if v.selected.IsAll() {
		return v.page.Updates
	}

	return lo.Filter(v.page.Updates, func(u model.Update, _ int) bool {
		return v.selected.Matches(u)
	})
}

func (v *View) Empty() bool {
	return len(v.Visible()) == 0
}

// Filters - все кнопки фильтра по порядку: сначала "все", потом источники.
func (v *View) Filters() []Filter {
	filters := make([]Filter, 0, len(v.page.Sources)+1)
	filters = append(filters, All)

	for _, source := range v.page.Sources {
		filters = append(filters, BySource(source))
	}

	return filters
}

func SummaryOrPlaceholder(u model.Update) string {
	if u.Summary == "" {
		return SummaryPlaceholder
	}

	return u.Summary
}
