package dashboard

import "github.com/kovalyov-valentin/ad-updates-dashboard/internal/model"

// AllLabel - подпись кнопки без ограничения по источнику
const AllLabel = "All"

// Filter - выбранный фильтр: либо "все", либо конкретный источник.
// Нулевое значение означает "все".
type Filter struct {
	source   string
	specific bool
}

// All не ограничивает выборку
var All = Filter{}

// BySource оставляет только обновления с точно таким же источником
func BySource(source string) Filter {
	return Filter{source: source, specific: true}
}

// ParseFilter восстанавливает фильтр из параметра запроса.
// Отсутствующий параметр означает "все"; присутствующий, даже пустой, - конкретный источник.
func ParseFilter(raw string, present bool) Filter {
	if !present {
		return All
	}

	return BySource(raw)
}

func (f Filter) IsAll() bool {
	return !f.specific
}

// Source возвращает имя источника и false для фильтра "все"
func (f Filter) Source() (string, bool) {
	return f.source, f.specific
}

// Label - текст кнопки фильтра
func (f Filter) Label() string {
	if !f.specific {
		return AllLabel
	}

	return f.source
}

func (f Filter) Matches(u model.Update) bool {
	return !f.specific || u.Source == f.source
}
