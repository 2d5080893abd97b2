package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/kovalyov-valentin/ad-updates-dashboard/internal/dashboard"
	"github.com/kovalyov-valentin/ad-updates-dashboard/internal/model"
	"github.com/samber/lo"
)

//go:embed templates/*.html.tmpl
var templatesFS embed.FS

// Meta - шапка страницы
type Meta struct {
	Title       string
	Tagline     string
	Description string
}

// Linker превращает выбор фильтра в ссылку.
// Статическая сборка и preview сервер кодируют выбор по-разному.
type Linker interface {
	Href(f dashboard.Filter) string
}

type PageData struct {
	Meta
	Filters      []FilterButton
	Cards        []Card
	EmptyMessage string
}

type FilterButton struct {
	Label  string
	Href   string
	Active bool
}

type Card struct {
	ID            string
	Source        string
	Date          string
	FormattedDate string
	Title         string
	URL           string
	Summary       string
}

type Renderer struct {
	tmpl *template.Template
	meta Meta
}

func NewRenderer(meta Meta) (*Renderer, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/page.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	return &Renderer{tmpl: tmpl, meta: meta}, nil
}

// PageData готовит данные шаблона для текущего состояния view
func (r *Renderer) PageData(view *dashboard.View, linker Linker) PageData {
	selected := view.Selected()
	visible := view.Visible()
	keys := dashboard.Keys(visible)

	return PageData{
		Meta: r.meta,
		Filters: lo.Map(view.Filters(), func(f dashboard.Filter, _ int) FilterButton {
			return FilterButton{
				Label:  f.Label(),
				Href:   linker.Href(f),
				Active: f == selected,
			}
		}),
		Cards: lo.Map(visible, func(u model.Update, i int) Card {
			return Card{
				ID:            keys[i],
				Source:        u.Source,
				Date:          u.Date,
				FormattedDate: dashboard.FormatDate(u.Date),
				Title:         u.Title,
				URL:           u.URL,
				Summary:       dashboard.SummaryOrPlaceholder(u),
			}
		}),
		EmptyMessage: dashboard.EmptyMessage,
	}
}

func (r *Renderer) Render(w io.Writer, view *dashboard.View, linker Linker) error {
	return r.tmpl.ExecuteTemplate(w, "page.html.tmpl", r.PageData(view, linker))
}
