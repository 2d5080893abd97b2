package render

import (
	"net/url"
	"strconv"
	"strings"
	"unicode"

	"github.com/kovalyov-valentin/ad-updates-dashboard/internal/dashboard"
)

// QueryLinker кодирует выбор в параметре ?source=, им пользуется preview сервер
type QueryLinker struct {
	BasePath string
}

func (l QueryLinker) Href(f dashboard.Filter) string {
	base := normalizeBase(l.BasePath)

	source, ok := f.Source()
	if !ok {
		return base
	}

	return base + "?" + url.Values{"source": {source}}.Encode()
}

// Каталог внутри сайта со страницами отдельных источников
const sourcesDir = "source"

// StaticLinker раскладывает выборы по каталогам: / и /source/<slug>/
type StaticLinker struct {
	BasePath string
	slugs    map[string]string
}

// NewStaticLinker заранее раздает источникам уникальные слаги
func NewStaticLinker(basePath string, sources []string) StaticLinker {
	slugs := make(map[string]string, len(sources))
	used := make(map[string]bool, len(sources))

	for _, source := range sources {
		if _, ok := slugs[source]; ok {
			continue
		}

		base := Slugify(source)
		slug := base
		for n := 2; used[slug]; n++ {
			slug = base + "-" + strconv.Itoa(n)
		}

		used[slug] = true
		slugs[source] = slug
	}

	return StaticLinker{BasePath: basePath, slugs: slugs}
}

func (l StaticLinker) Href(f dashboard.Filter) string {
	base := normalizeBase(l.BasePath)

	dir, ok := l.Dir(f)
	if !ok {
		return base
	}

	return base + dir + "/"
}

// Dir - каталог страницы относительно корня сайта, для "все" - корень
func (l StaticLinker) Dir(f dashboard.Filter) (string, bool) {
	source, ok := f.Source()
	if !ok {
		return "", false
	}

	slug, ok := l.slugs[source]
	if !ok {
		slug = Slugify(source)
	}

	return sourcesDir + "/" + slug, true
}

// Slugify оставляет от имени только буквы и цифры в нижнем регистре, разделяя куски дефисом.
// Японские и прочие буквы сохраняются.
func Slugify(name string) string {
	var (
		b       strings.Builder
		pending bool
	)

	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pending && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			pending = false
			continue
		}
		pending = true
	}

	if b.Len() == 0 {
		return "source"
	}

	return b.String()
}

func normalizeBase(base string) string {
	if base == "" {
		return "/"
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}

	return base
}
