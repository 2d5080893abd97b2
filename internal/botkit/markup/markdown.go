package markup

import "strings"

// Спецсимволы MarkdownV2, которые в обычном тексте нужно экранировать
const markdownV2Special = "_*[]()~`>#+-=|{}.!\\"

var (
	replacer = newReplacer(markdownV2Special)
	// Внутри (...) ссылки экранируются только ) и \
	linkReplacer = newReplacer(")\\")
)

func newReplacer(special string) *strings.Replacer {
	pairs := make([]string, 0, 2*len(special))
	for _, r := range special {
		pairs = append(pairs, string(r), "\\"+string(r))
	}

	return strings.NewReplacer(pairs...)
}

// EscapeForMarkdown экранирует спецсимволы MarkdownV2 для телеграма
func EscapeForMarkdown(src string) string {
	return replacer.Replace(src)
}

// Link собирает inline ссылку [text](url)
func Link(text, url string) string {
	return "[" + EscapeForMarkdown(text) + "](" + linkReplacer.Replace(url) + ")"
}
