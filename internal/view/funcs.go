package view

import (
	"html/template"
	"net/url"
	"strings"

	typesNotice "complia-web/internal/types/notice"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func templateFunctions() template.FuncMap {
	return template.FuncMap{
		"severityLabel":       severityLabel,
		"severityDetailLabel": severityDetailLabel,
		"severityClass":       severityClass,
		"title":               title,
		"noticeURL":           noticeURL,
		"searchURL":           searchURL,
		"paragraphs":          paragraphs,
	}
}

func severityLabel(s typesNotice.Severity) string       { return s.Label() }
func severityDetailLabel(s typesNotice.Severity) string { return s.DetailLabel() }
func severityClass(s typesNotice.Severity) string       { return "severity-" + s.Class() }

// title - Caser хранит состояние, поэтому новый на каждый вызов
func title(s string) string {
	return cases.Title(language.English).String(s)
}

func noticeURL(code string) string {
	return "/notice/" + url.PathEscape(code)
}

func searchURL(query string) string {
	return "/?" + url.Values{"q": {query}}.Encode()
}

// paragraphs режет текст по строкам, пустые строки выкидывает
func paragraphs(text string) []string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
