package view

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"io/fs"
	"net/http"

	typesNotice "complia-web/internal/types/notice"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

const (
	PageHome   = "home"
	PageDetail = "detail"
	PageError  = "error"
)

// Состояние виджета отзыва на странице уведомления
const (
	FeedbackIdle    = ""
	FeedbackComment = "no"
	FeedbackThanks  = "thanks"
)

// Suggestions - частые запросы на пустой главной странице
var Suggestions = []string{
	"ASMT-10",
	"Return Defaulter",
	"Cancellation",
	"Short Payment (DRC-01B)",
	"Detention",
}

type Meta struct {
	Title       string
	Description string
}

var DefaultMeta = Meta{
	Title:       "Complia - Compliance, Explained.",
	Description: "Understand your GST notices in plain English.",
}

type HomePage struct {
	Meta        Meta
	Query       string
	Results     []typesNotice.Notice
	Suggestions []string
}

type DetailPage struct {
	Meta     Meta
	Notice   *typesNotice.Notice
	Feedback string
}

type ErrorPage struct {
	Meta    Meta
	Message string
}

// Renderer рендерит html-страницы из встроенных шаблонов
type Renderer struct {
	templates *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("").Funcs(templateFunctions()).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	return &Renderer{templates: tmpl}, nil
}

// Render - шаблон исполняется в буфер, поэтому при ошибке в w ничего не попадает
func (r *Renderer) Render(w io.Writer, name string, data any) error {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}

	_, err := buf.WriteTo(w)
	return err
}

// StaticHandler отдаёт css из встроенной файловой системы
func StaticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}

	return http.FileServer(http.FS(sub))
}
