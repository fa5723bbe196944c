package pages

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"complia-web/internal/contextutil"
	"complia-web/internal/kafka"
	"complia-web/internal/loader"
	myErr "complia-web/internal/types/errors"
	"complia-web/internal/view"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// PageLoader - данные для страниц
type PageLoader interface {
	Search(ctx context.Context, query string) (*loader.SearchData, error)
	Detail(ctx context.Context, code string) (*loader.DetailData, error)
	SubmitFeedback(ctx context.Context, code string, helpful bool, comment string) (*loader.FeedbackResult, error)
}

type PageHandler struct {
	Logger *zap.SugaredLogger
	Loader PageLoader
	Views  *view.Renderer
	Events kafka.EventProducer
}

func NewPageHandler(l *zap.SugaredLogger, pl PageLoader, v *view.Renderer, ep kafka.EventProducer) *PageHandler {
	return &PageHandler{
		Logger: l,
		Loader: pl,
		Views:  v,
		Events: ep,
	}
}

func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	data, err := h.Loader.Search(r.Context(), q)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	page := view.HomePage{
		Meta:    view.DefaultMeta,
		Query:   data.Query,
		Results: data.Results,
	}
	if data.Query == "" {
		page.Suggestions = view.Suggestions
	} else {
		h.publish(r, kafka.Event{
			Type:    kafka.EventTypeSearch,
			Query:   data.Query,
			Results: len(data.Results),
		})
	}

	h.render(w, r, http.StatusOK, view.PageHome, page)
}

func (h *PageHandler) Detail(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["id"]
	if code == "" {
		h.renderError(w, r, myErr.ErrMissingCode)
		return
	}

	data, err := h.Loader.Detail(r.Context(), code)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	state := r.URL.Query().Get("feedback")
	if state != view.FeedbackComment && state != view.FeedbackThanks {
		state = view.FeedbackIdle
	}

	h.publish(r, kafka.Event{
		Type:       kafka.EventTypeView,
		NoticeCode: data.Notice.Code,
	})

	h.render(w, r, http.StatusOK, view.PageDetail, view.DetailPage{
		Meta:     view.DefaultMeta,
		Notice:   data.Notice,
		Feedback: state,
	})
}

// Feedback принимает форму отзыва.
// helpful=no без поля submit только открывает поле комментария.
func (h *PageHandler) Feedback(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["id"]
	if code == "" {
		myErr.SendErrorTo(w, myErr.ErrMissingCode, http.StatusBadRequest, h.Logger)
		return
	}

	if err := r.ParseForm(); err != nil {
		myErr.SendErrorTo(w, err, http.StatusBadRequest, h.Logger)
		return
	}

	var helpful bool
	switch r.PostForm.Get("helpful") {
	case "yes":
		helpful = true
	case "no":
		helpful = false
	default:
		myErr.SendErrorTo(w, myErr.ErrInvalidFeedback, http.StatusBadRequest, h.Logger)
		return
	}

	detailURL := "/notice/" + url.PathEscape(code)

	if !helpful && r.PostForm.Get("submit") == "" {
		http.Redirect(w, r, detailURL+"?feedback="+view.FeedbackComment, http.StatusSeeOther)
		return
	}

	res, err := h.Loader.SubmitFeedback(r.Context(), code, helpful, r.PostForm.Get("comments"))
	if err != nil {
		// пользователь остаётся на странице, отзыв просто не учтён
		h.Logger.Errorw("feedback submission failed",
			"code", code,
			"helpful", helpful,
			zap.Error(err),
		)
		http.Redirect(w, r, detailURL, http.StatusSeeOther)
		return
	}

	h.publish(r, kafka.Event{
		Type:       kafka.EventTypeFeedback,
		NoticeCode: res.Notice.Code,
		Helpful:    &helpful,
	})

	http.Redirect(w, r, detailURL+"?feedback="+view.FeedbackThanks, http.StatusSeeOther)
}

func (h *PageHandler) Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(myErr.NewErrorServer(nil)); err != nil {
		h.Logger.Error(err)
	}
}

// renderError - единая страница ошибки для любого сбоя загрузки
func (h *PageHandler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	h.Logger.Warnw("page load failed",
		"path", r.URL.Path,
		zap.Error(err),
	)

	h.render(w, r, http.StatusBadGateway, view.PageError, view.ErrorPage{
		Meta:    view.DefaultMeta,
		Message: publicMessage(err),
	})
}

// publicMessage - текст для пользователя. Полная ошибка с адресами backend
// остаётся только в логе, пустая строка даёт общий текст шаблона.
func publicMessage(err error) string {
	switch {
	case errors.Is(err, myErr.ErrNoticeNotFound):
		return myErr.ErrNoticeNotFound.Error()
	case errors.Is(err, myErr.ErrMissingCode):
		return myErr.ErrMissingCode.Error()
	case errors.Is(err, myErr.ErrFetchNotices):
		return myErr.ErrFetchNotices.Error()
	default:
		return ""
	}
}

func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	var buf bytes.Buffer
	if err := h.Views.Render(&buf, name, data); err != nil {
		h.Logger.Errorw("render failed",
			"template", name,
			"path", r.URL.Path,
			zap.Error(err),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		h.Logger.Warnf("failed to write %s page: %v", name, err)
	}
}

// publish - события не должны ронять страницу
func (h *PageHandler) publish(r *http.Request, e kafka.Event) {
	if h.Events == nil {
		return
	}

	e.RequestID, _ = contextutil.GetRequestIDFromContext(r.Context())
	e.Timestamp = time.Now().UTC()

	if err := h.Events.SendEvent(r.Context(), e); err != nil {
		h.Logger.Warnf("failed to publish %s event: %v", e.Type, err)
	}
}
