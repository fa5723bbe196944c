package loader

import (
	"context"
	"strings"

	"complia-web/internal/notice"
	"complia-web/internal/types/feedback"
	typesNotice "complia-web/internal/types/notice"

	"go.uber.org/zap"
)

// SearchData - данные для главной страницы
type SearchData struct {
	Results []typesNotice.Notice
	Query   string
}

// DetailData - данные для страницы уведомления
type DetailData struct {
	Notice *typesNotice.Notice
}

// FeedbackResult - что получилось после отправки отзыва
type FeedbackResult struct {
	Notice *typesNotice.Notice
	Ack    *feedback.Ack
}

// Loader ждёт ответа клиента и отдаёт данные в слой представления как есть:
// без преобразований, проверок и кэша. Ошибки клиента пробрасываются без изменений.
type Loader struct {
	Client notice.NoticeClient
	Logger *zap.SugaredLogger
}

func NewLoader(c notice.NoticeClient, l *zap.SugaredLogger) *Loader {
	return &Loader{
		Client: c,
		Logger: l,
	}
}

// Search - при пустом запросе backend не вызывается
func (l *Loader) Search(ctx context.Context, query string) (*SearchData, error) {
	if query == "" {
		return &SearchData{Results: []typesNotice.Notice{}, Query: ""}, nil
	}

	results, err := l.Client.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	return &SearchData{Results: results, Query: query}, nil
}

func (l *Loader) Detail(ctx context.Context, code string) (*DetailData, error) {
	n, err := l.Client.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	return &DetailData{Notice: n}, nil
}

// SubmitFeedback - сначала загружает уведомление, затем отправляет отзыв по его id.
// Для helpful=true комментарий отбрасывается, пустой или из одних пробелов не отправляется.
func (l *Loader) SubmitFeedback(ctx context.Context, code string, helpful bool, comment string) (*FeedbackResult, error) {
	n, err := l.Client.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	var c *string
	if !helpful && strings.TrimSpace(comment) != "" {
		c = &comment
	}

	ack, err := l.Client.SubmitFeedback(ctx, n.ID, helpful, c)
	if err != nil {
		l.Logger.Warnf("feedback for %s failed: %v", code, err)
		return nil, err
	}

	return &FeedbackResult{Notice: n, Ack: ack}, nil
}
