package notice

import (
	"context"

	"complia-web/internal/types/feedback"
	typesNotice "complia-web/internal/types/notice"
)

// NoticeClient - клиент REST backend уведомлений
//
//go:generate mockgen -source=notice.go -destination=mocks.go -package=notice
type NoticeClient interface {
	// Search - GET /notices/?search={query}. Пустой запрос вызывающая сторона не передаёт.
	// Возвращает найденные уведомления или ErrFetchNotices
	Search(ctx context.Context, query string) ([]typesNotice.Notice, error)

	// GetByCode - GET /notices/{code}/. Любой не-2xx ответ превращается в ErrNoticeNotFound
	GetByCode(ctx context.Context, code string) (*typesNotice.Notice, error)

	// SubmitFeedback - POST /feedback/. comment == nil не попадает в тело запроса
	SubmitFeedback(ctx context.Context, noticeID int64, helpful bool, comment *string) (*feedback.Ack, error)
}

var _ NoticeClient = (*Client)(nil)
