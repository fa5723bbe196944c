package kafka

import "time"

type EventType string

const (
	EventTypeSearch   EventType = "search"
	EventTypeView     EventType = "view"
	EventTypeFeedback EventType = "feedback"
)

// Event - действие пользователя в интерфейсе
type Event struct {
	Type       EventType `json:"type"`
	NoticeCode string    `json:"notice_code,omitempty"`
	Query      string    `json:"query,omitempty"`
	Results    int       `json:"results,omitempty"`
	Helpful    *bool     `json:"helpful,omitempty"`
	RequestID  string    `json:"request_id,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Key - ключ партиционирования: код уведомления, для поиска сам запрос
func (e Event) Key() string {
	if e.NoticeCode != "" {
		return e.NoticeCode
	}
	return e.Query
}
