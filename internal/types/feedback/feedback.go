package feedback

import "time"

// Feedback - тело POST /feedback/. Comments не отправляется, если nil.
type Feedback struct {
	NoticeID  int64   `json:"notice"`
	IsHelpful bool    `json:"is_helpful"`
	Comments  *string `json:"comments,omitempty"`
}

// Ack - ответ backend на созданный отзыв
type Ack struct {
	NoticeID  int64     `json:"notice"`
	IsHelpful bool      `json:"is_helpful"`
	Comments  *string   `json:"comments"`
	CreatedAt time.Time `json:"created_at"`
}
