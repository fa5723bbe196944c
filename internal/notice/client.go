package notice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"complia-web/internal/contextutil"
	myErr "complia-web/internal/types/errors"
	"complia-web/internal/types/feedback"
	typesNotice "complia-web/internal/types/notice"

	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

// Client ходит в backend по HTTP. Одна попытка на вызов: без ретраев, кэша и таймаутов,
// кроме тех, что заданы в переданном http.Client и в контексте.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *zap.SugaredLogger
}

func NewClient(baseURL string, httpClient *http.Client, l *zap.SugaredLogger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: httpClient,
		Logger:     l,
	}
}

// Search - ищет уведомления по коду, названию, ключевым словам и описанию
func (c *Client) Search(ctx context.Context, query string) ([]typesNotice.Notice, error) {
	u := c.BaseURL + "/notices/?search=" + escapeQuery(query)
	c.Logger.Debugf("fetching notices from: %s", u)

	start := time.Now()
	resp, err := c.do(ctx, http.MethodGet, u, nil)
	if err != nil {
		observe(opSearch, outcomeTransport, start)
		c.Logger.Errorw("network error connecting to API", "url", u, zap.Error(err))

		return nil, fmt.Errorf("%w: %w", myErr.ErrFetchNotices, err)
	}
	defer closeBody(resp)

	if !isSuccess(resp.StatusCode) {
		observe(opSearch, outcomeStatus, start)
		c.Logger.Errorf("API error: %s", resp.Status)

		return nil, fmt.Errorf("%w: %s", myErr.ErrFetchNotices, statusText(resp))
	}

	var results []typesNotice.Notice
	if err = json.NewDecoder(resp.Body).Decode(&results); err != nil {
		observe(opSearch, outcomeDecode, start)
		c.Logger.Errorw("Failed to decode search response", zap.Error(err))

		return nil, fmt.Errorf("%w: %w", myErr.ErrDecodeResponse, err)
	}
	observe(opSearch, outcomeOK, start)

	if results == nil {
		results = make([]typesNotice.Notice, 0)
	}
	c.Logger.Debugf("found %d results", len(results))

	return results, nil
}

// GetByCode - получает одно уведомление по его коду
func (c *Client) GetByCode(ctx context.Context, code string) (*typesNotice.Notice, error) {
	u := c.BaseURL + "/notices/" + url.PathEscape(code) + "/"

	start := time.Now()
	resp, err := c.do(ctx, http.MethodGet, u, nil)
	if err != nil {
		observe(opGetByCode, outcomeTransport, start)
		c.Logger.Errorw("network error connecting to API", "url", u, zap.Error(err))

		return nil, fmt.Errorf("%w: %w", myErr.ErrBackendUnavailable, err)
	}
	defer closeBody(resp)

	if !isSuccess(resp.StatusCode) {
		observe(opGetByCode, outcomeStatus, start)
		c.Logger.Warnf("notice %q not available: %s", code, resp.Status)

		return nil, myErr.ErrNoticeNotFound
	}

	var n typesNotice.Notice
	if err = json.NewDecoder(resp.Body).Decode(&n); err != nil {
		observe(opGetByCode, outcomeDecode, start)
		c.Logger.Errorw("Failed to decode notice", "code", code, zap.Error(err))

		return nil, fmt.Errorf("%w: %w", myErr.ErrDecodeResponse, err)
	}
	observe(opGetByCode, outcomeOK, start)

	return &n, nil
}

// SubmitFeedback - отправляет отзыв "помогло / не помогло" по уведомлению
func (c *Client) SubmitFeedback(
	ctx context.Context,
	noticeID int64,
	helpful bool,
	comment *string,
) (*feedback.Ack, error) {
	body, err := json.Marshal(feedback.Feedback{
		NoticeID:  noticeID,
		IsHelpful: helpful,
		Comments:  comment,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", myErr.ErrSubmitFeedback, err)
	}

	u := c.BaseURL + "/feedback/"

	start := time.Now()
	resp, err := c.do(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		observe(opFeedback, outcomeTransport, start)
		c.Logger.Errorw("network error connecting to API", "url", u, zap.Error(err))

		return nil, fmt.Errorf("%w: %w", myErr.ErrSubmitFeedback, err)
	}
	defer closeBody(resp)

	if !isSuccess(resp.StatusCode) {
		observe(opFeedback, outcomeStatus, start)
		c.Logger.Errorf("feedback for notice %d rejected: %s", noticeID, resp.Status)

		return nil, fmt.Errorf("%w: %s", myErr.ErrSubmitFeedback, statusText(resp))
	}

	var ack feedback.Ack
	if err = json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		observe(opFeedback, outcomeDecode, start)
		c.Logger.Errorw("Failed to decode feedback response", zap.Error(err))

		return nil, fmt.Errorf("%w: %w", myErr.ErrDecodeResponse, err)
	}
	observe(opFeedback, outcomeOK, start)

	c.Logger.Infof("feedback submitted for notice %d, helpful=%t", noticeID, helpful)

	return &ack, nil
}

func (c *Client) do(ctx context.Context, method, u string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id, ok := contextutil.GetRequestIDFromContext(ctx); ok {
		req.Header.Set(requestIDHeader, id)
	}

	return c.HTTPClient.Do(req)
}

// escapeQuery - пробел кодируется как %20, литеральный плюс как %2B
func escapeQuery(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func isSuccess(code int) bool {
	return code >= http.StatusOK && code < http.StatusMultipleChoices
}

// statusText - текст статуса без числового кода
func statusText(resp *http.Response) string {
	if text := http.StatusText(resp.StatusCode); text != "" {
		return text
	}
	return resp.Status
}

func closeBody(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

func observe(op, outcome string, start time.Time) {
	backendRequestsTotal.WithLabelValues(op, outcome).Inc()
	backendRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
