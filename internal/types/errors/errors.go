package errors

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

var (
	ErrFetchNotices   = errors.New("failed to fetch notices")
	ErrNoticeNotFound = errors.New("notice not found")
	ErrSubmitFeedback = errors.New("failed to submit feedback")
	ErrDecodeResponse = errors.New("failed to decode backend response")

	ErrBackendUnavailable = errors.New("backend unavailable")

	ErrMissingCode     = errors.New("notice code is missing")
	ErrInvalidFeedback = errors.New("helpful must be yes or no")
	ErrRateLimited     = errors.New("too many feedback submissions, try again later")
)

type ErrorServer struct {
	Message string `json:"message"`
}

func (e *ErrorServer) Error() string {
	return e.Message
}

/*
NewErrorServer
Функция имеет возможность принимать "nil ошибку"
при получении nil наша функция понимает, что нам
просто надо отдать саксесс клиенту
*/
func NewErrorServer(err error) ErrorServer {
	if err == nil {
		return ErrorServer{
			Message: "success",
		}
	}

	return ErrorServer{
		Message: err.Error(),
	}
}

func SendErrorTo(w http.ResponseWriter, err error, statusCode int, logger *zap.SugaredLogger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if errEncode := json.NewEncoder(w).Encode(NewErrorServer(err)); errEncode != nil {
		logger.Error(errEncode)
	}
}
