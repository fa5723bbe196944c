package notice

import (
	"context"
	"reflect"

	"complia-web/internal/types/feedback"
	typesNotice "complia-web/internal/types/notice"

	"github.com/golang/mock/gomock"
)

// MockNoticeClient мок для NoticeClient
type MockNoticeClient struct {
	ctrl     *gomock.Controller
	recorder *MockNoticeClientMockRecorder
}

func NewMockNoticeClient(ctrl *gomock.Controller) *MockNoticeClient {
	mock := &MockNoticeClient{ctrl: ctrl}
	mock.recorder = &MockNoticeClientMockRecorder{mock}
	return mock
}

func (m *MockNoticeClient) EXPECT() *MockNoticeClientMockRecorder {
	return m.recorder
}

func (m *MockNoticeClient) Search(ctx context.Context, query string) ([]typesNotice.Notice, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Search", ctx, query)
	ret0, _ := ret[0].([]typesNotice.Notice)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (m *MockNoticeClient) GetByCode(ctx context.Context, code string) (*typesNotice.Notice, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByCode", ctx, code)
	ret0, _ := ret[0].(*typesNotice.Notice)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (m *MockNoticeClient) SubmitFeedback(
	ctx context.Context,
	noticeID int64,
	helpful bool,
	comment *string,
) (*feedback.Ack, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SubmitFeedback", ctx, noticeID, helpful, comment)
	ret0, _ := ret[0].(*feedback.Ack)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

type MockNoticeClientMockRecorder struct {
	mock *MockNoticeClient
}

func (mr *MockNoticeClientMockRecorder) Search(ctx, query interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(
		mr.mock,
		"Search",
		reflect.TypeOf((*MockNoticeClient)(nil).Search),
		ctx, query,
	)
}

func (mr *MockNoticeClientMockRecorder) GetByCode(ctx, code interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(
		mr.mock,
		"GetByCode",
		reflect.TypeOf((*MockNoticeClient)(nil).GetByCode),
		ctx, code,
	)
}

func (mr *MockNoticeClientMockRecorder) SubmitFeedback(ctx, noticeID, helpful, comment interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(
		mr.mock,
		"SubmitFeedback",
		reflect.TypeOf((*MockNoticeClient)(nil).SubmitFeedback),
		ctx, noticeID, helpful, comment,
	)
}
