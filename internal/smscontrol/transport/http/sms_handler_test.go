package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Project-Pixelstar-Fifteen/frameworks-opt-telephony/internal/smscontrol/domain"
	"github.com/Project-Pixelstar-Fifteen/frameworks-opt-telephony/internal/smscontrol/middleware"
	httptransport "github.com/Project-Pixelstar-Fifteen/frameworks-opt-telephony/internal/smscontrol/transport/http"
)

type MockAdmissionService struct {
	mock.Mock
}

func (m *MockAdmissionService) IsNumberBlockedByFDN(ctx context.Context, subscriptionID int, destinationAddress string) bool {
	args := m.Called(ctx, subscriptionID, destinationAddress)
	return args.Bool(0)
}

func (m *MockAdmissionService) SendTextForSubscriber(ctx context.Context, caller domain.Caller, req *domain.SendRequest) error {
	args := m.Called(ctx, caller, req)
	return args.Error(0)
}

func (m *MockAdmissionService) SendVisualVoicemailSms(ctx context.Context, caller domain.Caller, req *domain.SendRequest) error {
	args := m.Called(ctx, caller, req)
	return args.Error(0)
}

func (m *MockAdmissionService) GetWapMessageSize(ctx context.Context, compositeKeyText string) (int64, error) {
	args := m.Called(ctx, compositeKeyText)
	return args.Get(0).(int64), args.Error(1)
}

var testCaller = domain.Caller{Package: "com.example.messaging", UserID: 10, TargetSdk: 35}

// withCaller injects an authenticated caller the way CallerIdentity would.
func withCaller(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), middleware.CallerContextKey, testCaller)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func newTestRouter(service httptransport.AdmissionService) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := httptransport.NewSmsHandler(service, logger)

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(withCaller)
		handler.RegisterRoutes(r)
	})
	return r
}

func TestHandleSendText_Accepted(t *testing.T) {
	service := new(MockAdmissionService)
	service.On("SendTextForSubscriber", mock.Anything, testCaller, mock.Anything).Return(nil)
	router := newTestRouter(service)

	body, _ := json.Marshal(httptransport.SendMessageRequest{
		DestinationAddress: "1234",
		Text:               "text",
	})
	req := httptest.NewRequest(http.MethodPost, "/subscriptions/1/messages", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusAccepted, rec.Code)

	var resp httptransport.SendMessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "accepted", resp.Status)
	service.AssertExpectations(t)
}

func TestHandleSendText_RequestFieldsReachTheService(t *testing.T) {
	service := new(MockAdmissionService)
	var captured *domain.SendRequest
	service.On("SendTextForSubscriber", mock.Anything, testCaller, mock.Anything).
		Run(func(args mock.Arguments) { captured = args.Get(2).(*domain.SendRequest) }).
		Return(nil)
	router := newTestRouter(service)

	body, _ := json.Marshal(httptransport.SendMessageRequest{
		DestinationAddress:  "1234",
		Text:                "text",
		SentIntentToken:     "sent-token",
		DeliveryIntentToken: "delivery-token",
		PersistMessage:      true,
	})
	req := httptest.NewRequest(http.MethodPost, "/subscriptions/7/messages", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)
	require.NotNil(t, captured)
	assert.Equal(t, 7, captured.SubscriptionID)
	assert.Equal(t, "1234", captured.DestinationAddress)
	assert.Equal(t, "sent-token", captured.SentIntentToken)
	assert.Equal(t, "delivery-token", captured.DeliveryIntentToken)
	assert.True(t, captured.PersistMessage)
}

func TestHandleSendText_CapabilityMissingIsNotImplemented(t *testing.T) {
	service := new(MockAdmissionService)
	service.On("SendTextForSubscriber", mock.Anything, testCaller, mock.Anything).
		Return(domain.ErrCapabilityMissing)
	router := newTestRouter(service)

	body, _ := json.Marshal(httptransport.SendMessageRequest{DestinationAddress: "1234", Text: "text"})
	req := httptest.NewRequest(http.MethodPost, "/subscriptions/1/messages", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}

func TestHandleSendText_ValidationFailures(t *testing.T) {
	service := new(MockAdmissionService)
	router := newTestRouter(service)

	cases := []struct {
		name string
		body httptransport.SendMessageRequest
	}{
		{"MissingDestination", httptransport.SendMessageRequest{Text: "text"}},
		{"MissingText", httptransport.SendMessageRequest{DestinationAddress: "1234"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body, _ := json.Marshal(tc.body)
			req := httptest.NewRequest(http.MethodPost, "/subscriptions/1/messages", bytes.NewReader(body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
	service.AssertNotCalled(t, "SendTextForSubscriber", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleSendText_InvalidSubscriptionID(t *testing.T) {
	service := new(MockAdmissionService)
	router := newTestRouter(service)

	body, _ := json.Marshal(httptransport.SendMessageRequest{DestinationAddress: "1234", Text: "text"})
	req := httptest.NewRequest(http.MethodPost, "/subscriptions/not-a-number/messages", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSendVisualVoicemail_Accepted(t *testing.T) {
	service := new(MockAdmissionService)
	service.On("SendVisualVoicemailSms", mock.Anything, testCaller, mock.Anything).Return(nil)
	router := newTestRouter(service)

	body, _ := json.Marshal(httptransport.SendMessageRequest{DestinationAddress: "1234", Text: "vvm"})
	req := httptest.NewRequest(http.MethodPost, "/subscriptions/1/vvm-messages", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	service.AssertExpectations(t)
}

func TestHandleFdnBlockQuery(t *testing.T) {
	service := new(MockAdmissionService)
	service.On("IsNumberBlockedByFDN", mock.Anything, 1, "1234").Return(true)
	router := newTestRouter(service)

	req := httptest.NewRequest(http.MethodGet, "/subscriptions/1/fdn-block?destination=1234", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp httptransport.FdnBlockResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Blocked)
	assert.Equal(t, 1, resp.SubscriptionID)
}

func TestHandleFdnBlockQuery_MissingDestination(t *testing.T) {
	service := new(MockAdmissionService)
	router := newTestRouter(service)

	req := httptest.NewRequest(http.MethodGet, "/subscriptions/1/fdn-block", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleWapMessageSize(t *testing.T) {
	service := new(MockAdmissionService)
	service.On("GetWapMessageSize", mock.Anything, "content://mms123").Return(int64(100), nil)
	router := newTestRouter(service)

	req := httptest.NewRequest(http.MethodGet, "/wap-messages/size?key=content%3A%2F%2Fmms123", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp httptransport.WapMessageSizeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(100), resp.Size)
}

func TestHandleWapMessageSize_UnknownKeyIsNotFound(t *testing.T) {
	service := new(MockAdmissionService)
	service.On("GetWapMessageSize", mock.Anything, "content://mms").Return(int64(0), domain.ErrCacheKeyNotFound)
	router := newTestRouter(service)

	req := httptest.NewRequest(http.MethodGet, "/wap-messages/size?key=content%3A%2F%2Fmms", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
