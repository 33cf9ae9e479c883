package transmission

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Project-Pixelstar-Fifteen/frameworks-opt-telephony/internal/smscontrol/domain"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, subject string, data []byte) error {
	args := m.Called(ctx, subject, data)
	return args.Error(0)
}

func TestNatsDispatcher_PublishesUnmodifiedRequest(t *testing.T) {
	publisher := new(MockPublisher)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dispatcher := NewNatsDispatcher(publisher, "radio.sms.dispatch", logger)

	req := &domain.SendRequest{
		ID:                  "req-1",
		SubscriptionID:      1,
		CallingPackage:      "com.example.messaging",
		CallingUserID:       10,
		DestinationAddress:  "1234",
		Text:                "text",
		SentIntentToken:     "sent-token",
		DeliveryIntentToken: "delivery-token",
	}

	var published []byte
	publisher.On("Publish", mock.Anything, "radio.sms.dispatch", mock.Anything).
		Run(func(args mock.Arguments) { published = args.Get(2).([]byte) }).
		Return(nil)

	require.NoError(t, dispatcher.Send(context.Background(), req))

	var roundTripped domain.SendRequest
	require.NoError(t, json.Unmarshal(published, &roundTripped))
	assert.Equal(t, *req, roundTripped, "caller-supplied fields, callbacks included, must survive dispatch")
	publisher.AssertExpectations(t)
}

func TestNatsDispatcher_PublishFailureIsReturned(t *testing.T) {
	publisher := new(MockPublisher)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dispatcher := NewNatsDispatcher(publisher, "radio.sms.dispatch", logger)

	publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("nats down"))

	err := dispatcher.Send(context.Background(), &domain.SendRequest{ID: "req-2"})
	assert.Error(t, err)
}
