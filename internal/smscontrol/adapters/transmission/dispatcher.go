// Package transmission forwards admitted send requests to the radio
// dispatch layer.
package transmission

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Project-Pixelstar-Fifteen/frameworks-opt-telephony/internal/smscontrol/domain"
)

// Publisher is the messaging capability the dispatcher needs.
type Publisher interface {
	Publish(ctx context.Context, subject string, data []byte) error
}

// NatsDispatcher publishes admitted requests, unmodified, to the radio
// dispatch subject. Fire-and-forget: sent/delivery results flow back through
// the callback tokens carried on the request.
type NatsDispatcher struct {
	publisher Publisher
	subject   string
	logger    *slog.Logger
}

// NewNatsDispatcher creates the dispatcher.
func NewNatsDispatcher(publisher Publisher, subject string, logger *slog.Logger) *NatsDispatcher {
	return &NatsDispatcher{
		publisher: publisher,
		subject:   subject,
		logger:    logger.With("component", "transmission_dispatcher"),
	}
}

// Send serializes the request and hands it to the radio dispatch layer.
func (d *NatsDispatcher) Send(ctx context.Context, req *domain.SendRequest) error {
	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal send request %s: %w", req.ID, err)
	}
	if err := d.publisher.Publish(ctx, d.subject, data); err != nil {
		return fmt.Errorf("failed to dispatch send request %s: %w", req.ID, err)
	}
	d.logger.DebugContext(ctx, "Send request dispatched",
		"request_id", req.ID,
		"subscription_id", req.SubscriptionID,
		"visual_voicemail", req.VisualVoicemail)
	return nil
}
