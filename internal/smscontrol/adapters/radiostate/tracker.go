// Package radiostate tracks per-line emergency callback state from radio
// layer events.
package radiostate

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/nats-io/nats.go"

	"github.com/Project-Pixelstar-Fifteen/frameworks-opt-telephony/internal/platform/messagebroker"
)

// EcmEvent is published by the radio layer whenever a line enters or leaves
// emergency callback mode.
type EcmEvent struct {
	SubscriptionID int  `json:"subscription_id"`
	InEcm          bool `json:"in_ecm"`
}

// Tracker keeps the latest ECM state per subscription. A line with no event
// yet is not in ECM.
type Tracker struct {
	mu     sync.RWMutex
	inEcm  map[int]bool
	logger *slog.Logger

	sub *nats.Subscription
}

// NewTracker creates an empty tracker.
func NewTracker(logger *slog.Logger) *Tracker {
	return &Tracker{
		inEcm:  make(map[int]bool),
		logger: logger.With("component", "radio_state_tracker"),
	}
}

// Apply records an ECM transition.
func (t *Tracker) Apply(event EcmEvent) {
	t.mu.Lock()
	t.inEcm[event.SubscriptionID] = event.InEcm
	t.mu.Unlock()
}

// IsInEcm reports the current emergency callback state of the line.
func (t *Tracker) IsInEcm(subscriptionID int) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.inEcm[subscriptionID]
}

// StartConsuming subscribes to the radio ECM state subject.
func (t *Tracker) StartConsuming(ctx context.Context, natsClient *messagebroker.NatsClient, subject string) error {
	sub, err := natsClient.Subscribe(ctx, subject, "", func(msg *nats.Msg) {
		var event EcmEvent
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			t.logger.Error("Failed to unmarshal ECM state event", "subject", msg.Subject, "error", err)
			return
		}
		t.Apply(event)
		t.logger.Info("ECM state changed", "subscription_id", event.SubscriptionID, "in_ecm", event.InEcm)
	})
	if err != nil {
		return err
	}
	t.sub = sub
	return nil
}

// StopConsuming unsubscribes from the ECM state subject.
func (t *Tracker) StopConsuming() {
	if t.sub != nil {
		_ = t.sub.Unsubscribe()
		t.sub = nil
	}
}
