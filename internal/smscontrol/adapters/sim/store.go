// Package sim mirrors the SIM profile state this service decides on. The
// SIM service owns the elementary files; it publishes a snapshot per
// subscription whenever the profile or the FDN records change, and this
// store keeps only the latest snapshot. Reads never block on SIM I/O: a
// subscription without a snapshot simply reports FDN unavailable and
// records not loaded.
package sim

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/nats-io/nats.go"

	"github.com/Project-Pixelstar-Fifteen/frameworks-opt-telephony/internal/platform/messagebroker"
	"github.com/Project-Pixelstar-Fifteen/frameworks-opt-telephony/internal/smscontrol/domain"
)

// Snapshot is the per-subscription SIM profile state as published by the
// SIM service.
type Snapshot struct {
	SubscriptionID int                `json:"subscription_id"`
	FdnAvailable   bool               `json:"fdn_available"`
	FdnEnabled     bool               `json:"fdn_enabled"`
	SmscAddress    string             `json:"smsc_address"`
	FdnLoaded      bool               `json:"fdn_loaded"`
	FdnRecords     []domain.FdnRecord `json:"fdn_records"`
}

// Store holds the latest snapshot per subscription.
type Store struct {
	mu     sync.RWMutex
	bySub  map[int]Snapshot
	logger *slog.Logger

	sub *nats.Subscription
}

// NewStore creates an empty store.
func NewStore(logger *slog.Logger) *Store {
	return &Store{
		bySub:  make(map[int]Snapshot),
		logger: logger.With("component", "sim_store"),
	}
}

// Apply replaces the snapshot for a subscription.
func (s *Store) Apply(snap Snapshot) {
	s.mu.Lock()
	s.bySub[snap.SubscriptionID] = snap
	s.mu.Unlock()
}

// IsFdnAvailable reports whether the SIM application supports FDN.
func (s *Store) IsFdnAvailable(subscriptionID int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bySub[subscriptionID].FdnAvailable
}

// IsFdnEnabled reports whether the FDN restriction is switched on.
func (s *Store) IsFdnEnabled(subscriptionID int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bySub[subscriptionID].FdnEnabled
}

// SmscAddress returns the message center address stored on the SIM, or ""
// when no snapshot has arrived yet.
func (s *Store) SmscAddress(subscriptionID int) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bySub[subscriptionID].SmscAddress
}

// FdnRecordsIfLoaded returns the FDN records and whether the SIM service has
// loaded them. Callers must treat unloaded records as an empty list, never
// as an error.
func (s *Store) FdnRecordsIfLoaded(subscriptionID int) ([]domain.FdnRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.bySub[subscriptionID]
	if !ok || !snap.FdnLoaded {
		return nil, false
	}
	return snap.FdnRecords, true
}

// StartConsuming subscribes to the SIM profile snapshot subject.
func (s *Store) StartConsuming(ctx context.Context, natsClient *messagebroker.NatsClient, subject string) error {
	sub, err := natsClient.Subscribe(ctx, subject, "", func(msg *nats.Msg) {
		var snap Snapshot
		if err := json.Unmarshal(msg.Data, &snap); err != nil {
			s.logger.Error("Failed to unmarshal SIM profile snapshot", "subject", msg.Subject, "error", err)
			return
		}
		s.Apply(snap)
		s.logger.Debug("SIM profile snapshot applied",
			"subscription_id", snap.SubscriptionID,
			"fdn_available", snap.FdnAvailable,
			"fdn_enabled", snap.FdnEnabled,
			"fdn_loaded", snap.FdnLoaded,
			"fdn_records", len(snap.FdnRecords))
	})
	if err != nil {
		return err
	}
	s.sub = sub
	return nil
}

// StopConsuming unsubscribes from the snapshot subject.
func (s *Store) StopConsuming() {
	if s.sub != nil {
		_ = s.sub.Unsubscribe()
		s.sub = nil
	}
}
