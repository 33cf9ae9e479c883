package app

import (
	"context"

	"github.com/Project-Pixelstar-Fifteen/frameworks-opt-telephony/internal/smscontrol/domain"
)

// SimProfile exposes the SIM state the pipeline consults before running the
// FDN evaluation. All queries are over already-resident snapshots.
type SimProfile interface {
	IsFdnAvailable(subscriptionID int) bool
	IsFdnEnabled(subscriptionID int) bool
	SmscAddress(subscriptionID int) string
}

// AdnRecordSource supplies the FDN records when the SIM service has loaded
// them; loaded=false means "not yet available", which the pipeline treats as
// an empty list.
type AdnRecordSource interface {
	FdnRecordsIfLoaded(subscriptionID int) (records []domain.FdnRecord, loaded bool)
}

// EmergencyNumberClassifier recognizes regulatory emergency numbers.
type EmergencyNumberClassifier interface {
	IsEmergencyNumber(number string) bool
}

// TransmissionDispatcher forwards a fully admitted request to the radio
// dispatch layer.
type TransmissionDispatcher interface {
	Send(ctx context.Context, req *domain.SendRequest) error
}
