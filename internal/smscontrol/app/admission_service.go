package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Project-Pixelstar-Fifteen/frameworks-opt-telephony/internal/smscontrol/domain"
	"github.com/Project-Pixelstar-Fifteen/frameworks-opt-telephony/internal/smscontrol/fdn"
	"github.com/Project-Pixelstar-Fifteen/frameworks-opt-telephony/internal/smscontrol/guard"
	"github.com/Project-Pixelstar-Fifteen/frameworks-opt-telephony/internal/smscontrol/repository"
	"github.com/Project-Pixelstar-Fifteen/frameworks-opt-telephony/internal/smscontrol/wappush"
)

// SmsAdmissionService is the single admission path every outbound short
// message passes before it reaches the radio layer. Gates run in a fixed
// order and are re-evaluated from collaborator state on every call; a denial
// is terminal for that request.
//
// Denial semantics are deliberately asymmetric: capability failures surface
// as domain.ErrCapabilityMissing, while authorization, FDN and ECM denials
// drop the send silently. Unifying them would change caller-visible
// behavior.
type SmsAdmissionService struct {
	simProfile SimProfile
	adnRecords AdnRecordSource
	emergency  EmergencyNumberClassifier

	subscriptionGuard *guard.SubscriptionAccessGuard
	ecmGate           *guard.EcmGate
	featureGate       *guard.FeatureRequirementGate

	wapCache   wappush.Store
	dispatcher TransmissionDispatcher
	journal    repository.DecisionJournal
	logger     *slog.Logger
}

// NewSmsAdmissionService wires the pipeline. journal may be nil when
// decision auditing is not configured.
func NewSmsAdmissionService(
	simProfile SimProfile,
	adnRecords AdnRecordSource,
	emergency EmergencyNumberClassifier,
	subscriptionGuard *guard.SubscriptionAccessGuard,
	ecmGate *guard.EcmGate,
	featureGate *guard.FeatureRequirementGate,
	wapCache wappush.Store,
	dispatcher TransmissionDispatcher,
	journal repository.DecisionJournal,
	logger *slog.Logger,
) *SmsAdmissionService {
	return &SmsAdmissionService{
		simProfile:        simProfile,
		adnRecords:        adnRecords,
		emergency:         emergency,
		subscriptionGuard: subscriptionGuard,
		ecmGate:           ecmGate,
		featureGate:       featureGate,
		wapCache:          wapCache,
		dispatcher:        dispatcher,
		journal:           journal,
		logger:            logger.With("service", "sms_admission"),
	}
}

// IsNumberBlockedByFDN reports whether the FDN restriction blocks a message
// to destinationAddress on the given subscription. When FDN is unavailable
// or disabled the restriction does not apply and nothing is blocked. The
// SMSC address is read from the SIM profile so a spoofed center cannot
// bypass the pair rule.
func (s *SmsAdmissionService) IsNumberBlockedByFDN(ctx context.Context, subscriptionID int, destinationAddress string) bool {
	if !s.simProfile.IsFdnAvailable(subscriptionID) || !s.simProfile.IsFdnEnabled(subscriptionID) {
		return false
	}

	records, loaded := s.adnRecords.FdnRecordsIfLoaded(subscriptionID)
	if !loaded {
		// Not an error: unloaded records evaluate as an empty allow-list,
		// which blocks while the restriction is enabled.
		records = nil
	}

	smscAddress := s.simProfile.SmscAddress(subscriptionID)
	blocked := fdn.IsBlocked(records, destinationAddress, smscAddress,
		s.emergency.IsEmergencyNumber(destinationAddress))

	if blocked {
		fdnEvaluationsCounter.WithLabelValues("blocked").Inc()
	} else {
		fdnEvaluationsCounter.WithLabelValues("allowed").Inc()
	}
	return blocked
}

// SendTextForSubscriber runs the full admission chain for a regular text
// send. The returned error is non-nil only for the capability gate; every
// other denial drops the request silently.
func (s *SmsAdmissionService) SendTextForSubscriber(ctx context.Context, caller domain.Caller, req *domain.SendRequest) error {
	s.prepare(caller, req)

	if decision := s.featureGate.CheckRequired(caller, domain.FeatureTelephonyMessaging, domain.CompatEnforceTelephonyFeatureMapping); !decision.Allowed {
		s.recordDeny(ctx, caller, req, decision)
		return decision.Err
	}
	admissionDecisionsCounter.WithLabelValues(domain.GateFeatureRequirement, "allow").Inc()

	if decision := s.subscriptionGuard.Authorize(ctx, caller, req.SubscriptionID); !decision.Allowed {
		s.recordDeny(ctx, caller, req, decision)
		return nil
	}
	admissionDecisionsCounter.WithLabelValues(domain.GateSubscriptionAccess, "allow").Inc()

	if s.IsNumberBlockedByFDN(ctx, req.SubscriptionID, req.DestinationAddress) {
		s.recordDeny(ctx, caller, req, domain.Deny(domain.GateFdnRestriction, "destination/center pair not on the FDN allow-list"))
		return nil
	}
	admissionDecisionsCounter.WithLabelValues(domain.GateFdnRestriction, "allow").Inc()

	return s.dispatch(ctx, caller, req, "text")
}

// SendVisualVoicemailSms runs the admission chain for a visual voicemail
// send. On top of the shared gates, emergency callback mode suppresses the
// send entirely; the suppression is a silent no-op.
func (s *SmsAdmissionService) SendVisualVoicemailSms(ctx context.Context, caller domain.Caller, req *domain.SendRequest) error {
	req.VisualVoicemail = true
	s.prepare(caller, req)

	if decision := s.featureGate.CheckRequired(caller, domain.FeatureTelephonyMessaging, domain.CompatEnforceTelephonyFeatureMapping); !decision.Allowed {
		s.recordDeny(ctx, caller, req, decision)
		return decision.Err
	}
	admissionDecisionsCounter.WithLabelValues(domain.GateFeatureRequirement, "allow").Inc()

	if decision := s.subscriptionGuard.Authorize(ctx, caller, req.SubscriptionID); !decision.Allowed {
		s.recordDeny(ctx, caller, req, decision)
		return nil
	}
	admissionDecisionsCounter.WithLabelValues(domain.GateSubscriptionAccess, "allow").Inc()

	if s.ecmGate.ShouldSuppress(req.SubscriptionID) {
		s.recordDeny(ctx, caller, req, domain.Deny(domain.GateEcm, "line is in emergency callback mode"))
		return nil
	}
	admissionDecisionsCounter.WithLabelValues(domain.GateEcm, "allow").Inc()

	return s.dispatch(ctx, caller, req, "visual_voicemail")
}

// GetWapMessageSize returns the size learned for a WAP push composite key.
// Absent keys surface domain.ErrCacheKeyNotFound; callers treat that as
// size-unknown.
func (s *SmsAdmissionService) GetWapMessageSize(ctx context.Context, compositeKeyText string) (int64, error) {
	size, err := s.wapCache.Get(ctx, compositeKeyText)
	if err != nil {
		wapSizeLookupCounter.WithLabelValues("miss").Inc()
		return 0, err
	}
	wapSizeLookupCounter.WithLabelValues("hit").Inc()
	return size, nil
}

// PutWapMessageSize records the size of an inbound WAP push message under
// location||transactionID. Invoked by the WAP push receive path.
func (s *SmsAdmissionService) PutWapMessageSize(ctx context.Context, location, transactionID []byte, size int64) error {
	return s.wapCache.Put(ctx, location, transactionID, size)
}

// prepare stamps the request with its caller identity and an id for the
// decision journal.
func (s *SmsAdmissionService) prepare(caller domain.Caller, req *domain.SendRequest) {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	req.CallingPackage = caller.Package
	req.CallingUserID = caller.UserID
}

func (s *SmsAdmissionService) dispatch(ctx context.Context, caller domain.Caller, req *domain.SendRequest, kind string) error {
	if err := s.dispatcher.Send(ctx, req); err != nil {
		// The request was admitted; a dispatch transport failure is an
		// infrastructure problem, not an admission denial.
		s.logger.ErrorContext(ctx, "Failed to dispatch admitted send request",
			"request_id", req.ID, "subscription_id", req.SubscriptionID, "error", err)
		return err
	}

	sendsDispatchedCounter.WithLabelValues(kind).Inc()
	s.journalDecision(ctx, caller, req, domain.AccessDecision{Allowed: true, Gate: "admitted"})
	return nil
}

func (s *SmsAdmissionService) recordDeny(ctx context.Context, caller domain.Caller, req *domain.SendRequest, decision domain.AccessDecision) {
	admissionDecisionsCounter.WithLabelValues(decision.Gate, "deny").Inc()
	s.logger.InfoContext(ctx, "Send request denied",
		"request_id", req.ID,
		"subscription_id", req.SubscriptionID,
		"calling_package", caller.Package,
		"calling_user_id", caller.UserID,
		"gate", decision.Gate,
		"reason", decision.Reason)
	s.journalDecision(ctx, caller, req, decision)
}

func (s *SmsAdmissionService) journalDecision(ctx context.Context, caller domain.Caller, req *domain.SendRequest, decision domain.AccessDecision) {
	if s.journal == nil {
		return
	}
	record := domain.DecisionRecord{
		ID:             uuid.NewString(),
		SubscriptionID: req.SubscriptionID,
		CallingPackage: caller.Package,
		CallingUserID:  caller.UserID,
		Destination:    req.DestinationAddress,
		Gate:           decision.Gate,
		Allowed:        decision.Allowed,
		Reason:         decision.Reason,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.journal.Record(ctx, record); err != nil {
		journalFailuresCounter.Inc()
		s.logger.WarnContext(ctx, "Failed to journal admission decision", "error", err)
	}
}
