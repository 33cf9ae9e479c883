package domain

// Gate names used in decisions, logs and metrics.
const (
	GateFeatureRequirement = "feature_requirement"
	GateSubscriptionAccess = "subscription_access"
	GateFdnRestriction     = "fdn_restriction"
	GateEcm                = "ecm"
)

// AccessDecision is the outcome of one admission gate. A denial carries a
// diagnostic reason; Err is set only when the denial must surface to the
// caller instead of silently dropping the send.
type AccessDecision struct {
	Allowed bool
	Gate    string
	Reason  string
	Err     error
}

// Allow builds an allowing decision for a gate.
func Allow(gate string) AccessDecision {
	return AccessDecision{Allowed: true, Gate: gate}
}

// Deny builds a silently-denying decision for a gate.
func Deny(gate, reason string) AccessDecision {
	return AccessDecision{Gate: gate, Reason: reason}
}

// DenyWithError builds a denying decision that surfaces err to the caller.
func DenyWithError(gate, reason string, err error) AccessDecision {
	return AccessDecision{Gate: gate, Reason: reason, Err: err}
}
