package guard

// RadioLineState exposes the emergency callback state of a line.
type RadioLineState interface {
	IsInEcm(subscriptionID int) bool
}

// EcmGate suppresses visual voicemail sends while the line is in emergency
// callback mode. Suppression is a silent no-op: no transmission attempt and
// no error surfaced to the caller.
type EcmGate struct {
	radio RadioLineState
}

// NewEcmGate creates the gate.
func NewEcmGate(radio RadioLineState) *EcmGate {
	return &EcmGate{radio: radio}
}

// ShouldSuppress reports whether the send must be dropped.
func (g *EcmGate) ShouldSuppress(subscriptionID int) bool {
	return g.radio.IsInEcm(subscriptionID)
}
