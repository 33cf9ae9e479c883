package guard

import (
	"github.com/Project-Pixelstar-Fifteen/frameworks-opt-telephony/internal/smscontrol/domain"
)

// PlatformFeatureRegistry answers whether the device declares a platform
// feature.
type PlatformFeatureRegistry interface {
	HasFeature(featureID string) bool
}

// CompatibilityToggle answers whether a staged behavioral change applies to
// a caller.
type CompatibilityToggle interface {
	IsEnabledForCaller(changeID string, caller domain.Caller) bool
}

// FeatureRequirementGate holds newly-onboarded callers to a strict
// capability contract: when the compatibility change applies to the caller
// and the device lacks the required feature, the call fails closed. Legacy
// callers, for whom the change is off, stay ungated.
type FeatureRequirementGate struct {
	features PlatformFeatureRegistry
	compat   CompatibilityToggle
}

// NewFeatureRequirementGate creates the gate.
func NewFeatureRequirementGate(features PlatformFeatureRegistry, compat CompatibilityToggle) *FeatureRequirementGate {
	return &FeatureRequirementGate{features: features, compat: compat}
}

// CheckRequired evaluates the gate for one caller and one required feature.
func (g *FeatureRequirementGate) CheckRequired(caller domain.Caller, featureID, changeID string) domain.AccessDecision {
	if !g.compat.IsEnabledForCaller(changeID, caller) {
		return domain.Allow(domain.GateFeatureRequirement)
	}
	if g.features.HasFeature(featureID) {
		return domain.Allow(domain.GateFeatureRequirement)
	}
	return domain.DenyWithError(domain.GateFeatureRequirement,
		"feature "+featureID+" required but not declared by this device",
		domain.ErrCapabilityMissing)
}
