package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Project-Pixelstar-Fifteen/frameworks-opt-telephony/internal/smscontrol/domain"
)

type stubFeatureRegistry struct {
	features map[string]bool
}

func (s stubFeatureRegistry) HasFeature(featureID string) bool {
	return s.features[featureID]
}

type stubCompatToggle struct {
	enabled bool
}

func (s stubCompatToggle) IsEnabledForCaller(changeID string, caller domain.Caller) bool {
	return s.enabled
}

func TestFeatureRequirementGate_ToggleDisabledAllowsRegardlessOfFeature(t *testing.T) {
	g := NewFeatureRequirementGate(stubFeatureRegistry{features: map[string]bool{}}, stubCompatToggle{enabled: false})

	decision := g.CheckRequired(domain.Caller{Package: "com.example.messaging"},
		domain.FeatureTelephonyMessaging, domain.CompatEnforceTelephonyFeatureMapping)

	assert.True(t, decision.Allowed)
}

func TestFeatureRequirementGate_ToggleEnabledFeatureMissingFailsClosed(t *testing.T) {
	g := NewFeatureRequirementGate(stubFeatureRegistry{features: map[string]bool{}}, stubCompatToggle{enabled: true})

	decision := g.CheckRequired(domain.Caller{Package: "com.example.messaging"},
		domain.FeatureTelephonyMessaging, domain.CompatEnforceTelephonyFeatureMapping)

	assert.False(t, decision.Allowed)
	assert.ErrorIs(t, decision.Err, domain.ErrCapabilityMissing)
}

func TestFeatureRequirementGate_ToggleEnabledFeaturePresentAllows(t *testing.T) {
	registry := stubFeatureRegistry{features: map[string]bool{domain.FeatureTelephonyMessaging: true}}
	g := NewFeatureRequirementGate(registry, stubCompatToggle{enabled: true})

	decision := g.CheckRequired(domain.Caller{Package: "com.example.messaging"},
		domain.FeatureTelephonyMessaging, domain.CompatEnforceTelephonyFeatureMapping)

	assert.True(t, decision.Allowed)
}
