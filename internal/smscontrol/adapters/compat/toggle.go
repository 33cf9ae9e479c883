// Package compat evaluates staged compatibility changes per caller.
package compat

import (
	"sync"

	"github.com/Project-Pixelstar-Fifteen/frameworks-opt-telephony/internal/platform/config"
	"github.com/Project-Pixelstar-Fifteen/frameworks-opt-telephony/internal/smscontrol/domain"
)

// Toggle decides whether a compatibility change applies to a caller.
// Resolution order: explicit package opt-out, explicit package opt-in,
// target SDK floor, then the ramp default. Unknown change ids are disabled.
// The change table is hot-reloadable via the config watcher.
type Toggle struct {
	mu      sync.RWMutex
	changes map[string]config.CompatChange
}

// NewToggle creates a toggle over the configured change table.
func NewToggle(changes map[string]config.CompatChange) *Toggle {
	return &Toggle{changes: changes}
}

// Reload swaps in a fresh change table.
func (t *Toggle) Reload(changes map[string]config.CompatChange) {
	t.mu.Lock()
	t.changes = changes
	t.mu.Unlock()
}

// IsEnabledForCaller reports whether changeID applies to the caller.
func (t *Toggle) IsEnabledForCaller(changeID string, caller domain.Caller) bool {
	t.mu.RLock()
	change, ok := t.changes[changeID]
	t.mu.RUnlock()
	if !ok {
		return false
	}

	for _, pkg := range change.DisabledPackages {
		if pkg == caller.Package {
			return false
		}
	}
	for _, pkg := range change.EnabledPackages {
		if pkg == caller.Package {
			return true
		}
	}
	if change.MinTargetSdk > 0 && caller.TargetSdk < change.MinTargetSdk {
		return false
	}
	return change.DefaultEnabled
}
