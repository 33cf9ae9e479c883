// Package platformfeature exposes the device's declared platform features.
package platformfeature

// Registry answers feature presence queries. The feature set is fixed for
// the lifetime of the process, mirroring the device feature declarations it
// is loaded from.
type Registry struct {
	features map[string]struct{}
}

// NewRegistry builds a registry from the configured feature list.
func NewRegistry(features []string) *Registry {
	set := make(map[string]struct{}, len(features))
	for _, f := range features {
		set[f] = struct{}{}
	}
	return &Registry{features: set}
}

// HasFeature reports whether the device declares featureID.
func (r *Registry) HasFeature(featureID string) bool {
	_, ok := r.features[featureID]
	return ok
}
