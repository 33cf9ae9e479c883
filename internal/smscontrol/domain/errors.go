package domain

import "errors"

// The only two admission failures surfaced to callers. Every other denial is
// a silent no-send: the request is dropped without an error, matching the
// best-effort contract of the telephony stack.
var (
	// ErrCapabilityMissing reports that a required platform capability is
	// absent while feature enforcement applies to the caller.
	ErrCapabilityMissing = errors.New("required telephony capability is not present on this device")

	// ErrCacheKeyNotFound reports a lookup of a WAP push size cache key that
	// was never written (or was cleared). Callers treat it as size-unknown.
	ErrCacheKeyNotFound = errors.New("no wap push size entry for key")
)
