package fdn

import (
	"github.com/Project-Pixelstar-Fifteen/frameworks-opt-telephony/internal/smscontrol/domain"
)

// IsBlocked reports whether an outbound message to destinationAddress routed
// through serviceCenterAddress must be rejected under the SIM fixed dialing
// number restriction.
//
// The carrier rule allow-lists message-center/destination pairs: the send is
// permitted only when the FDN file contains an entry matching the destination
// AND an entry matching the service center. Requiring both ends closes the
// spoofed-center bypass a destination-only match would leave open.
//
// Emergency destinations are never blocked, whatever the list contains.
// Matching is exact string equality on the stored number; an unloaded list is
// evaluated as empty, which blocks everything non-emergency while the
// restriction is enabled.
//
// Callers are expected to consult FDN availability/enablement first; this
// function only evaluates the list it is given.
func IsBlocked(records []domain.FdnRecord, destinationAddress, serviceCenterAddress string, isEmergencyNumber bool) bool {
	if isEmergencyNumber {
		return false
	}

	destinationListed := false
	centerListed := false
	for _, rec := range records {
		if rec.Number == destinationAddress {
			destinationListed = true
		}
		if rec.Number == serviceCenterAddress {
			centerListed = true
		}
		if destinationListed && centerListed {
			return false
		}
	}
	return true
}
