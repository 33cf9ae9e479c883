package domain

// FdnRecord is one entry of the SIM fixed dialing number elementary file.
// Records are immutable once read from the SIM; the evaluator only ever
// borrows a snapshot slice of them.
type FdnRecord struct {
	// Tag is the optional alpha identifier stored next to the number.
	Tag string `json:"tag,omitempty"`
	// Number is the allow-listed phone number string, exactly as stored.
	Number string `json:"number"`
}
