// Package emergency classifies destination numbers against the configured
// emergency number list.
package emergency

// Classifier answers emergency-number queries from a fixed set. The set
// comes from configuration (regulatory numbers for the device's region);
// matching is exact, consistent with the FDN evaluator.
type Classifier struct {
	numbers map[string]struct{}
}

// NewClassifier builds a classifier from the configured number list.
func NewClassifier(numbers []string) *Classifier {
	set := make(map[string]struct{}, len(numbers))
	for _, n := range numbers {
		set[n] = struct{}{}
	}
	return &Classifier{numbers: set}
}

// IsEmergencyNumber reports whether number is on the emergency list.
func (c *Classifier) IsEmergencyNumber(number string) bool {
	_, ok := c.numbers[number]
	return ok
}
