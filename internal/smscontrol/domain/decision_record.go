package domain

import "time"

// DecisionRecord is one journaled admission outcome. Journaling is
// best-effort observability; it never influences the decision itself.
type DecisionRecord struct {
	ID             string
	SubscriptionID int
	CallingPackage string
	CallingUserID  int
	Destination    string
	Gate           string
	Allowed        bool
	Reason         string
	CreatedAt      time.Time
}
