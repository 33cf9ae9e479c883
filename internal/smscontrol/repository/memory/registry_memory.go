package memory

import (
	"context"
	"sync"
)

// InMemorySubscriptionUserRegistry holds associations in process memory.
// Used by tests and single-user development deployments that run without
// Postgres.
type InMemorySubscriptionUserRegistry struct {
	mu           sync.RWMutex
	associations map[int]map[int]struct{}
}

func NewInMemorySubscriptionUserRegistry() *InMemorySubscriptionUserRegistry {
	return &InMemorySubscriptionUserRegistry{
		associations: make(map[int]map[int]struct{}),
	}
}

// Associate links a subscription to a user.
func (r *InMemorySubscriptionUserRegistry) Associate(subscriptionID, userID int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users, ok := r.associations[subscriptionID]
	if !ok {
		users = make(map[int]struct{})
		r.associations[subscriptionID] = users
	}
	users[userID] = struct{}{}
}

// Dissociate removes a link.
func (r *InMemorySubscriptionUserRegistry) Dissociate(subscriptionID, userID int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.associations[subscriptionID], userID)
}

func (r *InMemorySubscriptionUserRegistry) IsAssociated(_ context.Context, subscriptionID, userID int) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.associations[subscriptionID][userID]
	return ok, nil
}
