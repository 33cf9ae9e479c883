// Package guard holds the per-request admission gates. Each gate is a
// synchronous decision over already-resident collaborator state; none of
// them performs retries or caches results across calls.
package guard

import (
	"context"
	"log/slog"

	"github.com/Project-Pixelstar-Fifteen/frameworks-opt-telephony/internal/smscontrol/domain"
)

// SubscriptionUserRegistry answers whether a subscription is associated with
// a calling user.
type SubscriptionUserRegistry interface {
	IsAssociated(ctx context.Context, subscriptionID, userID int) (bool, error)
}

// PermissionChecker answers whether a caller holds the cross-user
// interaction permission.
type PermissionChecker interface {
	HasCrossUserPermission(caller domain.Caller) bool
}

// GrantPermissionChecker checks the permission grants carried by the caller
// identity itself.
type GrantPermissionChecker struct{}

func (GrantPermissionChecker) HasCrossUserPermission(caller domain.Caller) bool {
	return caller.HasPermission(domain.PermissionInteractAcrossUsersFull)
}

// SubscriptionAccessGuard decides whether a caller may act on a
// subscription.
type SubscriptionAccessGuard struct {
	registry    SubscriptionUserRegistry
	permissions PermissionChecker
	logger      *slog.Logger
}

// NewSubscriptionAccessGuard creates the guard.
func NewSubscriptionAccessGuard(registry SubscriptionUserRegistry, permissions PermissionChecker, logger *slog.Logger) *SubscriptionAccessGuard {
	return &SubscriptionAccessGuard{
		registry:    registry,
		permissions: permissions,
		logger:      logger.With("gate", domain.GateSubscriptionAccess),
	}
}

// Authorize allows when the subscription is associated with the calling
// user. Only when that direct association fails is the cross-user permission
// consulted, so the common single-user path never requires the broad grant.
// A registry failure is treated as "not associated": the permission fallback
// still applies, and a caller without it is denied.
func (g *SubscriptionAccessGuard) Authorize(ctx context.Context, caller domain.Caller, subscriptionID int) domain.AccessDecision {
	associated, err := g.registry.IsAssociated(ctx, subscriptionID, caller.UserID)
	if err != nil {
		g.logger.ErrorContext(ctx, "Subscription association lookup failed",
			"subscription_id", subscriptionID, "user_id", caller.UserID, "error", err)
	}
	if associated {
		return domain.Allow(domain.GateSubscriptionAccess)
	}

	if g.permissions.HasCrossUserPermission(caller) {
		return domain.Allow(domain.GateSubscriptionAccess)
	}

	return domain.Deny(domain.GateSubscriptionAccess, "subscription not associated with calling user and cross-user permission not held")
}
