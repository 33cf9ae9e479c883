package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Project-Pixelstar-Fifteen/frameworks-opt-telephony/internal/smscontrol/repository"
)

// PgSubscriptionUserRegistry reads the subscription_users table maintained
// by the account management service:
//
//	CREATE TABLE subscription_users (
//	    subscription_id INT  NOT NULL,
//	    user_id         INT  NOT NULL,
//	    PRIMARY KEY (subscription_id, user_id)
//	);
type PgSubscriptionUserRegistry struct {
	db     repository.Querier
	logger *slog.Logger
}

func NewPgSubscriptionUserRegistry(db repository.Querier, logger *slog.Logger) *PgSubscriptionUserRegistry {
	return &PgSubscriptionUserRegistry{db: db, logger: logger.With("component", "subscription_user_registry_pg")}
}

func (r *PgSubscriptionUserRegistry) IsAssociated(ctx context.Context, subscriptionID, userID int) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM subscription_users WHERE subscription_id = $1 AND user_id = $2)`

	var associated bool
	if err := r.db.QueryRow(ctx, query, subscriptionID, userID).Scan(&associated); err != nil {
		return false, fmt.Errorf("checking subscription association: %w", err)
	}
	return associated, nil
}
