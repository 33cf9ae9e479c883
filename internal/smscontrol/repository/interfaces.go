package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Project-Pixelstar-Fifteen/frameworks-opt-telephony/internal/smscontrol/domain"
)

// Querier is the subset of pgxpool.Pool the repositories need; it keeps the
// implementations mockable.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// SubscriptionUserRegistry resolves subscription-to-user associations.
type SubscriptionUserRegistry interface {
	IsAssociated(ctx context.Context, subscriptionID, userID int) (bool, error)
}

// DecisionJournal records admission outcomes for audit. Implementations are
// best-effort; a journaling failure must never block an admitted send.
type DecisionJournal interface {
	Record(ctx context.Context, record domain.DecisionRecord) error
}
