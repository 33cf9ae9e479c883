package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Project-Pixelstar-Fifteen/frameworks-opt-telephony/internal/smscontrol/domain"
	"github.com/Project-Pixelstar-Fifteen/frameworks-opt-telephony/internal/smscontrol/repository"
)

// PgDecisionJournal appends admission outcomes to the send_decisions table:
//
//	CREATE TABLE send_decisions (
//	    id              UUID        PRIMARY KEY,
//	    subscription_id INT         NOT NULL,
//	    calling_package TEXT        NOT NULL,
//	    calling_user_id INT         NOT NULL,
//	    destination     TEXT        NOT NULL,
//	    gate            TEXT        NOT NULL,
//	    allowed         BOOLEAN     NOT NULL,
//	    reason          TEXT        NOT NULL DEFAULT '',
//	    created_at      TIMESTAMPTZ NOT NULL
//	);
type PgDecisionJournal struct {
	db     repository.Querier
	logger *slog.Logger
}

func NewPgDecisionJournal(db repository.Querier, logger *slog.Logger) *PgDecisionJournal {
	return &PgDecisionJournal{db: db, logger: logger.With("component", "decision_journal_pg")}
}

func (j *PgDecisionJournal) Record(ctx context.Context, record domain.DecisionRecord) error {
	const query = `
        INSERT INTO send_decisions (id, subscription_id, calling_package, calling_user_id, destination, gate, allowed, reason, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := j.db.Exec(ctx, query,
		record.ID,
		record.SubscriptionID,
		record.CallingPackage,
		record.CallingUserID,
		record.Destination,
		record.Gate,
		record.Allowed,
		record.Reason,
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting send decision: %w", err)
	}
	return nil
}
