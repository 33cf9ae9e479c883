package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Project-Pixelstar-Fifteen/frameworks-opt-telephony/internal/smscontrol/domain"
)

func TestPgDecisionJournal_Record(t *testing.T) {
	record := domain.DecisionRecord{
		ID:             uuid.NewString(),
		SubscriptionID: 1,
		CallingPackage: "com.example.messaging",
		CallingUserID:  10,
		Destination:    "1234",
		Gate:           domain.GateFdnRestriction,
		Allowed:        false,
		Reason:         "destination not allow-listed",
		CreatedAt:      time.Now().UTC(),
	}

	t.Run("Inserted", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()

		journal := NewPgDecisionJournal(mockPool, testLogger())

		mockPool.ExpectExec(`INSERT INTO send_decisions`).
			WithArgs(record.ID, record.SubscriptionID, record.CallingPackage, record.CallingUserID,
				record.Destination, record.Gate, record.Allowed, record.Reason, record.CreatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		assert.NoError(t, journal.Record(context.Background(), record))
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("InsertError", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()

		journal := NewPgDecisionJournal(mockPool, testLogger())

		mockPool.ExpectExec(`INSERT INTO send_decisions`).
			WillReturnError(errors.New("table missing"))

		assert.Error(t, journal.Record(context.Background(), record))
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}
