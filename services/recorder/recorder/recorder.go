package recorder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/iulianpascalau/site-monitoring/services/recorder/common"
	"github.com/iulianpascalau/site-monitoring/services/recorder/notification"
	"github.com/multiversx/mx-chain-core-go/core/check"
	logger "github.com/multiversx/mx-chain-logger-go"
)

const defaultTTLDays = 90

var log = logger.GetOrCreate("recorder")

// historyRecorder turns raw notification batches into durable history records
type historyRecorder struct {
	storage Storage
	ttl     time.Duration
}

// NewHistoryRecorder creates a new recorder writing through the provided
// storage. The storage client is injected and its lifecycle is owned by the
// hosting process: constructed once at start, reused for every batch.
func NewHistoryRecorder(storage Storage, ttlDays int) (*historyRecorder, error) {
	if check.IfNil(storage) {
		return nil, errors.New("nil storage")
	}
	if ttlDays <= 0 {
		ttlDays = defaultTTLDays
	}

	return &historyRecorder{
		storage: storage,
		ttl:     time.Duration(ttlDays) * 24 * time.Hour,
	}, nil
}

// HandleBatch records every message of one notification delivery. Messages
// are processed independently: a malformed payload still yields a record
// through the parser's fallback, so one bad message never blocks the rest of
// the batch. A storage write failure however is not caught here, it fails the
// whole invocation and leaves the retry to the notification channel's
// redelivery; already-written messages of the batch get re-upserted then,
// which is safe because writes are idempotent by key.
func (r *historyRecorder) HandleBatch(ctx context.Context, messages []string) ([]common.RecordSummary, error) {
	summaries := make([]common.RecordSummary, 0, len(messages))

	for idx, raw := range messages {
		ingestedAt := time.Now()
		ev := notification.Parse(raw, ingestedAt)

		rec := &common.HistoryRecord{
			AlarmName:         ev.AlarmName,
			StateChangeTime:   ev.StateChangeTime,
			RecordID:          uuid.NewString(),
			NewState:          ev.NewState,
			OldState:          ev.OldState,
			Reason:            ev.Reason,
			Region:            ev.Region,
			MetricName:        ev.MetricName,
			Namespace:         ev.Namespace,
			Threshold:         ev.Threshold,
			Comparison:        ev.Comparison,
			EvaluationPeriods: ev.EvaluationPeriods,
			DatapointsToAlarm: ev.DatapointsToAlarm,
			ExpiresAt:         ingestedAt.Add(r.ttl).Unix(),
			RawPayload:        ev.Raw,
		}

		err := r.storage.SaveRecord(ctx, rec)
		if err != nil {
			return nil, fmt.Errorf("failed to save message %d of %d: %w", idx+1, len(messages), err)
		}

		log.Debug("recorded alarm transition", "alarm", rec.AlarmName, "new_state", rec.NewState,
			"state_change_time", rec.StateChangeTime, "record_id", rec.RecordID)

		summaries = append(summaries, common.RecordSummary{
			AlarmName:       rec.AlarmName,
			NewState:        rec.NewState,
			StateChangeTime: rec.StateChangeTime,
		})
	}

	return summaries, nil
}

// IsInterfaceNil returns true if the value under the interface is nil
func (r *historyRecorder) IsInterfaceNil() bool {
	return r == nil
}
