package api

import (
	"context"

	"github.com/iulianpascalau/site-monitoring/services/recorder/common"
)

// Recorder defines the interface for recording notification batches
type Recorder interface {
	// HandleBatch records every message of one notification delivery and
	// returns one acknowledgement summary per recorded message
	HandleBatch(ctx context.Context, messages []string) ([]common.RecordSummary, error)

	IsInterfaceNil() bool
}

// Storage defines the interface for querying the persisted alarm history
type Storage interface {
	// GetAlarmHistory returns all retained transitions of one alarm in chronological order
	GetAlarmHistory(ctx context.Context, alarmName string) ([]common.HistoryRecord, error)

	// GetAlarmNames returns the distinct alarm names present in the history
	GetAlarmNames(ctx context.Context) ([]string, error)

	// Close shuts down the database connection
	Close() error

	IsInterfaceNil() bool
}
