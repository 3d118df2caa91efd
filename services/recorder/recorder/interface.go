package recorder

import (
	"context"

	"github.com/iulianpascalau/site-monitoring/services/recorder/common"
)

// Storage defines the write side of the durable store the recorder needs
type Storage interface {
	// SaveRecord upserts one history record by its (alarm_name, state_change_time) key
	SaveRecord(ctx context.Context, rec *common.HistoryRecord) error

	IsInterfaceNil() bool
}
