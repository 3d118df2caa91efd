package testsCommon

import (
	"context"

	"github.com/iulianpascalau/site-monitoring/services/recorder/common"
)

// RecorderStub -
type RecorderStub struct {
	HandleBatchHandler func(ctx context.Context, messages []string) ([]common.RecordSummary, error)
}

// HandleBatch -
func (stub *RecorderStub) HandleBatch(ctx context.Context, messages []string) ([]common.RecordSummary, error) {
	if stub.HandleBatchHandler != nil {
		return stub.HandleBatchHandler(ctx, messages)
	}

	return make([]common.RecordSummary, 0), nil
}

// IsInterfaceNil -
func (stub *RecorderStub) IsInterfaceNil() bool {
	return stub == nil
}
