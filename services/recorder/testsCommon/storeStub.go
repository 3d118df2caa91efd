package testsCommon

import (
	"context"

	"github.com/iulianpascalau/site-monitoring/services/recorder/common"
)

// StoreStub -
type StoreStub struct {
	SaveRecordHandler      func(ctx context.Context, rec *common.HistoryRecord) error
	GetAlarmHistoryHandler func(ctx context.Context, alarmName string) ([]common.HistoryRecord, error)
	GetAlarmNamesHandler   func(ctx context.Context) ([]string, error)
	CloseHandler           func() error
}

// SaveRecord -
func (stub *StoreStub) SaveRecord(ctx context.Context, rec *common.HistoryRecord) error {
	if stub.SaveRecordHandler != nil {
		return stub.SaveRecordHandler(ctx, rec)
	}

	return nil
}

// GetAlarmHistory -
func (stub *StoreStub) GetAlarmHistory(ctx context.Context, alarmName string) ([]common.HistoryRecord, error) {
	if stub.GetAlarmHistoryHandler != nil {
		return stub.GetAlarmHistoryHandler(ctx, alarmName)
	}

	return make([]common.HistoryRecord, 0), nil
}

// GetAlarmNames -
func (stub *StoreStub) GetAlarmNames(ctx context.Context) ([]string, error) {
	if stub.GetAlarmNamesHandler != nil {
		return stub.GetAlarmNamesHandler(ctx)
	}

	return make([]string, 0), nil
}

// Close -
func (stub *StoreStub) Close() error {
	if stub.CloseHandler != nil {
		return stub.CloseHandler()
	}

	return nil
}

// IsInterfaceNil -
func (stub *StoreStub) IsInterfaceNil() bool {
	return stub == nil
}
