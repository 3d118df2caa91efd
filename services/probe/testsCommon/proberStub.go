package testsCommon

import (
	"context"

	"github.com/iulianpascalau/site-monitoring/services/probe/common"
)

// ProberStub -
type ProberStub struct {
	RunHandler func(ctx context.Context) common.Measurement
}

// Run -
func (stub *ProberStub) Run(ctx context.Context) common.Measurement {
	if stub.RunHandler != nil {
		return stub.RunHandler(ctx)
	}

	return common.Measurement{}
}

// IsInterfaceNil -
func (stub *ProberStub) IsInterfaceNil() bool {
	return stub == nil
}
