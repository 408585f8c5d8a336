package interfaces

import (
	"context"

	usertypes "github.com/goliatone/go-users/pkg/types"
)

// ActivityRecord is the go-users activity record so hosts can forward
// landing page events into their existing activity feed.
type ActivityRecord = usertypes.ActivityRecord

// ActivitySink receives activity records.
type ActivitySink interface {
	Log(ctx context.Context, record ActivityRecord) error
}
