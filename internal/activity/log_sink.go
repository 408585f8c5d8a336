package activity

import (
	"context"

	"github.com/goliatone/go-landing/pkg/interfaces"
)

// LogSink writes activity records to a logger. It is the default sink when
// the host does not forward records to go-users.
type LogSink struct {
	Logger interfaces.Logger
}

func (s LogSink) Log(_ context.Context, record interfaces.ActivityRecord) error {
	if s.Logger == nil {
		return nil
	}
	s.Logger.Info("activity.recorded",
		"verb", record.Verb,
		"object_type", record.ObjectType,
		"object_id", record.ObjectID,
		"actor_id", record.ActorID.String(),
	)
	return nil
}
