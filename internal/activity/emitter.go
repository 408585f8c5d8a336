// Package activity maps landing page lifecycle events onto go-users activity
// records.
package activity

import (
	"context"
	"maps"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-landing/pkg/interfaces"
)

const (
	Channel           = "landing"
	ObjectLandingPage = "landing_page"
)

const (
	VerbCreated   = "created"
	VerbGenerated = "generated"
	VerbSaved     = "saved"
	VerbPublished = "published"
	VerbArchived  = "archived"
	VerbDeleted   = "deleted"
)

// Event is one lifecycle event.
type Event struct {
	Verb     string
	ActorID  uuid.UUID
	ObjectID uuid.UUID
	Metadata map[string]any
}

// Emitter forwards events to a sink. A nil Emitter or one without a sink is
// disabled.
type Emitter struct {
	sink interfaces.ActivitySink
	now  func() time.Time
}

// NewEmitter constructs an Emitter.
func NewEmitter(sink interfaces.ActivitySink, now func() time.Time) *Emitter {
	if now == nil {
		now = time.Now
	}
	return &Emitter{sink: sink, now: now}
}

// Enabled reports whether events are delivered anywhere.
func (e *Emitter) Enabled() bool {
	return e != nil && e.sink != nil
}

// Emit delivers event. Events without an object id are dropped.
func (e *Emitter) Emit(ctx context.Context, event Event) error {
	if !e.Enabled() || event.ObjectID == uuid.Nil {
		return nil
	}
	data := maps.Clone(event.Metadata)
	if data == nil {
		data = map[string]any{}
	}
	return e.sink.Log(ctx, interfaces.ActivityRecord{
		UserID:     event.ActorID,
		ActorID:    event.ActorID,
		Verb:       event.Verb,
		ObjectType: ObjectLandingPage,
		ObjectID:   event.ObjectID.String(),
		Channel:    Channel,
		Data:       data,
		OccurredAt: e.now().UTC(),
	})
}
