package usersink

import (
	"context"

	"github.com/goliatone/go-users/pkg/types"
	"github.com/rs/zerolog"
)

// LogSink writes activity records as structured log lines.
type LogSink struct {
	Logger zerolog.Logger
}

func (s LogSink) Log(_ context.Context, record types.ActivityRecord) error {
	s.Logger.Info().
		Str("verb", record.Verb).
		Str("object_type", record.ObjectType).
		Str("object_id", record.ObjectID).
		Str("channel", record.Channel).
		Stringer("actor_id", record.ActorID).
		Time("occurred_at", record.OccurredAt).
		Fields(record.Data).
		Msg("activity")
	return nil
}
