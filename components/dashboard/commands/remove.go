package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-workboard/components/dedupe"
	"github.com/goliatone/go-workboard/pkg/activity"
)

// RemoveDuplicatesInput names the owner whose records are deduplicated.
// Result, when set, receives the run summary.
type RemoveDuplicatesInput struct {
	OwnerID string          `json:"owner_id"`
	Result  *dedupe.Summary `json:"-"`
}

type dedupeRunner interface {
	Run(ctx context.Context, ownerID string) (dedupe.Summary, error)
}

// RemoveDuplicatesCommand runs the duplicate reconciliation job for one owner.
type RemoveDuplicatesCommand struct {
	job       dedupeRunner
	telemetry Telemetry
	activity  *activity.Emitter
}

// NewRemoveDuplicatesCommand builds the command. A nil emitter disables
// activity events.
func NewRemoveDuplicatesCommand(job dedupeRunner, telemetry Telemetry, emitter *activity.Emitter) *RemoveDuplicatesCommand {
	return &RemoveDuplicatesCommand{job: job, telemetry: normalizeTelemetry(telemetry), activity: emitter}
}

var _ gocommand.Commander[RemoveDuplicatesInput] = (*RemoveDuplicatesCommand)(nil)

func (c *RemoveDuplicatesCommand) Execute(ctx context.Context, msg RemoveDuplicatesInput) error {
	if c.job == nil {
		return errors.New("remove duplicates command requires job")
	}
	summary, err := c.job.Run(ctx, msg.OwnerID)
	if msg.Result != nil {
		*msg.Result = summary
	}
	if err != nil {
		return err
	}
	payload := map[string]any{
		"owner_id":       msg.OwnerID,
		"groups":         summary.DuplicateGroups,
		"removed":        summary.DuplicatesRemoved,
		"failed_batches": summary.FailedBatches,
	}
	c.telemetry.Record(ctx, "dedupe.run", payload)
	if c.activity.Enabled() && summary.DuplicatesRemoved > 0 {
		_ = c.activity.Emit(ctx, activity.Event{
			Verb:       "dedupe.products.removed",
			ActorID:    msg.OwnerID,
			UserID:     msg.OwnerID,
			ObjectType: "product",
			ObjectID:   msg.OwnerID,
			Metadata:   payload,
		})
	}
	return nil
}
