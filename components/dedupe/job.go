package dedupe

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// DefaultBatchSize is the number of ids deleted per store call.
const DefaultBatchSize = 100

var (
	// ErrList is returned when the owner's records cannot be fetched.
	ErrList = errors.New("dedupe: list records")
	// ErrMissingOwner is returned when Run is called without an owner id.
	ErrMissingOwner = errors.New("dedupe: owner id is required")
)

// Store lists and deletes records scoped to one owner.
type Store interface {
	ListRecords(ctx context.Context, ownerID string) ([]Record, error)
	DeleteRecords(ctx context.Context, ownerID string, ids []string) error
}

// Options configures a Job.
type Options struct {
	BatchSize int
	// Limiter paces delete calls. Nil means no pacing.
	Limiter *rate.Limiter
	Logger  *zerolog.Logger
}

// Job removes duplicate records for one owner at a time.
type Job struct {
	store     Store
	batchSize int
	limiter   *rate.Limiter
	logger    zerolog.Logger
}

// NewJob builds a job over store.
func NewJob(store Store, opts Options) *Job {
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &Job{
		store:     store,
		batchSize: opts.BatchSize,
		limiter:   opts.Limiter,
		logger:    logger.With().Str("component", "dedupe").Logger(),
	}
}

// Run lists the owner's records, keeps the newest of each duplicate group and
// deletes the rest in sequential batches. A failed batch is logged and skipped.
// A list failure aborts the run. Cancelling ctx stops before the next batch and
// returns the partial summary with ctx's error.
func (j *Job) Run(ctx context.Context, ownerID string) (Summary, error) {
	if ownerID == "" {
		return Summary{}, ErrMissingOwner
	}
	log := j.logger.With().Str("owner_id", ownerID).Logger()

	records, err := j.store.ListRecords(ctx, ownerID)
	if err != nil {
		return Summary{}, fmt.Errorf("%w: %w", ErrList, err)
	}
	groups, losers := Plan(records)
	summary := Summarize(groups)
	if len(losers) == 0 {
		log.Debug().Int("records", len(records)).Msg("no duplicates")
		return summary, nil
	}

	for i, batch := range Batches(losers, j.batchSize) {
		if j.limiter != nil {
			if err := j.limiter.Wait(ctx); err != nil {
				return summary, err
			}
		} else if err := ctx.Err(); err != nil {
			return summary, err
		}
		if err := j.store.DeleteRecords(ctx, ownerID, batch); err != nil {
			summary.FailedBatches++
			log.Error().
				Err(err).
				Int("batch", i).
				Int("size", len(batch)).
				Msg("delete batch failed")
			continue
		}
		summary.DuplicatesRemoved += len(batch)
	}

	log.Info().
		Int("groups", summary.DuplicateGroups).
		Int("removed", summary.DuplicatesRemoved).
		Int("failed_batches", summary.FailedBatches).
		Msg("dedupe finished")
	return summary, nil
}
