package dedupe

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

var base = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func at(minutes int) time.Time {
	return base.Add(time.Duration(minutes) * time.Minute)
}

type scriptedStore struct {
	*MemoryStore
	listErr   error
	failBatch map[int]error
	calls     [][]string
}

func (s *scriptedStore) ListRecords(ctx context.Context, ownerID string) ([]Record, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.MemoryStore.ListRecords(ctx, ownerID)
}

func (s *scriptedStore) DeleteRecords(ctx context.Context, ownerID string, ids []string) error {
	call := len(s.calls)
	s.calls = append(s.calls, append([]string(nil), ids...))
	if err := s.failBatch[call]; err != nil {
		return err
	}
	return s.MemoryStore.DeleteRecords(ctx, ownerID, ids)
}

func TestPlanKeepsNewest(t *testing.T) {
	records := []Record{
		{ID: "1", NaturalKey: "Widget", CreatedAt: at(1)},
		{ID: "2", NaturalKey: "Widget", CreatedAt: at(2)},
		{ID: "3", NaturalKey: "Widget", CreatedAt: at(3)},
	}
	groups, losers := Plan(records)
	require.Len(t, groups, 1)
	assert.Equal(t, "3", groups[0].Survivor.ID)
	assert.Equal(t, 3, groups[0].Count())
	assert.ElementsMatch(t, []string{"1", "2"}, losers)
}

func TestPlanTieKeepsFirstReturned(t *testing.T) {
	records := []Record{
		{ID: "a", NaturalKey: "Gear", CreatedAt: at(5)},
		{ID: "b", NaturalKey: "Gear", CreatedAt: at(5)},
		{ID: "c", NaturalKey: "Gear", CreatedAt: at(1)},
	}
	groups, losers := Plan(records)
	require.Len(t, groups, 1)
	assert.Equal(t, "a", groups[0].Survivor.ID)
	assert.Equal(t, []string{"b", "c"}, losers)
}

func TestPlanExactKeyMatch(t *testing.T) {
	records := []Record{
		{ID: "1", NaturalKey: "Bolt"},
		{ID: "2", NaturalKey: "bolt"},
		{ID: "3", NaturalKey: "Bolt "},
		{ID: "4", NaturalKey: "Nut"},
	}
	groups, losers := Plan(records)
	assert.Empty(t, groups)
	assert.Empty(t, losers)
}

func TestPlanGroupsInFirstSeenOrder(t *testing.T) {
	records := []Record{
		{ID: "1", NaturalKey: "B", CreatedAt: at(1)},
		{ID: "2", NaturalKey: "A", CreatedAt: at(1)},
		{ID: "3", NaturalKey: "B", CreatedAt: at(2)},
		{ID: "4", NaturalKey: "A", CreatedAt: at(0)},
	}
	groups, losers := Plan(records)
	require.Len(t, groups, 2)
	assert.Equal(t, "B", groups[0].Key)
	assert.Equal(t, "A", groups[1].Key)
	assert.Equal(t, []string{"1", "4"}, losers)
}

func TestBatches(t *testing.T) {
	ids := make([]string, 250)
	for i := range ids {
		ids[i] = fmt.Sprint(i)
	}
	batches := Batches(ids, 100)
	require.Len(t, batches, 3)
	assert.Len(t, batches[0], 100)
	assert.Len(t, batches[1], 100)
	assert.Len(t, batches[2], 50)
	assert.Empty(t, Batches(nil, 100))
	assert.Len(t, Batches(ids, 0), 3, "non positive size falls back to default")
}

func TestJobRunRemovesDuplicates(t *testing.T) {
	store := NewMemoryStore()
	store.Add("owner-1",
		Record{ID: "1", NaturalKey: "Widget", CreatedAt: at(1)},
		Record{ID: "2", NaturalKey: "Widget", CreatedAt: at(2)},
		Record{ID: "3", NaturalKey: "Widget", CreatedAt: at(3)},
		Record{ID: "4", NaturalKey: "Gadget", CreatedAt: at(1)},
	)
	store.Add("owner-2", Record{ID: "x", NaturalKey: "Widget", CreatedAt: at(9)})

	job := NewJob(store, Options{})
	summary, err := job.Run(context.Background(), "owner-1")
	require.NoError(t, err)
	assert.Equal(t, 1, summary.DuplicateGroups)
	assert.Equal(t, 2, summary.DuplicatesRemoved)
	require.Len(t, summary.Details, 1)
	assert.Equal(t, GroupDetail{Product: "Widget", Count: 3, KeptNewest: at(3)}, summary.Details[0])
	assert.Equal(t, "Removed 2 duplicate products", summary.Message("products"))

	remaining, _ := store.ListRecords(context.Background(), "owner-1")
	assert.Len(t, remaining, 2)
	other, _ := store.ListRecords(context.Background(), "owner-2")
	assert.Len(t, other, 1, "other owners untouched")
}

func TestJobRunIsIdempotent(t *testing.T) {
	store := NewMemoryStore()
	for i := 0; i < 5; i++ {
		store.Add("owner", Record{ID: fmt.Sprint(i), NaturalKey: "Dup", CreatedAt: at(i)})
	}
	job := NewJob(store, Options{})
	first, err := job.Run(context.Background(), "owner")
	require.NoError(t, err)
	assert.Equal(t, 4, first.DuplicatesRemoved)

	second, err := job.Run(context.Background(), "owner")
	require.NoError(t, err)
	assert.Equal(t, 0, second.DuplicatesRemoved)
	assert.Equal(t, 0, second.DuplicateGroups)
	assert.Equal(t, "No duplicates found", second.Message("products"))
}

func TestJobRunBatchFailureIsPartial(t *testing.T) {
	store := &scriptedStore{MemoryStore: NewMemoryStore(), failBatch: map[int]error{1: errors.New("timeout")}}
	for i := 0; i < 251; i++ {
		store.Add("owner", Record{ID: fmt.Sprintf("r%03d", i), NaturalKey: "Same", CreatedAt: at(i)})
	}
	job := NewJob(store, Options{})
	summary, err := job.Run(context.Background(), "owner")
	require.NoError(t, err)

	require.Len(t, store.calls, 3)
	assert.Len(t, store.calls[0], 100)
	assert.Len(t, store.calls[1], 100)
	assert.Len(t, store.calls[2], 50)
	assert.Equal(t, 150, summary.DuplicatesRemoved)
	assert.Equal(t, 1, summary.FailedBatches)

	remaining, _ := store.ListRecords(context.Background(), "owner")
	assert.Len(t, remaining, 101, "survivor plus the failed batch")
}

func TestJobRunListFailureAborts(t *testing.T) {
	boom := errors.New("connection reset")
	store := &scriptedStore{MemoryStore: NewMemoryStore(), listErr: boom}
	_, err := NewJob(store, Options{}).Run(context.Background(), "owner")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrList)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, store.calls)
}

func TestJobRunRequiresOwner(t *testing.T) {
	_, err := NewJob(NewMemoryStore(), Options{}).Run(context.Background(), "")
	assert.ErrorIs(t, err, ErrMissingOwner)
}

func TestJobRunStopsOnCancelledContext(t *testing.T) {
	store := &scriptedStore{MemoryStore: NewMemoryStore()}
	store.Add("owner",
		Record{ID: "1", NaturalKey: "K", CreatedAt: at(1)},
		Record{ID: "2", NaturalKey: "K", CreatedAt: at(2)},
	)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	summary, err := NewJob(store, Options{Limiter: rate.NewLimiter(rate.Inf, 1)}).Run(ctx, "owner")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, summary.DuplicateGroups)
	assert.Equal(t, 0, summary.DuplicatesRemoved)
	assert.Empty(t, store.calls)
}
