package dedupe

import (
	"sort"
	"time"
)

// Record is the minimal shape the job needs from any entity with a natural key.
type Record struct {
	ID         string    `json:"id"`
	NaturalKey string    `json:"naturalKey"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Group is a set of records sharing a natural key, resolved to one survivor.
type Group struct {
	Key      string
	Survivor Record
	Losers   []Record
}

// Count returns the number of copies found for the key.
func (g Group) Count() int {
	return len(g.Losers) + 1
}

// Plan groups records by exact natural key and picks the newest record of each
// group as its survivor. Ties on CreatedAt keep the record that came first in
// records. Only groups with duplicates are returned, in first-seen key order,
// together with the flat list of loser ids.
func Plan(records []Record) ([]Group, []string) {
	buckets := make(map[string][]Record)
	var keys []string
	for _, rec := range records {
		if _, ok := buckets[rec.NaturalKey]; !ok {
			keys = append(keys, rec.NaturalKey)
		}
		buckets[rec.NaturalKey] = append(buckets[rec.NaturalKey], rec)
	}

	var (
		groups []Group
		losers []string
	)
	for _, key := range keys {
		members := buckets[key]
		if len(members) < 2 {
			continue
		}
		sort.SliceStable(members, func(i, j int) bool {
			return members[i].CreatedAt.After(members[j].CreatedAt)
		})
		group := Group{
			Key:      key,
			Survivor: members[0],
			Losers:   append([]Record(nil), members[1:]...),
		}
		for _, loser := range group.Losers {
			losers = append(losers, loser.ID)
		}
		groups = append(groups, group)
	}
	return groups, losers
}

// Batches splits ids into consecutive chunks of at most size ids.
func Batches(ids []string, size int) [][]string {
	if size <= 0 {
		size = DefaultBatchSize
	}
	var out [][]string
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		out = append(out, ids[start:end])
	}
	return out
}
