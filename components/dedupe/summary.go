package dedupe

import (
	"fmt"
	"time"
)

// GroupDetail reports one duplicate group.
type GroupDetail struct {
	Product    string    `json:"product"`
	Count      int       `json:"count"`
	KeptNewest time.Time `json:"keptNewest"`
}

// Summary is the outcome of a dedupe run. DuplicatesRemoved only counts ids in
// batches the store confirmed.
type Summary struct {
	DuplicateGroups   int           `json:"duplicateGroups"`
	DuplicatesRemoved int           `json:"duplicatesRemoved"`
	FailedBatches     int           `json:"failedBatches,omitempty"`
	Details           []GroupDetail `json:"details,omitempty"`
}

// Message renders the human readable outcome, e.g. "Removed 3 duplicate products".
func (s Summary) Message(noun string) string {
	if s.DuplicateGroups == 0 {
		return "No duplicates found"
	}
	return fmt.Sprintf("Removed %d duplicate %s", s.DuplicatesRemoved, noun)
}

// Summarize builds the report for planned groups. DuplicatesRemoved is left for
// the caller to fill in once deletes are confirmed.
func Summarize(groups []Group) Summary {
	summary := Summary{DuplicateGroups: len(groups)}
	for _, g := range groups {
		summary.Details = append(summary.Details, GroupDetail{
			Product:    g.Key,
			Count:      g.Count(),
			KeptNewest: g.Survivor.CreatedAt,
		})
	}
	return summary
}
