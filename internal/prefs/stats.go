// Package prefs implements the preference/statistics engine: frequency
// tables over stored commands and fixed-dictionary heuristics that infer
// what the user tends to work on. It is a fixed-rule scorer, not a
// learned model; all dictionaries live in dictionaries.go.
package prefs

import (
	"fmt"
	"time"

	"github.com/dreyes/memtrail/internal/memory"
)

// Stats is the basic usage summary across all commands.
type Stats struct {
	TotalCommands int      `json:"total_commands"`
	TopKeywords   []string `json:"top_keywords"`
	ActiveHours   []string `json:"active_hours"`
}

// ComputeStats aggregates tag frequencies and UTC hour-of-day activity
// buckets. Top-5 tags and top-3 hour ranges, ties broken by first-seen
// order. Zero records yield empty slices, not nulls.
func ComputeStats(cmds []memory.Command) Stats {
	tags := newCounter[string]()
	hours := newCounter[int]()

	for _, c := range cmds {
		for _, t := range c.Tags {
			if t == "" {
				continue
			}
			tags.inc(t)
		}
		if ts, err := time.Parse(time.RFC3339, c.Timestamp); err == nil {
			hours.inc(ts.UTC().Hour())
		}
	}

	top := hours.top(3)
	ranges := make([]string, 0, len(top))
	for _, h := range top {
		ranges = append(ranges, fmt.Sprintf("%02d:00-%02d:00", h, (h+1)%24))
	}

	return Stats{
		TotalCommands: len(cmds),
		TopKeywords:   tags.top(5),
		ActiveHours:   ranges,
	}
}
