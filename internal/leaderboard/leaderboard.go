// Package leaderboard turns a batch of scored submissions into a ranked
// view. It is a pure function of its input snapshot; fetching the
// submissions and resolving display names are the caller's collaborators.
package leaderboard

import "sort"

// PlaceholderName is substituted when a user's display name cannot be
// resolved. A single resolution gap never aborts the aggregation.
const PlaceholderName = "Unknown User"

// ScoredSubmission is the minimal shape the aggregator consumes.
type ScoredSubmission struct {
	UserID string
	CrewID string
	Score  float64
}

// Entry is one user's ranked, aggregated row. Position uses competition
// ranking: tied entries share a position and the next distinct score's
// position skips by the size of the tie group.
type Entry struct {
	UserID      string  `json:"user_id"`
	DisplayName string  `json:"display_name"`
	Score       float64 `json:"score"`
	Position    int     `json:"position"`
	TiedWith    int     `json:"tied_with,omitempty"`
	CrewID      string  `json:"crew_id,omitempty"`
}

// NameResolver supplies display names for a set of user IDs. A missing
// key in the returned map is not an error; the aggregator substitutes a
// placeholder for that entry.
type NameResolver interface {
	ResolveNames(userIDs []string) (map[string]string, error)
}

// Aggregate groups submissions by user, sums their scores, sorts by the
// requested direction and assigns competition ranks. An empty input
// yields an empty leaderboard.
func Aggregate(subs []ScoredSubmission, resolver NameResolver, lowerScoreIsBetter bool) []Entry {
	entries := make([]Entry, 0)
	if len(subs) == 0 {
		return entries
	}

	totals := make(map[string]*Entry)
	order := make([]string, 0)
	for _, sub := range subs {
		entry, ok := totals[sub.UserID]
		if !ok {
			entry = &Entry{UserID: sub.UserID, CrewID: sub.CrewID}
			totals[sub.UserID] = entry
			order = append(order, sub.UserID)
		}
		entry.Score += sub.Score
		if entry.CrewID == "" {
			entry.CrewID = sub.CrewID
		}
	}

	names := resolveNames(resolver, order)
	for _, userID := range order {
		entry := totals[userID]
		entry.DisplayName = names[userID]
		if entry.DisplayName == "" {
			entry.DisplayName = PlaceholderName
		}
		entries = append(entries, *entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			if lowerScoreIsBetter {
				return entries[i].Score < entries[j].Score
			}
			return entries[i].Score > entries[j].Score
		}
		// deterministic order inside a tie group
		return entries[i].UserID < entries[j].UserID
	})

	assignPositions(entries)
	return entries
}

// assignPositions walks the sorted entries and applies competition
// ranking in place.
func assignPositions(entries []Entry) {
	i := 0
	for i < len(entries) {
		j := i
		for j < len(entries) && entries[j].Score == entries[i].Score {
			j++
		}
		groupSize := j - i
		for k := i; k < j; k++ {
			entries[k].Position = i + 1
			if groupSize > 1 {
				entries[k].TiedWith = groupSize
			}
		}
		i = j
	}
}

func resolveNames(resolver NameResolver, userIDs []string) map[string]string {
	if resolver == nil {
		return map[string]string{}
	}
	names, err := resolver.ResolveNames(userIDs)
	if err != nil || names == nil {
		// fall back to placeholders for every entry
		return map[string]string{}
	}
	return names
}
