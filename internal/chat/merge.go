package chat

import (
	"slices"
	"strings"

	"github.com/shan145/event-management-client/internal/domain"
)

// Merge combines the loaded message list with a freshly polled batch into
// one sequence ordered ascending by creation time, deduplicated by message
// id. Concurrent sends and racing poll results are resolved by this sort
// plus the id dedupe, never by arrival order. Inputs are not mutated.
func Merge(old, incoming []domain.Message) []domain.Message {
	merged := make([]domain.Message, 0, len(old)+len(incoming))
	seen := make(map[string]struct{}, len(old)+len(incoming))

	for _, m := range old {
		if _, ok := seen[m.ID]; ok {
			continue
		}
		seen[m.ID] = struct{}{}
		merged = append(merged, m)
	}
	for _, m := range incoming {
		if _, ok := seen[m.ID]; ok {
			continue
		}
		seen[m.ID] = struct{}{}
		merged = append(merged, m)
	}

	slices.SortStableFunc(merged, func(a, b domain.Message) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return merged
}

// Acknowledge replaces the optimistic placeholder identified by tempID with
// the server-acknowledged message, keeping order and dedupe intact. If no
// placeholder matches, the acked message is merged in as-is.
func Acknowledge(msgs []domain.Message, tempID string, acked domain.Message) []domain.Message {
	kept := make([]domain.Message, 0, len(msgs))
	for _, m := range msgs {
		if m.TempID != "" && m.TempID == tempID {
			continue
		}
		kept = append(kept, m)
	}
	return Merge(kept, []domain.Message{acked})
}

// LastID returns the id of the newest server-acknowledged message, or ""
// when there is none. Used as the since cursor for incremental polls;
// optimistic placeholders are skipped because their ids were never issued
// by the server and would be meaningless as a cursor.
func LastID(msgs []domain.Message) string {
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].TempID == "" {
			return msgs[i].ID
		}
	}
	return ""
}
