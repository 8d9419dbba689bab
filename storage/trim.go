package storage

import "encoding/json"

const (
	// historyByteBudget caps the serialized history sent to the model.
	historyByteBudget = 20000
	// historyMaxWindow caps how many trailing entries are considered.
	historyMaxWindow = 10
)

// TrimHistory returns the largest suffix of history, between 10 and 1
// entries, whose JSON serialization fits the byte budget. A history that
// already fits comes back unchanged (capped at 10 entries). If even the
// final entry alone exceeds the budget the window is empty: the model gets
// no history, which is a degenerate case, not an error.
func TrimHistory(history []Message) []Message {
	for window := historyMaxWindow; window >= 1; window-- {
		if window > len(history) {
			continue
		}
		suffix := history[len(history)-window:]
		data, err := json.Marshal(suffix)
		if err != nil {
			continue
		}
		if len(data) <= historyByteBudget {
			return suffix
		}
	}
	if len(history) == 0 {
		return history
	}
	return nil
}
