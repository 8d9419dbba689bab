package storage

import (
	"strings"
	"testing"
)

func TestTrimHistory(t *testing.T) {
	small := func(n int) []Message {
		history := make([]Message, n)
		for i := range history {
			history[i] = Message{Sender: SenderUser, Text: "short"}
		}
		return history
	}

	t.Run("short history unchanged", func(t *testing.T) {
		history := small(4)
		got := TrimHistory(history)
		if len(got) != 4 {
			t.Errorf("TrimHistory() kept %d entries, want 4", len(got))
		}
	})

	t.Run("long history capped at ten", func(t *testing.T) {
		history := small(25)
		got := TrimHistory(history)
		if len(got) != 10 {
			t.Errorf("TrimHistory() kept %d entries, want 10", len(got))
		}
		if got[9].Text != history[24].Text {
			t.Error("trim must keep the most recent entries")
		}
	})

	t.Run("oversized entries shrink the window", func(t *testing.T) {
		big := strings.Repeat("x", 6000)
		history := make([]Message, 10)
		for i := range history {
			history[i] = Message{Sender: SenderAssistant, Text: big}
		}
		got := TrimHistory(history)
		if len(got) == 0 || len(got) >= 10 {
			t.Fatalf("TrimHistory() kept %d entries, want a smaller non-empty window", len(got))
		}
		if got[len(got)-1].Text != history[9].Text {
			t.Error("trim must keep the suffix")
		}
	})

	t.Run("single entry over budget yields empty window", func(t *testing.T) {
		history := []Message{{Sender: SenderAssistant, Text: strings.Repeat("x", 30000)}}
		got := TrimHistory(history)
		if len(got) != 0 {
			t.Errorf("TrimHistory() kept %d entries, want 0", len(got))
		}
	})

	t.Run("empty history stays empty", func(t *testing.T) {
		if got := TrimHistory(nil); len(got) != 0 {
			t.Errorf("TrimHistory(nil) = %v, want empty", got)
		}
	})
}
