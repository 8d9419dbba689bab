package engine

import (
	"context"

	"urbangpt/storage"
)

// Report drafts a sectioned policy document for the request. Retrieval is
// keyed on the message together with the trimmed history, since report
// requests tend to refer back to earlier analysis turns.
func (e *Engine) Report(ctx context.Context, req TurnRequest) (*TurnReply, error) {
	if stale, err := e.validate(req); stale != nil || err != nil {
		return stale, err
	}
	base := req.History
	trimmed := storage.TrimHistory(req.History)

	snippets := e.retriever.Search(ctx, req.Message+" "+historyJSON(trimmed))

	document, err := e.provider.Complete(ctx, reportSystemPrompt(snippets, trimmed), req.Message)
	if err != nil {
		e.log.Errorf("report turn failed: %v", err)
		return e.replyError(req.ChatID, base)
	}

	return e.reply(req.ChatID, base, document, "")
}

func reportSystemPrompt(snippets []string, trimmed []storage.Message) string {
	return reportInstruction + "\n" + groundedContext(snippets, trimmed)
}
