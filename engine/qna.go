package engine

import (
	"context"
	"strings"

	"urbangpt/retrieval"
	"urbangpt/storage"
)

// QnA answers a free-form question grounded in retrieved context. The
// search query is the message widened with whichever configured keywords
// it touches, and the reply carries a deduplicated references section
// when any context came back.
func (e *Engine) QnA(ctx context.Context, req TurnRequest) (*TurnReply, error) {
	if stale, err := e.validate(req); stale != nil || err != nil {
		return stale, err
	}
	base := req.History
	trimmed := storage.TrimHistory(req.History)

	query := req.Message
	if matched := e.keywords.Match(req.Message); len(matched) > 0 {
		query = query + " " + strings.Join(matched, " ")
	}
	snippets := e.retriever.Search(ctx, query)

	answer, err := e.provider.Complete(ctx, qnaSystemPrompt(snippets, trimmed), req.Message)
	if err != nil {
		e.log.Errorf("qna turn failed: %v", err)
		return e.replyError(req.ChatID, base)
	}

	if refs := retrievalReferences(snippets); refs != "" {
		answer = answer + "\n\n" + refs
	}
	return e.reply(req.ChatID, base, answer, "")
}

// retrievalReferences renders the deduplicated sources of the retrieved
// snippets as a markdown section, or "" when there were none.
func retrievalReferences(snippets []string) string {
	refs := retrieval.DedupReferences(snippets)
	if len(refs) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("**References**\n")
	for _, ref := range refs {
		b.WriteString("- ")
		b.WriteString(ref)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func qnaSystemPrompt(snippets []string, trimmed []storage.Message) string {
	return "Answer the question using the context below where it is relevant.\n" +
		groundedContext(snippets, trimmed)
}

// groundedContext lists each context snippet on its own line and appends
// the trimmed conversation so the model can resolve follow-up questions.
func groundedContext(snippets []string, trimmed []storage.Message) string {
	var b strings.Builder
	if len(snippets) > 0 {
		b.WriteString("Context:\n")
		for _, snippet := range snippets {
			b.WriteString("- ")
			b.WriteString(snippet)
			b.WriteString("\n")
		}
	}
	b.WriteString("Conversation so far:\n")
	b.WriteString(historyJSON(trimmed))
	return b.String()
}
