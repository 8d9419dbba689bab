// Package engine sequences one chat turn per task type. There is no
// persisted state machine: every turn recomputes from the message, the
// submitted history and the current uploads, performs its blocking remote
// calls in order, and commits exactly one reply to the conversation store
// before returning. Failure replies are committed the same way, so the
// chat log is a complete record of every turn's outcome.
package engine

import (
	"encoding/json"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"urbangpt/analysis"
	"urbangpt/config"
	"urbangpt/intent"
	"urbangpt/logging"
	"urbangpt/provider"
	"urbangpt/retrieval"
	"urbangpt/storage"
)

// User-facing turn outcomes. Kept as fixed strings; they are part of the
// conversational contract and show up verbatim in stored transcripts.
const (
	msgRefresh = "This conversation was updated from another session. Please refresh the page and try again."

	msgUploadData = "Please upload data files"

	msgMissingIndependent = "Please specify the name of the independent variable"

	msgMissingDependent = "Please specify the name of the dependent variable"

	msgUnmatchedVariables = "I could not match the requested variables against the indexes of the uploaded data files. Please check the variable names and try again."

	// MsgFailed is exported for the HTTP layer, which falls back to it
	// when a turn cannot even commit its failure entry.
	MsgFailed = "Failed to get response."
)

// TurnRequest is one user message plus the client's optimistic view of
// the conversation, which already includes that message as its final
// entry.
type TurnRequest struct {
	Message string
	History []storage.Message
	ChatID  string
}

// TurnReply is the assistant's reply for a turn. Table carries raw
// regression output verbatim when the turn ran an analysis.
type TurnReply struct {
	Reply string `json:"reply"`
	Table string `json:"table,omitempty"`
}

// Engine orchestrates Analysis, QnA and Report turns.
type Engine struct {
	cfg       *config.Config
	store     *storage.Store
	provider  provider.Provider
	extractor *intent.Extractor
	runner    analysis.Runner
	retriever *retrieval.Client
	keywords  *retrieval.Keywords
	log       *logging.Logger
}

func New(
	cfg *config.Config,
	store *storage.Store,
	p provider.Provider,
	runner analysis.Runner,
	retriever *retrieval.Client,
	keywords *retrieval.Keywords,
	log *logging.Logger,
) *Engine {
	return &Engine{
		cfg:       cfg,
		store:     store,
		provider:  p,
		extractor: intent.NewExtractor(p, log),
		runner:    runner,
		retriever: retriever,
		keywords:  keywords,
		log:       log,
	}
}

// renderMarkdown converts an assistant reply to HTML for storage and
// display.
func renderMarkdown(text string) string {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return string(markdown.ToHTML([]byte(text), p, renderer))
}

// reply commits an assistant message and shapes the turn reply. The base
// history is the client's view including its new user message, so the
// commit records both sides of the turn.
func (e *Engine) reply(chatID string, base []storage.Message, text, table string) (*TurnReply, error) {
	rendered := renderMarkdown(text)
	msg := storage.Message{Sender: storage.SenderAssistant, Text: rendered, Table: table}
	if err := e.store.AppendTurn(chatID, base, msg); err != nil {
		return nil, err
	}
	return &TurnReply{Reply: rendered, Table: table}, nil
}

// replyError commits a failure entry under the Error sender, plain text.
func (e *Engine) replyError(chatID string, base []storage.Message) (*TurnReply, error) {
	msg := storage.Message{Sender: storage.SenderError, Text: MsgFailed}
	if err := e.store.AppendTurn(chatID, base, msg); err != nil {
		return nil, err
	}
	return &TurnReply{Reply: MsgFailed}, nil
}

// validate runs the optimistic-concurrency check. A stale history gets
// the refresh prompt without any state mutation.
func (e *Engine) validate(req TurnRequest) (*TurnReply, error) {
	_, ok, err := e.store.ValidateHistory(req.ChatID, req.History)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &TurnReply{Reply: msgRefresh}, nil
	}
	return nil, nil
}

func historyJSON(history []storage.Message) string {
	if len(history) == 0 {
		return "[]"
	}
	data, err := json.Marshal(history)
	if err != nil {
		return "[]"
	}
	return string(data)
}
