// Package intent extracts structured intent from free-form chat text via
// JSON-mode model calls, and reconciles extracted variable names against
// the discovered schema.
//
// Model output is fuzzy by contract: names may be misspelled, keys may be
// absent, the whole reply may not even be JSON. Every call therefore
// decodes into a tagged result instead of branching on ad hoc key checks,
// and a failed decode is "information not yet provided", never an aborted
// turn.
package intent

import (
	"encoding/json"

	"urbangpt/logging"
	"urbangpt/provider"
	"urbangpt/storage"
)

// Outcome tags an extraction result.
type Outcome int

const (
	// OutcomeResolved means both variables were extracted.
	OutcomeResolved Outcome = iota
	// OutcomeError means the model reported it could not extract.
	OutcomeError
	// OutcomeMissingIndependent means no independent variable was found.
	OutcomeMissingIndependent
	// OutcomeMissingDependent means no dependent variable was found.
	OutcomeMissingDependent
)

// Variables is one turn's variable selection. Independent holds one name,
// or several for multiple regression; Dependent is always a single name.
// Valid only within the turn that produced it.
type Variables struct {
	Independent       []string
	IndependentIsList bool
	Dependent         string
}

// Extraction is the tagged result of a variable-extraction call.
type Extraction struct {
	Outcome   Outcome
	Message   string // model-reported error text when Outcome is OutcomeError
	Variables Variables
}

// Resolution is the tagged result of schema reconciliation.
type Resolution struct {
	Resolved  bool
	Variables Variables
}

// Extractor issues the structured-output model calls.
type Extractor struct {
	provider provider.Provider
	log      *logging.Logger
}

func NewExtractor(p provider.Provider, log *logging.Logger) *Extractor {
	return &Extractor{provider: p, log: log}
}

// historyJSON serializes chat history for inclusion in a prompt. A history
// that fails to marshal is sent as an empty list rather than failing the
// turn.
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
