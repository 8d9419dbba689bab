package intent

import (
	"context"

	"urbangpt/storage"
)

// ClassifyListRequest asks whether the user wants the full index listing.
// A failed call or undecodable reply is "no"; the pipeline proceeds to
// variable extraction.
func (e *Extractor) ClassifyListRequest(ctx context.Context, message string, history []storage.Message) bool {
	raw, err := e.provider.CompleteJSON(ctx, "", listRequestPrompt(message, history))
	if err != nil {
		e.log.Errorf("list-request classification failed: %v", err)
		return false
	}
	return decodeYesNo(raw)
}

// ExtractVariables pulls the independent and dependent variable names out
// of the message and chat history. The result is always a tagged
// Extraction; upstream failure maps to OutcomeMissingIndependent so the
// user is re-prompted.
func (e *Extractor) ExtractVariables(ctx context.Context, message string, history []storage.Message) Extraction {
	raw, err := e.provider.CompleteJSON(ctx, "", extractPrompt(message, history))
	if err != nil {
		e.log.Errorf("variable extraction failed: %v", err)
		return Extraction{Outcome: OutcomeMissingIndependent}
	}
	return decodeExtraction(raw)
}
