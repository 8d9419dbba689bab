package engine

import (
	"context"
	"sort"
	"strings"

	"urbangpt/intent"
	"urbangpt/schema"
)

// Analysis runs one regression turn. Steps short-circuit on the first
// unmet precondition, and every terminal step commits its reply before
// returning.
func (e *Engine) Analysis(ctx context.Context, req TurnRequest) (*TurnReply, error) {
	if stale, err := e.validate(req); stale != nil || err != nil {
		return stale, err
	}
	base := req.History

	headers := schema.Discover(e.cfg.StorageDir())
	if len(headers) == 0 {
		return e.reply(req.ChatID, base, msgUploadData, "")
	}

	if e.extractor.ClassifyListRequest(ctx, req.Message, req.History) {
		listing := schema.FormatIndexes(headers) + "\n\n" + askForVariables
		return e.reply(req.ChatID, base, listing, "")
	}

	extraction := e.extractor.ExtractVariables(ctx, req.Message, req.History)
	switch extraction.Outcome {
	case intent.OutcomeError:
		return e.reply(req.ChatID, base, extraction.Message, "")
	case intent.OutcomeMissingIndependent:
		return e.reply(req.ChatID, base, msgMissingIndependent, "")
	case intent.OutcomeMissingDependent:
		return e.reply(req.ChatID, base, msgMissingDependent, "")
	}

	resolution := e.extractor.Reconcile(ctx, extraction.Variables, headers)
	if !resolution.Resolved {
		return e.reply(req.ChatID, base, msgUnmatchedVariables, "")
	}
	vars := resolution.Variables

	csvPath := schema.CSVPath(e.cfg.StorageDir(), chooseCSV(headers, vars))
	rawResult, err := e.runner.Run(ctx, csvPath, vars.Independent, vars.Dependent)
	if err != nil {
		e.log.Errorf("analysis turn failed: %v", err)
		return e.replyError(req.ChatID, base)
	}

	explanation, err := e.provider.Complete(ctx, "", explanationPrompt(vars, rawResult))
	if err != nil {
		e.log.Errorf("explanation call failed: %v", err)
		return e.replyError(req.ChatID, base)
	}

	return e.reply(req.ChatID, base, explanation, rawResult)
}

// chooseCSV picks the file whose columns contain every resolved variable,
// preferring the lexicographically first on ties; falls back to the first
// file when none covers all variables.
func chooseCSV(headers map[string][]string, vars intent.Variables) string {
	names := make([]string, 0, len(headers))
	for name := range headers {
		names = append(names, name)
	}
	sort.Strings(names)

	wanted := append([]string{vars.Dependent}, vars.Independent...)
	for _, name := range names {
		if containsAll(headers[name], wanted) {
			return name
		}
	}
	return names[0]
}

func containsAll(columns, wanted []string) bool {
	for _, w := range wanted {
		found := false
		for _, col := range columns {
			if strings.EqualFold(col, w) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
