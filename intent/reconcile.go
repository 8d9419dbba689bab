package intent

import (
	"context"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Reconcile matches extracted variable names against discovered columns.
// Names are first resolved locally by fuzzy match across every file's
// columns; only when some name has no local candidate does a model call
// arbitrate, carrying the full schema map as context. An error reply or a
// reply missing either key is Unresolved.
func (e *Extractor) Reconcile(ctx context.Context, vars Variables, schemaMap map[string][]string) Resolution {
	columns := allColumns(schemaMap)
	if len(columns) == 0 {
		return Resolution{}
	}

	if resolved, ok := resolveLocally(vars, columns); ok {
		return Resolution{Resolved: true, Variables: resolved}
	}

	raw, err := e.provider.CompleteJSON(ctx, "", reconcilePrompt(vars, schemaMap))
	if err != nil {
		e.log.Errorf("schema reconciliation failed: %v", err)
		return Resolution{}
	}
	return decodeReconciliation(raw, vars)
}

// allColumns flattens the schema map into a deduplicated column list.
func allColumns(schemaMap map[string][]string) []string {
	seen := map[string]bool{}
	var columns []string
	for _, cols := range schemaMap {
		for _, col := range cols {
			key := strings.ToLower(col)
			if col == "" || seen[key] {
				continue
			}
			seen[key] = true
			columns = append(columns, col)
		}
	}
	return columns
}

// resolveLocally maps every extracted name to a column without a model
// call: exact case-insensitive match first, best fuzzy match second.
// Fails as a whole if any single name has no candidate.
func resolveLocally(vars Variables, columns []string) (Variables, bool) {
	resolveOne := func(name string) (string, bool) {
		for _, col := range columns {
			if strings.EqualFold(name, col) {
				return col, true
			}
		}
		matches := fuzzy.Find(name, columns)
		if len(matches) == 0 {
			return "", false
		}
		return matches[0].Str, true
	}

	out := Variables{IndependentIsList: vars.IndependentIsList}

	for _, name := range vars.Independent {
		col, ok := resolveOne(name)
		if !ok {
			return Variables{}, false
		}
		out.Independent = append(out.Independent, col)
	}

	col, ok := resolveOne(vars.Dependent)
	if !ok {
		return Variables{}, false
	}
	out.Dependent = col

	return out, true
}
