package intent

import (
	"strings"

	"github.com/tidwall/gjson"
)

// decodeExtraction turns raw model output into a tagged Extraction.
// Anything unparseable degrades to a Missing outcome so the orchestrator
// re-prompts the user instead of failing the turn.
func decodeExtraction(raw string) Extraction {
	if !gjson.Valid(raw) {
		return Extraction{Outcome: OutcomeMissingIndependent}
	}

	if errVal := gjson.Get(raw, "error"); errVal.Exists() {
		return Extraction{Outcome: OutcomeError, Message: errVal.String()}
	}

	independent, isList := decodeNameList(gjson.Get(raw, "independent_var"))
	if len(independent) == 0 {
		return Extraction{Outcome: OutcomeMissingIndependent}
	}

	dependent := strings.TrimSpace(gjson.Get(raw, "dependent_var").String())
	if dependent == "" {
		return Extraction{Outcome: OutcomeMissingDependent}
	}

	return Extraction{
		Outcome: OutcomeResolved,
		Variables: Variables{
			Independent:       independent,
			IndependentIsList: isList,
			Dependent:         dependent,
		},
	}
}

// decodeNameList accepts a single name or an array of names, preserving
// which shape it saw.
func decodeNameList(val gjson.Result) ([]string, bool) {
	if !val.Exists() {
		return nil, false
	}
	if val.IsArray() {
		var names []string
		for _, item := range val.Array() {
			if name := strings.TrimSpace(item.String()); name != "" {
				names = append(names, name)
			}
		}
		return names, true
	}
	name := strings.TrimSpace(val.String())
	if name == "" {
		return nil, false
	}
	return []string{name}, false
}

// decodeReconciliation turns raw reconciliation output into a Resolution.
// The input arity wins: a list request stays a list even if the model
// replied with a single name.
func decodeReconciliation(raw string, input Variables) Resolution {
	if !gjson.Valid(raw) {
		return Resolution{}
	}
	if gjson.Get(raw, "error").Exists() {
		return Resolution{}
	}

	independent, _ := decodeNameList(gjson.Get(raw, "independent_var"))
	dependent := strings.TrimSpace(gjson.Get(raw, "dependent_var").String())
	if len(independent) == 0 || dependent == "" {
		return Resolution{}
	}

	return Resolution{
		Resolved: true,
		Variables: Variables{
			Independent:       independent,
			IndependentIsList: input.IndependentIsList,
			Dependent:         dependent,
		},
	}
}

// decodeYesNo reads the "answer" key, tolerating yes/no and true/false.
// Unparseable output means "no": the information was not provided.
func decodeYesNo(raw string) bool {
	if !gjson.Valid(raw) {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(gjson.Get(raw, "answer").String()))
	return answer == "yes" || answer == "true"
}
