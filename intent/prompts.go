package intent

import (
	"encoding/json"
	"fmt"

	"urbangpt/storage"
)

const listRequestInstruction = `Decide whether the user is asking to see the list of available indexes ` +
	`(column names) in the uploaded data files. ` +
	`Return a JSON object with a single key "answer" whose value is "yes" or "no".`

const extractInstruction = `Seek the independent variable and the dependent variable in the user's message ` +
	`and the chat history. Allow fuzzy spelling. ` +
	`If either one is missing, return a JSON object with a key called "error" describing what is missing. ` +
	`If both are present, return a JSON object with keys "independent_var" and "dependent_var". ` +
	`When the user names several independent variables, make "independent_var" a JSON array of names.`

const reconcileInstruction = `Find the closest match between 1. the given dependent_var and independent_var ` +
	`and 2. the given list of indexes. Allow fuzzy spelling. ` +
	`If no close match is found, return a JSON object with a key called "error". ` +
	`If matches for both are found, return a JSON object with keys "independent_var" and "dependent_var" ` +
	`holding the matched index names. Keep "independent_var" an array if it was given as an array.`

func extractPrompt(message string, history []storage.Message) string {
	return fmt.Sprintf("%s\nThe chat history is:\n%s\n%s", extractInstruction, historyJSON(history), message)
}

func listRequestPrompt(message string, history []storage.Message) string {
	return fmt.Sprintf("%s\nThe chat history is:\n%s\nThe user's message is:\n%s",
		listRequestInstruction, historyJSON(history), message)
}

func reconcilePrompt(vars Variables, schemaMap map[string][]string) string {
	given := map[string]any{"dependent_var": vars.Dependent}
	if vars.IndependentIsList {
		given["independent_var"] = vars.Independent
	} else if len(vars.Independent) > 0 {
		given["independent_var"] = vars.Independent[0]
	}
	givenJSON, _ := json.Marshal(given)
	indexesJSON, _ := json.Marshal(schemaMap)

	return fmt.Sprintf("%s\nThe given dependent_var and independent_var are:\n%s\nThe given list of indexes are:\n%s",
		reconcileInstruction, givenJSON, indexesJSON)
}
