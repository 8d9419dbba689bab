package engine

import (
	"fmt"
	"strings"

	"urbangpt/intent"
)

const explanationInstruction = `Explain the following regression results to a policy analyst. ` +
	`Report the R-squared, the adjusted R-squared, the coefficients and their standard errors. ` +
	`Use a professional tone and phrase the interpretation in terms of the variable names.`

const reportInstruction = `You are drafting a policy document. ` +
	`Structure the answer as a multipart document and write it section by section, ` +
	`with a heading for each section. Ground every section in the provided context where possible.`

const askForVariables = "Please provide the name of the independent variable and the name of the dependent variable for the analysis."

// explanationPrompt wraps raw regression output for the final
// natural-language explanation call. The output is opaque text; it is
// passed through verbatim.
func explanationPrompt(vars intent.Variables, rawResult string) string {
	return fmt.Sprintf("%s\nThe independent variable is %s and the dependent variable is %s.\nThe regression results are:\n%s",
		explanationInstruction, strings.Join(vars.Independent, ", "), vars.Dependent, rawResult)
}
