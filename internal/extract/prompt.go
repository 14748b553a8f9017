package extract

import (
	"encoding/json"
	"strings"

	"github.com/joseph-ayodele/survey-tabulator/internal/fields"
)

// SystemInstruction primes the model for form parsing. It is attached once at
// client construction, not per request.
const SystemInstruction = "You are a survey form parser. You read scanned employer survey PDFs " +
	"and return ONLY a single JSON object containing the requested fields. Accuracy and " +
	"information preservation are of utmost importance. Never add fields that were not requested."

// BuildInstruction composes the per-document instruction: the exact field
// names, the value rules for rating vs free-text fields, and the demand for a
// bare JSON object with nothing around it.
func BuildInstruction(list *fields.List) string {
	names, _ := json.MarshalIndent(list.Names(), "", "  ")

	var b strings.Builder
	b.WriteString("Analyze the provided PDF document, a completed employer survey form. ")
	b.WriteString("Extract the following fields and return the data as a single, minified JSON object. ")
	b.WriteString("The field names in the JSON output must be exactly as listed below.\n\n")
	b.WriteString("Follow these rules for extracting values:\n")
	b.WriteString("1. For fields that are ratings on a numerical scale (typically 1-10), extract the selected numerical value. ")
	b.WriteString("If a rating is truly not present or cannot be determined, use the neutral value \"5\".\n")
	b.WriteString("2. For all other fields, if a value is not found or is empty, use the string \"N/A\".\n\n")
	b.WriteString("Fields to extract:\n")
	b.Write(names)
	b.WriteString("\n\nYour output must be only the JSON object, with no other text before or after it.")
	return b.String()
}
