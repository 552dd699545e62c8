package llm

import (
	"strings"

	"github.com/zalahu/EnergyZ/constants"
)

// maxPromptTextLen bounds how much document text is embedded in the prompt.
const maxPromptTextLen = 12000

// BuildSystemPrompt composes the fixed extraction instruction: the canonical
// field list plus strict-but-practical formatting rules.
func BuildSystemPrompt(req ExtractRequest) string {
	defCur := strings.TrimSpace(req.DefaultCurrency)
	if defCur == "" {
		defCur = "USD"
	}

	parts := []string{
		"You are an investment-project document parser. Extract structured investment data from the document text.",
		"Return ONLY a JSON object whose keys are exactly these field names: " +
			strings.Join(constants.ExtractedFields, ", ") + ".",
		"Use ISO-8601 dates (YYYY-MM-DD) for 'Start Date' and 'End Date'.",
		"'Capex', 'IRR' and 'NPV' must be plain JSON numbers without thousands separators or currency symbols.",
		"'Opex' may be free text when the document gives a range or narrative.",
		"'Status' should be one of: " + strings.Join(constants.StatusStrings(), ", ") + " when the document supports it.",
		"If a currency is evident, include a 'Currency' key with a 3-letter ISO 4217 code; default to " + defCur + " if uncertain.",
		"Extract values literally from the document. Do not invent, estimate, or summarize beyond what is written.",
		"Never output null. If a field is not present in the document, omit it.",
	}
	return strings.Join(parts, " ")
}

// BuildUserPrompt packages the filename hint and a bounded excerpt of the
// document text.
func BuildUserPrompt(req ExtractRequest) string {
	var b strings.Builder
	if filename := strings.TrimSpace(req.FilenameHint); filename != "" {
		b.WriteString("Filename: ")
		b.WriteString(filename)
		b.WriteString("\n")
	}
	text := strings.TrimSpace(req.Text)
	b.WriteString("\nDocument text (first ~12k chars):\n")
	if len(text) > maxPromptTextLen {
		b.WriteString(text[:maxPromptTextLen])
		b.WriteString("\n…(truncated)")
	} else {
		b.WriteString(text)
	}
	return b.String()
}
