package reagent

import (
	"bytes"
	_ "embed"
	"text/template"
)

//go:embed prompt_system.tmpl
var systemTemplateContent string

// SystemPromptData is the data passed to the system prompt template.
type SystemPromptData struct {
	// Behavior contains extra behavior instructions and context provided by
	// the caller via Agent.WithBehavior. May be empty.
	Behavior string

	// Catalog is the tool catalog from Registry.Catalog.
	Catalog string

	// AnswerMarker, ActionStart, and ActionEnd are the Parser's literal
	// markers, so prompt and parser cannot drift apart.
	AnswerMarker string
	ActionStart  string
	ActionEnd    string
}

// DefaultSystemTemplate renders the default system prompt: the ReAct
// explanation, the output format contract, and the tool catalog. Replace it
// via Agent.WithSystemTemplate for full control over prompting.
var DefaultSystemTemplate = template.Must(
	template.New("system").Parse(systemTemplateContent),
)

// ExecuteSystemTemplate renders a system prompt template with the given data.
func ExecuteSystemTemplate(tmpl *template.Template, data SystemPromptData) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
