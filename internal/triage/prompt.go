package triage

import (
	"bytes"
	_ "embed"
	"strings"
	"text/template"
)

// SystemInstruction is sent with every remote request.
const SystemInstruction = "You are a Cyber Sentinel. Return ONLY items from the list that are suspicious/dangerous. " +
	"Copy each item verbatim. Raw text, one per line."

//go:embed prompt.tmpl
var promptTemplate string

var promptTmpl = template.Must(template.New("zones").Parse(promptTemplate))

type promptData struct {
	Intent string
	Zones  []string
}

// BuildPrompt renders the user payload: the intent line followed by one zone per line.
func BuildPrompt(intent string, zones []string) string {
	var buf bytes.Buffer
	_ = promptTmpl.Execute(&buf, promptData{Intent: strings.TrimSpace(intent), Zones: zones})
	return strings.TrimRight(buf.String(), "\n")
}

// ParseResponse keeps the response lines that exactly equal a member of batch,
// after trimming surrounding whitespace. Duplicates collapse; the result
// follows batch order. Anything else the model wrote is discarded.
func ParseResponse(response string, batch []string) []string {
	proposed := make(map[string]struct{})
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			proposed[line] = struct{}{}
		}
	}
	out := make([]string, 0, len(proposed))
	for _, z := range batch {
		if _, ok := proposed[z]; ok {
			out = append(out, z)
			delete(proposed, z)
		}
	}
	return out
}
