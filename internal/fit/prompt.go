package fit

import (
	_ "embed"
	"strings"
	"text/template"
)

// PromptVersion identifies the embedded prompt template.
const PromptVersion = "fit_v1"

//go:embed prompts/fit_v1.txt
var promptFitV1 string

var promptTemplate = template.Must(template.New(PromptVersion).Option("missingkey=error").Parse(promptFitV1))

// BuildPrompt renders the evaluation prompt for req.
func BuildPrompt(req Request) (string, error) {
	var b strings.Builder
	data := Request{
		JobTitle:        orNotSpecified(req.JobTitle),
		JobDescription:  orNotSpecified(req.JobDescription),
		JobRequirements: orNotSpecified(req.JobRequirements),
		ResumeText:      strings.TrimSpace(req.ResumeText),
	}
	if err := promptTemplate.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

func orNotSpecified(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "Not specified"
	}
	return s
}
