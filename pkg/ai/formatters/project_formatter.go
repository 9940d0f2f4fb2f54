package formatters

import (
	"context"
	"fmt"
)

// ProjectDescription asks for a single-line description of roughly 40-50
// words.
func (n *Narrator) ProjectDescription(ctx context.Context, name string, technologies []string) (string, error) {
	return n.generate(ctx, projectPrompt(name, technologies))
}

func projectPrompt(name string, technologies []string) string {
	return fmt.Sprintf(`You are writing a resume project description for a technical or non-technical project.

Project Name: %s
Technologies: %s

Write a concise 1-line project description (aim for 40-50 words) that includes:
- What the project does
- Your contribution or key functionality
- Tools used

Avoid buzzwords. Be direct and technical.

Example:
Built a resume builder that auto-generates tailored resumes from user inputs, reducing manual effort by 80%%; integrated PDF export and multiple template options for customizable outputs.

%s`, name, joinList(technologies), noQuotes)
}
