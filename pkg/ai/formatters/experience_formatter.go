package formatters

import (
	"context"
	"fmt"
	"strings"
)

// JobDescription asks for a metric-oriented description of at most 50 words.
// start and end are accepted for context but the prompt tells the model to
// leave the duration out.
func (n *Narrator) JobDescription(ctx context.Context, company, position, start, end, technologies string) (string, error) {
	return n.generate(ctx, jobPrompt(company, position, technologies))
}

func jobPrompt(company, position, technologies string) string {
	return fmt.Sprintf(`You are writing a concise, impactful job experience summary for a resume.

Company: %s
Role: %s
Technologies: %s

Write a single, direct 1-2 line summary (max 50 words) that includes:
- What you did in this role (main responsibility or achievement)
- The technologies/tools you used
- Any specific impact, result, or metric (if available)

Be specific, avoid generic phrases, and do not mention the duration. Use a first-person or active voice.

Example:
Developed scalable REST APIs using Python and FastAPI, improving data processing speed by 30%% for financial analytics. Led a team of 3 engineers and integrated CI/CD pipelines with Docker and GitHub Actions.

%s`, company, position, strings.TrimSpace(technologies), noQuotes)
}

// SplitTechnologies turns "Go, SQL ,  Redis" into its trimmed parts.
func SplitTechnologies(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func joinList(items []string) string {
	return strings.Join(items, ", ")
}
