// Package formatters builds the prompts for resume prose and cleans up what
// the model sends back.
package formatters

import (
	"context"
	"strings"
	"time"
)

// Completer is a single prompt-in, text-out call.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type Narrator struct {
	llm Completer
	now func() time.Time
}

func NewNarrator(llm Completer) *Narrator {
	return &Narrator{llm: llm, now: time.Now}
}

func (n *Narrator) generate(ctx context.Context, prompt string) (string, error) {
	out, err := n.llm.Complete(ctx, prompt)
	if err != nil {
		return "", err
	}
	return CleanText(out), nil
}

// CleanText trims whitespace and one layer of matching quotes.
func CleanText(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '"' || first == '\'') {
			s = s[1 : len(s)-1]
		}
	}
	return strings.TrimSpace(s)
}

const noQuotes = "IMPORTANT: Do not wrap your response in quotes. Return the text directly without any quotation marks."
