package formatters

import (
	"context"
	"errors"
	"testing"
	"time"

	"resume-forge/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	prompts []string
	reply   string
	err     error
}

func (r *recorder) Complete(_ context.Context, prompt string) (string, error) {
	r.prompts = append(r.prompts, prompt)
	return r.reply, r.err
}

func TestCleanText(t *testing.T) {
	tests := map[string]string{
		`  "Quoted text"  `: "Quoted text",
		`'single'`:          "single",
		`" padded inside "`: "padded inside",
		`"mismatched'`:      `"mismatched'`,
		`""double""`:        `"double"`,
		"plain\n":           "plain",
		`"`:                 `"`,
	}
	for in, want := range tests {
		assert.Equal(t, want, CleanText(in), in)
	}
}

func TestPrimaryRole(t *testing.T) {
	tests := map[string]string{
		"Senior Developer":     "Software Engineer",
		"Data Analyst":         "Data Scientist",
		"Engineering Manager":  "Software Engineer",
		"Team Lead":            "Technical Leader",
		"Frontend Wizard":      "Full-Stack Developer",
		"Chef":                 "Professional",
		"Solutions Architect":  "Technical Leader",
		"Research Scientist":   "Data Scientist",
	}
	for position, want := range tests {
		assert.Equal(t, want, PrimaryRole([]model.Experience{{Position: position}}), position)
	}
	assert.Equal(t, "Professional", PrimaryRole(nil))
}

func TestKeyTechnologies(t *testing.T) {
	exp := []model.Experience{
		{Technologies: "Go, PostgreSQL"},
		{Technologies: "Go , Redis,,"},
	}
	got := KeyTechnologies(exp, []string{"Redis", "Docker", "Kubernetes", "Terraform", "AWS"})
	assert.Equal(t, []string{"Go", "PostgreSQL", "Redis", "Docker", "Kubernetes", "Terraform"}, got)
}

func TestYearsOfExperience(t *testing.T) {
	exp := []model.Experience{
		{StartDate: "2018-03", EndDate: "2021-06"},
		{StartDate: "2021", EndDate: "Present"},
		{StartDate: "someday", EndDate: "2020"},
		{StartDate: "2015", EndDate: "soon"},
	}
	assert.Equal(t, 3+4, YearsOfExperience(exp, 2025))
}

func TestProfileSummaryPrompt(t *testing.T) {
	rec := &recorder{reply: "\"I'm a Software Engineer with 4 years of experience.\"\n"}
	n := NewNarrator(rec)
	n.now = func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }

	doc := model.Sample()
	out, err := n.ProfileSummary(context.Background(), doc.PersonalInfo, doc.Skills, doc.Experience, doc.Education)
	require.NoError(t, err)
	assert.Equal(t, "I'm a Software Engineer with 4 years of experience.", out)

	require.Len(t, rec.prompts, 1)
	p := rec.prompts[0]
	assert.Contains(t, p, "first-person profile summary (40-50 words) for a Software Engineer")
	assert.Contains(t, p, "Name: John Doe")
	assert.Contains(t, p, "Years of Experience: 3 years")
	assert.Contains(t, p, "Key Technologies: React, Python, PostgreSQL, JavaScript, Node.js, SQL")
	assert.Contains(t, p, "Recent Experience: Senior Developer at Tech Solutions Inc.")
	assert.Contains(t, p, "Education: Bachelor of Computer Science from University of Technology")
}

func TestProjectAndJobPrompts(t *testing.T) {
	rec := &recorder{reply: "'Done.'"}
	n := NewNarrator(rec)

	out, err := n.ProjectDescription(context.Background(), "Resume Builder", []string{"Go", "Chrome"})
	require.NoError(t, err)
	assert.Equal(t, "Done.", out)
	assert.Contains(t, rec.prompts[0], "Project Name: Resume Builder")
	assert.Contains(t, rec.prompts[0], "Technologies: Go, Chrome")
	assert.Contains(t, rec.prompts[0], "40-50 words")
	assert.Contains(t, rec.prompts[0], "80%;")

	_, err = n.JobDescription(context.Background(), "Acme", "Engineer", "2020-01", "Present", "Go")
	require.NoError(t, err)
	assert.Contains(t, rec.prompts[1], "Company: Acme")
	assert.Contains(t, rec.prompts[1], "max 50 words")
	assert.Contains(t, rec.prompts[1], "do not mention the duration")
	assert.NotContains(t, rec.prompts[1], "2020-01")
}

func TestGenerationErrorPropagates(t *testing.T) {
	boom := errors.New("rate limited")
	n := NewNarrator(&recorder{err: boom})
	_, err := n.JobDescription(context.Background(), "Acme", "Engineer", "2020", "2021", "")
	assert.Same(t, boom, err)
}

func TestSplitTechnologies(t *testing.T) {
	assert.Equal(t, []string{"Go", "SQL", "Redis"}, SplitTechnologies("Go, SQL ,  Redis,"))
	assert.Nil(t, SplitTechnologies(" "))
}
