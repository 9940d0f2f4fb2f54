package formatters

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"resume-forge/internal/model"
)

var roleKeywords = []struct {
	role     string
	keywords []string
}{
	{"Software Engineer", []string{"engineer", "developer", "programmer"}},
	{"Data Scientist", []string{"scientist", "analyst", "ml", "ai"}},
	{"Technical Leader", []string{"manager", "lead", "architect"}},
	{"Full-Stack Developer", []string{"full-stack", "fullstack", "frontend", "backend"}},
}

// PrimaryRole maps the most recent position title to a role label by
// keyword, first match wins.
func PrimaryRole(experience []model.Experience) string {
	if len(experience) == 0 {
		return "Professional"
	}
	position := strings.ToLower(experience[0].Position)
	for _, r := range roleKeywords {
		for _, k := range r.keywords {
			if strings.Contains(position, k) {
				return r.role
			}
		}
	}
	return "Professional"
}

// KeyTechnologies collects up to six distinct technologies, experience
// entries first, then skills.
func KeyTechnologies(experience []model.Experience, skills []string) []string {
	var out []string
	seen := map[string]bool{}
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			return
		}
		seen[s] = true
		out = append(out, s)
	}
	for _, e := range experience {
		for _, t := range strings.Split(e.Technologies, ",") {
			add(t)
		}
	}
	for _, s := range skills {
		add(s)
	}
	if len(out) > 6 {
		out = out[:6]
	}
	return out
}

// YearsOfExperience sums end year minus start year per entry. "Present"
// counts as currentYear; entries without a parseable year are skipped.
func YearsOfExperience(experience []model.Experience, currentYear int) int {
	total := 0
	for _, e := range experience {
		start, ok := leadingYear(e.StartDate)
		if !ok {
			continue
		}
		end := currentYear
		if !strings.EqualFold(e.EndDate, "present") {
			if end, ok = leadingYear(e.EndDate); !ok {
				continue
			}
		}
		total += end - start
	}
	return total
}

func leadingYear(s string) (int, bool) {
	if len(s) < 4 {
		return 0, false
	}
	y, err := strconv.Atoi(s[:4])
	return y, err == nil
}

// ProfileSummary asks for a 40-50 word first-person summary built from the
// whole document context.
func (n *Narrator) ProfileSummary(ctx context.Context, info model.PersonalInfo, skills []string, experience []model.Experience, education []model.Education) (string, error) {
	return n.generate(ctx, n.profilePrompt(info, skills, experience, education))
}

func (n *Narrator) profilePrompt(info model.PersonalInfo, skills []string, experience []model.Experience, education []model.Education) string {
	role := PrimaryRole(experience)
	years := YearsOfExperience(experience, n.now().Year())

	recent := "None at None"
	if len(experience) > 0 {
		recent = experience[0].Position + " at " + experience[0].Company
	}
	school := "None from None"
	if len(education) > 0 {
		school = education[0].Degree + " from " + education[0].Institution
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You're a professional resume writer. Generate an impressive first-person profile summary (40-50 words) for a %s.\n\n", role)
	b.WriteString("Candidate Details:\n")
	fmt.Fprintf(&b, "Name: %s\n", info.FullName)
	fmt.Fprintf(&b, "Primary Role: %s\n", role)
	fmt.Fprintf(&b, "Years of Experience: %d years\n", years)
	fmt.Fprintf(&b, "Key Technologies: %s\n", strings.Join(KeyTechnologies(experience, skills), ", "))
	fmt.Fprintf(&b, "Recent Experience: %s\n", recent)
	fmt.Fprintf(&b, "Education: %s\n\n", school)
	b.WriteString(`Guidelines:
- Start with "I'm a [role]" or "Experienced [role]"
- Mention specific achievements or impact (e.g., "led teams", "improved performance by X%", "built scalable systems")
- Include 2-3 key technologies that match the role
- Show progression or specialization (e.g., "specializing in", "with expertise in")
- Keep it 40-50 words, impactful and specific
- Avoid generic phrases like "skilled in" or "proficient in"

Example:
I'm a Software Engineer with 3+ years building scalable web applications using React and Node.js. Led development of microservices architecture improving system performance by 40%, specializing in cloud deployment and CI/CD pipelines.

`)
	b.WriteString(noQuotes)
	return b.String()
}
