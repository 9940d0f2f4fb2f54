package usecase

import (
	"strconv"
	"strings"

	"resume-forge/internal/model"
	"resume-forge/pkg/validator"
)

// Per-step checks. Each returns nil or a *ValidationError keyed by field.

func required(v *ValidationError, record map[string]string, keys ...string) {
	for _, k := range keys {
		if strings.TrimSpace(record[k]) == "" {
			v.add(k, validator.RequiredMessage(k))
		}
	}
}

func checkDate(v *ValidationError, field, value string) {
	if value != "" && !validator.Date(value) {
		v.add(field, "Please enter a valid date (YYYY, YYYY-MM or Present)")
	}
}

func checkURL(v *ValidationError, field, value, label string) {
	if !validator.URL(value) {
		v.add(field, "Please enter a valid "+label+" URL")
	}
}

// PersonalInfoValidator requires name, email and phone and checks formats.
func PersonalInfoValidator(p model.PersonalInfo) error {
	v := &ValidationError{}
	required(v, p.PersonalFields(), model.RequiredPersonal...)
	if p.Email != "" && !validator.Email(p.Email) {
		v.add("email", "Please enter a valid email address")
	}
	if p.Phone != "" && !validator.Phone(p.Phone) {
		v.add("phone", "Please enter a valid phone number")
	}
	checkURL(v, "linkedin", p.LinkedIn, "LinkedIn")
	checkURL(v, "github", p.GitHub, "GitHub")
	return v.orNil()
}

// ExperienceValidator requires company, position and start date.
func ExperienceValidator(e model.Experience) error {
	v := &ValidationError{}
	required(v, map[string]string{
		"company":    e.Company,
		"position":   e.Position,
		"start_date": e.StartDate,
	}, "company", "position", "start_date")
	checkDate(v, "start_date", e.StartDate)
	checkDate(v, "end_date", e.EndDate)
	return v.orNil()
}

func EducationValidator(e model.Education) error {
	v := &ValidationError{}
	required(v, map[string]string{
		"institution": e.Institution,
		"degree":      e.Degree,
		"year":        e.Year,
	}, "institution", "degree", "year")
	checkDate(v, "year", e.Year)
	if !validator.GPA(e.GPA) {
		v.add("gpa", "GPA must be a number between 0.0 and 4.0")
	}
	return v.orNil()
}

func ProjectValidator(p model.Project) error {
	v := &ValidationError{}
	required(v, map[string]string{
		"name":         p.Name,
		"technologies": p.Technologies,
	}, "name", "technologies")
	checkURL(v, "url", p.URL, "project")
	return v.orNil()
}

func CertificationValidator(c model.Certification) error {
	v := &ValidationError{}
	required(v, map[string]string{
		"name":   c.Name,
		"issuer": c.Issuer,
		"date":   c.Date,
	}, "name", "issuer", "date")
	checkDate(v, "date", c.Date)
	return v.orNil()
}

func LanguageValidator(l model.Language) error {
	v := &ValidationError{}
	if strings.TrimSpace(l.Name) == "" {
		v.add("name", "Please enter a language name")
	}
	if !validator.Proficiency(l.Proficiency) {
		v.add("proficiency", "Proficiency must be one of "+strings.Join(validator.Proficiencies, ", "))
	}
	return v.orNil()
}

// DocumentValidator runs every step check over a whole document, prefixing
// fields with their section and index. Used when a document is restored or
// imported.
func DocumentValidator(doc model.Document) error {
	out := &ValidationError{}
	merge := func(prefix string, err error) {
		if ve, ok := err.(*ValidationError); ok {
			for f, m := range ve.Fields {
				out.add(prefix+f, m)
			}
		}
	}
	p := doc.PersonalInfo
	if !validator.Email(p.Email) && p.Email != "" {
		out.add("personal_info.email", "Please enter a valid email address")
	}
	if p.Phone != "" && !validator.Phone(p.Phone) {
		out.add("personal_info.phone", "Please enter a valid phone number")
	}
	checkURL(out, "personal_info.linkedin", p.LinkedIn, "LinkedIn")
	checkURL(out, "personal_info.github", p.GitHub, "GitHub")
	for i, e := range doc.Experience {
		merge(indexed("experience", i), ExperienceValidator(e))
	}
	for i, e := range doc.Education {
		merge(indexed("education", i), EducationValidator(e))
	}
	for i, pr := range doc.Projects {
		merge(indexed("projects", i), ProjectValidator(pr))
	}
	for i, c := range doc.Certifications {
		merge(indexed("certifications", i), CertificationValidator(c))
	}
	for i, l := range doc.Languages {
		merge(indexed("languages", i), LanguageValidator(l))
	}
	return out.orNil()
}

func indexed(section string, i int) string {
	return section + "[" + strconv.Itoa(i) + "]."
}
