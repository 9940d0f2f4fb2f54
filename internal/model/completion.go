package model

import "strings"

// RequiredPersonal are the personal fields a document needs to be complete.
var RequiredPersonal = []string{"full_name", "email", "phone"}

// Completion returns the share of filled required personal fields plus one
// point for each non-empty experience, education and skills section, as a
// percentage. Empty sections do not count against the total.
func Completion(doc Document) float64 {
	fields := doc.PersonalInfo.PersonalFields()
	total, done := len(RequiredPersonal), 0
	for _, k := range RequiredPersonal {
		if strings.TrimSpace(fields[k]) != "" {
			done++
		}
	}
	for _, filled := range []bool{len(doc.Experience) > 0, len(doc.Education) > 0, len(doc.Skills) > 0} {
		if filled {
			total++
			done++
		}
	}
	return float64(done) / float64(total) * 100
}

// CheckStatus is the state of one checklist line.
type CheckStatus string

const (
	CheckDone        CheckStatus = "complete"
	CheckMissing     CheckStatus = "missing"
	CheckOptional    CheckStatus = "optional"
	CheckRecommended CheckStatus = "recommended"
)

type CheckItem struct {
	Section string      `json:"section"`
	Status  CheckStatus `json:"status"`
}

// Checklist summarizes which sections are filled before export.
func Checklist(doc Document) []CheckItem {
	status := func(ok bool, otherwise CheckStatus) CheckStatus {
		if ok {
			return CheckDone
		}
		return otherwise
	}
	return []CheckItem{
		{"Personal Information", status(strings.TrimSpace(doc.PersonalInfo.FullName) != "", CheckMissing)},
		{"Work Experience", status(len(doc.Experience) > 0, CheckOptional)},
		{"Education", status(len(doc.Education) > 0, CheckOptional)},
		{"Skills", status(len(doc.Skills) > 0, CheckRecommended)},
	}
}
