package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompletion(t *testing.T) {
	doc := NewDocument()
	assert.Equal(t, 0.0, Completion(doc))

	doc.PersonalInfo.FullName = "Jane Doe"
	assert.InDelta(t, 33.33, Completion(doc), 0.01)

	doc.PersonalInfo.Email = "jane@x.com"
	doc.PersonalInfo.Phone = "+15550001111"
	assert.Equal(t, 100.0, Completion(doc))

	assert.Equal(t, 100.0, Completion(Sample()))

	partial := Sample()
	partial.PersonalInfo.Phone = ""
	assert.InDelta(t, 83.33, Completion(partial), 0.01)
}

func TestChecklist(t *testing.T) {
	got := Checklist(NewDocument())
	assert.Equal(t, []CheckItem{
		{"Personal Information", CheckMissing},
		{"Work Experience", CheckOptional},
		{"Education", CheckOptional},
		{"Skills", CheckRecommended},
	}, got)

	for _, item := range Checklist(Sample()) {
		assert.Equal(t, CheckDone, item.Status, item.Section)
	}
}
