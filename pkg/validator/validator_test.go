package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDate(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"2024", true},
		{"2024-05", true},
		{"Present", true},
		{"present", true},
		{"PRESENT", true},
		{"May 2024", false},
		{"2024-13-01", false},
		{"24-05", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Date(tt.in))
		})
	}
}

func TestURL(t *testing.T) {
	assert.True(t, URL(""))
	assert.True(t, URL("https://github.com/jane"))
	assert.True(t, URL("http://www.example.com/path?q=1&x=y"))
	assert.True(t, URL("https://linkedin.com/in/jane-doe"))
	assert.False(t, URL("linkedin.com/in/jane"))
	assert.False(t, URL("ftp://example.com"))
	assert.False(t, URL("https://localhost"))
}

func TestEmail(t *testing.T) {
	for _, ok := range []string{"jane@x.com", "john.doe@email.com", "a+b@sub.domain.org"} {
		assert.True(t, Email(ok), ok)
	}
	for _, bad := range []string{"not-an-email", "jane@localhost", "jane.x.com", "@x.com", "jane@x.c", ""} {
		assert.False(t, Email(bad), bad)
	}
}

func TestPhone(t *testing.T) {
	for _, ok := range []string{"+15550001111", "+1-555-0123", "555 0123", "1234567890123456"} {
		assert.True(t, Phone(ok), ok)
	}
	for _, bad := range []string{"", "+", "0123", "12345678901234567", "555-CALL", "++1555"} {
		assert.False(t, Phone(bad), bad)
	}
}

func TestGPA(t *testing.T) {
	for _, ok := range []string{"", "0", "0.0", "3.8", "4", "4.0"} {
		assert.True(t, GPA(ok), ok)
	}
	for _, bad := range []string{"4.5", "abc", "-1", "3.8/4.0", "NaN"} {
		assert.False(t, GPA(bad), bad)
	}
}

func TestProficiency(t *testing.T) {
	assert.True(t, Proficiency("Native"))
	assert.True(t, Proficiency("Basic"))
	assert.False(t, Proficiency("native"))
	assert.False(t, Proficiency("Expert"))
}

func TestRequiredFields(t *testing.T) {
	record := map[string]string{"full_name": "Jane Doe", "email": "  ", "phone": ""}

	got := RequiredFields(record, []string{"full_name", "email", "phone", "credential_id"})

	assert.Equal(t, []string{
		"Email is required",
		"Phone is required",
		"Credential Id is required",
	}, got)
	assert.Empty(t, RequiredFields(record, []string{"full_name"}))
}
