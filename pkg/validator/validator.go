// Package validator holds the field format checks shared by the wizard, the
// CLI and the HTTP layer. Every check is a pure function over a string; empty
// optional values are valid and required-ness is reported separately by
// RequiredFields.
package validator

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	datePattern  = regexp.MustCompile(`^\d{4}(-\d{2})?$`)
	urlPattern   = regexp.MustCompile(`^https?://(www\.)?[-a-zA-Z0-9@:%._+~#=]{1,256}\.[a-zA-Z0-9()]{1,6}\b([-a-zA-Z0-9()@:%_+.~#?&/=]*)$`)
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^\+?[1-9]\d{0,15}$`)
)

// Proficiencies lists the accepted language proficiency levels in display order.
var Proficiencies = []string{"Native", "Fluent", "Advanced", "Intermediate", "Basic"}

// Present is the literal accepted in place of an end date.
const Present = "Present"

// Date accepts YYYY, YYYY-MM or "present" in any case.
func Date(s string) bool {
	if strings.EqualFold(s, Present) {
		return true
	}
	return datePattern.MatchString(s)
}

// URL accepts http(s) URLs with a dotted host. Empty is valid.
func URL(s string) bool {
	if s == "" {
		return true
	}
	return urlPattern.MatchString(s)
}

// Email checks the local@domain.tld shape.
func Email(s string) bool {
	return emailPattern.MatchString(s)
}

// Phone accepts an optional leading + followed by up to 16 digits once spaces
// and hyphens are stripped. The first digit may not be zero.
func Phone(s string) bool {
	cleaned := strings.NewReplacer(" ", "", "-", "").Replace(s)
	return phonePattern.MatchString(cleaned)
}

// GPA accepts a decimal in [0.0, 4.0]. Empty is valid.
func GPA(s string) bool {
	if s == "" {
		return true
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return false
	}
	return v >= 0.0 && v <= 4.0
}

// Proficiency reports whether s is one of Proficiencies.
func Proficiency(s string) bool {
	for _, p := range Proficiencies {
		if s == p {
			return true
		}
	}
	return false
}

// RequiredFields returns one message per key whose value is empty, in the
// order the keys were given.
func RequiredFields(record map[string]string, keys []string) []string {
	var missing []string
	for _, key := range keys {
		if strings.TrimSpace(record[key]) == "" {
			missing = append(missing, RequiredMessage(key))
		}
	}
	return missing
}

// RequiredMessage renders "full_name" as "Full Name is required".
func RequiredMessage(key string) string {
	return fmt.Sprintf("%s is required", Label(key))
}

// Label turns a snake_case key into a title-cased label.
func Label(key string) string {
	parts := strings.Split(key, "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + strings.ToLower(p[1:])
	}
	return strings.Join(parts, " ")
}
