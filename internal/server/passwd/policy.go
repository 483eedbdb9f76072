// Package passwd implements password complexity validation and one-way
// password hashing for the credential service.
package passwd

import (
	"fmt"
	"strings"
	"unicode"
)

// Violation identifies one failed complexity rule.
type Violation struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Violations collects every rule a candidate password failed. It implements
// error so services can return the full set as structured data.
type Violations []Violation

func (v Violations) Error() string {
	msgs := make([]string, 0, len(v))
	for _, violation := range v {
		msgs = append(msgs, violation.Message)
	}
	return "password policy: " + strings.Join(msgs, "; ")
}

// Policy holds configurable password complexity rules. The zero value is not
// usable; construct with DefaultPolicy and override as needed.
type Policy struct {
	// MinLength is the minimum password length in runes.
	MinLength int
	// SpecialChars is the set of characters that satisfy the symbol rule.
	SpecialChars string
}

// DefaultPolicy returns the baseline rules: at least 8 characters with at
// least one lowercase letter, uppercase letter, digit, and special character.
func DefaultPolicy() Policy {
	return Policy{
		MinLength:    8,
		SpecialChars: `!@#$%^&*()-_=+[]{};:,.<>?`,
	}
}

// Validate checks the candidate password against every rule and returns all
// violations, not just the first, so the caller can present complete
// feedback. A nil return means the password satisfies the policy.
//
// Validate is a pure function over the policy and its input.
func (p Policy) Validate(password string) Violations {
	var (
		length     int
		hasLower   bool
		hasUpper   bool
		hasDigit   bool
		hasSpecial bool
	)

	for _, r := range password {
		length++
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
		if strings.ContainsRune(p.SpecialChars, r) {
			hasSpecial = true
		}
	}

	var violations Violations
	if length < p.MinLength {
		violations = append(violations, Violation{
			Code:    "too_short",
			Message: fmt.Sprintf("must be at least %d characters long", p.MinLength),
		})
	}
	if !hasLower {
		violations = append(violations, Violation{
			Code:    "missing_lowercase",
			Message: "must contain at least one lowercase letter",
		})
	}
	if !hasUpper {
		violations = append(violations, Violation{
			Code:    "missing_uppercase",
			Message: "must contain at least one uppercase letter",
		})
	}
	if !hasDigit {
		violations = append(violations, Violation{
			Code:    "missing_digit",
			Message: "must contain at least one digit",
		})
	}
	if !hasSpecial {
		violations = append(violations, Violation{
			Code:    "missing_special",
			Message: fmt.Sprintf("must contain at least one of %q", p.SpecialChars),
		})
	}

	return violations
}
