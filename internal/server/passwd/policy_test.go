package passwd

import (
	"strings"
	"testing"
)

func codes(v Violations) map[string]bool {
	m := make(map[string]bool, len(v))
	for _, violation := range v {
		m[violation.Code] = true
	}
	return m
}

func TestValidate_AllRulesPass(t *testing.T) {
	t.Parallel()

	p := DefaultPolicy()

	if v := p.Validate("Abcdef1!"); v != nil {
		t.Fatalf("expected no violations, got %v", v)
	}
}

func TestValidate_ReturnsEveryViolation(t *testing.T) {
	t.Parallel()

	p := DefaultPolicy()

	tests := []struct {
		name     string
		password string
		want     []string
	}{
		{
			name:     "empty password fails everything",
			password: "",
			want:     []string{"too_short", "missing_lowercase", "missing_uppercase", "missing_digit", "missing_special"},
		},
		{
			name:     "short but otherwise complete",
			password: "Ab1!",
			want:     []string{"too_short"},
		},
		{
			name:     "no digit and no special",
			password: "Abcdefgh",
			want:     []string{"missing_digit", "missing_special"},
		},
		{
			name:     "no uppercase",
			password: "abcdef1!",
			want:     []string{"missing_uppercase"},
		},
		{
			name:     "no lowercase",
			password: "ABCDEF1!",
			want:     []string{"missing_lowercase"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := p.Validate(tt.password)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d violations %v, want %d %v", len(got), got, len(tt.want), tt.want)
			}
			gotCodes := codes(got)
			for _, code := range tt.want {
				if !gotCodes[code] {
					t.Errorf("missing expected violation %q in %v", code, got)
				}
			}
		})
	}
}

func TestValidate_ConfigurableRules(t *testing.T) {
	t.Parallel()

	p := Policy{MinLength: 12, SpecialChars: "#"}

	v := p.Validate("Abcdef1!")
	gotCodes := codes(v)
	if !gotCodes["too_short"] {
		t.Errorf("expected too_short for 8 chars with min 12, got %v", v)
	}
	if !gotCodes["missing_special"] {
		t.Errorf("expected missing_special since '!' is not in the configured set, got %v", v)
	}

	if v := p.Validate("Abcdefgh1234#"); v != nil {
		t.Fatalf("expected no violations, got %v", v)
	}
}

func TestViolations_ErrorMessageListsEveryRule(t *testing.T) {
	t.Parallel()

	p := DefaultPolicy()
	v := p.Validate("abc")
	if v == nil {
		t.Fatal("expected violations")
	}

	msg := v.Error()
	for _, violation := range v {
		if !strings.Contains(msg, violation.Message) {
			t.Errorf("error message %q does not mention %q", msg, violation.Message)
		}
	}
}
