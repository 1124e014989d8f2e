package validation

import "testing"

func TestValidatePhone(t *testing.T) {
	valid := []string{
		"(555) 212-4880",
		"555-212-4880",
		"+1 555 212 4880",
		"5552124",
	}
	for _, p := range valid {
		if err := ValidatePhone(p); err != nil {
			t.Errorf("ValidatePhone(%q) = %v, want nil", p, err)
		}
	}

	invalid := []string{
		"",
		"call me",
		"123",
		"5552124880x99999999999",
	}
	for _, p := range invalid {
		if err := ValidatePhone(p); err == nil {
			t.Errorf("ValidatePhone(%q) = nil, want error", p)
		}
	}
}
