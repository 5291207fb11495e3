package nameutil

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"lowercase", "Albert", "albert"},
		{"diacritics", "Müller", "muller"},
		{"sharp s", "Groß", "gross"},
		{"nordic", "Åse Øberg", "ase oberg"},
		{"dots become spaces", "J.R.", "j r"},
		{"dash becomes space", "Smith-Miller", "smith miller"},
		{"apostrophe dropped", "O'Brien", "obrien"},
		{"digits dropped", "Smith 2nd", "smith nd"},
		{"collapse whitespace", "  Tim   W.  ", "tim w"},
		{"ampersand", "Smith & Miller", "smith and miller"},
		{"brackets dropped", "Jan (Hans)", "jan hans"},
		{"slash becomes space", "Anna/Marie", "anna marie"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.expected {
				t.Errorf("Normalize(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestRemoveParticles(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"single token untouched", "von", "von"},
		{"particle removed", "van berg", "berg"},
		{"two particles removed", "von der heide", "heide"},
		{"graf removed", "graf zeppelin", "zeppelin"},
		{"would become empty", "van der", "van der"},
		{"no particles", "smith miller", "smith miller"},
		{"particle as substring kept", "vandermeer hof", "vandermeer hof"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RemoveParticles(tt.input); got != tt.expected {
				t.Errorf("RemoveParticles(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}
