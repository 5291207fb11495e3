package nameutil

import "strings"

// particles is the closed set of noble particles and suffixes removed from
// multi-token surnames.
var particles = map[string]struct{}{
	"van": {}, "von": {}, "de": {}, "d": {}, "di": {}, "dei": {},
	"of": {}, "zu": {}, "zur": {}, "dos": {}, "af": {}, "der": {}, "graf": {},
}

// RemoveParticles deletes noble particles from a multi-token surname.
// Single-token surnames are untouched, and a surname that would become
// empty keeps its original form.
func RemoveParticles(s string) string {
	fields := strings.Fields(s)
	if len(fields) < 2 {
		return s
	}

	kept := fields[:0]
	for _, f := range fields {
		if _, ok := particles[f]; ok {
			continue
		}
		kept = append(kept, f)
	}
	if len(kept) == 0 {
		return s
	}
	return strings.Join(kept, " ")
}
