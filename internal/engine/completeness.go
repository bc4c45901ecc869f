package engine

// CompletenessPoints are the fixed point awards for presence of each data
// source. Defaults sum to 100.
type CompletenessPoints struct {
	Project   int `yaml:"project"`
	Expertise int `yaml:"expertise"`
	Gating    int `yaml:"gating"`
}

func DefaultCompletenessPoints() CompletenessPoints {
	return CompletenessPoints{Project: 40, Expertise: 40, Gating: 20}
}

// Completeness sums the fixed points for exactly the inputs present.
func (p CompletenessPoints) Completeness(hasProject, hasExpertise, hasGating bool) int {
	total := 0
	if hasProject {
		total += p.Project
	}
	if hasExpertise {
		total += p.Expertise
	}
	if hasGating {
		total += p.Gating
	}
	return total
}
