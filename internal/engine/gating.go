package engine

// AgreementStatus is the employer's formal-agreement (EBA) standing, the
// hard gating factor.
type AgreementStatus string

const (
	AgreementActive  AgreementStatus = "active"
	AgreementPending AgreementStatus = "pending"
	AgreementExpired AgreementStatus = "expired"
	AgreementNone    AgreementStatus = "none"
)

// ParseAgreementStatus maps a stored status string; anything unrecognized
// is treated as no agreement.
func ParseAgreementStatus(s string) AgreementStatus {
	switch AgreementStatus(s) {
	case AgreementActive, AgreementPending, AgreementExpired:
		return AgreementStatus(s)
	default:
		return AgreementNone
	}
}

// GatingMode selects how the gating factor enters the final score.
type GatingMode string

const (
	// GatingBlend folds the gating score into the weighted sum with its
	// own weight.
	GatingBlend GatingMode = "blend"
	// GatingCap computes the base from the two tracks only and caps the
	// final at the gating score: no agreement drags the result to worst
	// regardless of track scores.
	GatingCap GatingMode = "cap"
)

// ParseGatingMode fails loudly on unknown modes; callers must be explicit
// about which semantics they intend.
func ParseGatingMode(s string) (GatingMode, error) {
	switch GatingMode(s) {
	case GatingBlend, GatingCap:
		return GatingMode(s), nil
	case "":
		return GatingBlend, nil
	default:
		return "", &ValidationError{Field: "gating_mode", Reason: "unknown mode " + s}
	}
}

// GatingScores maps agreement status to its fixed four-point contribution.
type GatingScores struct {
	Active  float64 `yaml:"active"`
	Pending float64 `yaml:"pending"`
	Expired float64 `yaml:"expired"`
	None    float64 `yaml:"none"`
}

func DefaultGatingScores() GatingScores {
	return GatingScores{Active: 3.0, Pending: 2.0, Expired: 1.5, None: 1.0}
}

// ResolveGating maps the agreement status to its fixed score on the
// four-point scale. Independent of the weighted sum.
func (g GatingScores) ResolveGating(status AgreementStatus) float64 {
	switch status {
	case AgreementActive:
		return g.Active
	case AgreementPending:
		return g.Pending
	case AgreementExpired:
		return g.Expired
	default:
		return g.None
	}
}
