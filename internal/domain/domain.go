// Package domain holds the persisted records of the employer ratings
// system. Engine math lives in internal/engine and works on plain values;
// these rows are what the repositories read and write.
package domain

// Evidence tracks.
const (
	TrackProject   = "project"   // structured on-site compliance assessments
	TrackExpertise = "expertise" // free-form organiser expertise assessments
)

// Employer role contexts used to select weight profiles.
const (
	RoleBuilder         = "builder"
	RoleTradeContractor = "trade_contractor"
)

// EBA (enterprise bargaining agreement) status, the gating factor.
const (
	EbaActive  = "active"
	EbaPending = "pending"
	EbaExpired = "expired"
	EbaNone    = "none"
)

// FinalRating lifecycle.
const (
	RatingStatusActive      = "active"
	RatingStatusUnderReview = "under_review"
	RatingStatusDisputed    = "disputed"
	RatingStatusSuperseded  = "superseded"
	RatingStatusArchived    = "archived"
)

// Dispute workflow states.
const (
	DisputePending            = "pending"
	DisputeUnderReview        = "under_review"
	DisputeEvidenceCollection = "evidence_collection"
	DisputeMediation          = "mediation"
	DisputeResolved           = "resolved"
	DisputeRejected           = "rejected"
	DisputeEscalated          = "escalated"
)

// History change types.
const (
	ChangeInitial       = "initial"
	ChangeUpgrade       = "upgrade"
	ChangeDowngrade     = "downgrade"
	ChangeUnchanged     = "unchanged"
	ChangeDisputeDriven = "dispute_driven"
)
