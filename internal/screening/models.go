// Package screening holds the two store-backed watchlist matchers. Both are
// stateless classifiers: they validate input shape, translate a dataset
// lookup into a typed result, and never treat absence of a match as an
// error.
package screening

import "orgvet/internal/dataset"

// MatchedOn distinguishes a sanctions hit on an entity's primary registered
// name from one that matched only via a known alias.
type MatchedOn string

const (
	MatchedOnPrimary MatchedOn = "primary"
	MatchedOnAlias   MatchedOn = "alias"
)

// RevocationResult is the four-outcome classification of an EIN check.
// Not-found and reinstated are both clean for scoring purposes but
// semantically distinct; Detail surfaces which one applies.
type RevocationResult struct {
	Found             bool   `json:"found"`
	Revoked           bool   `json:"revoked"`
	Detail            string `json:"detail"`
	LegalName         string `json:"legalName,omitempty"`
	RevocationDate    string `json:"revocationDate,omitempty"`
	ReinstatementDate string `json:"reinstatementDate,omitempty"`
}

// SanctionsResult reports every SDN entity indexed under the queried name's
// canonical form, not just the first.
type SanctionsResult struct {
	Found   bool             `json:"found"`
	Detail  string           `json:"detail"`
	Matches []SanctionsMatch `json:"matches,omitempty"`
}

type SanctionsMatch struct {
	EntityNumber string    `json:"entityNumber"`
	PrimaryName  string    `json:"primaryName"`
	EntityType   string    `json:"entityType,omitempty"`
	Program      string    `json:"program,omitempty"`
	MatchedOn    MatchedOn `json:"matchedOn"`
}

// Store is the slice of the dataset store the matchers need. Kept small so
// tests can stub quickly.
type Store interface {
	LookupEIN(ein string) *dataset.RevocationRow
	LookupName(name string) []*dataset.SanctionsRow
}
