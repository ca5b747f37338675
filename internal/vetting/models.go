package vetting

import (
	"time"

	"orgvet/internal/litigation"
	"orgvet/internal/screening"
)

// Severity ranks a flag. Any CRITICAL flag forces a BLOCK recommendation.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
)

// FlagSource identifies which check raised a flag.
type FlagSource string

const (
	SourceRevocation FlagSource = "revocation"
	SourceSanctions  FlagSource = "sanctions"
	SourceLitigation FlagSource = "litigation"
)

// Flag is a severity-tagged finding. Flags are derived per request, never
// stored.
type Flag struct {
	Severity Severity   `json:"severity"`
	Source   FlagSource `json:"source"`
	Type     string     `json:"type"`
	Detail   string     `json:"detail"`
}

// Recommendation is a pure function of the flag set.
type Recommendation string

const (
	RecommendationClean Recommendation = "CLEAN"
	RecommendationFlag  Recommendation = "FLAG"
	RecommendationBlock Recommendation = "BLOCK"
)

// Summary is the user-facing rendering of flags plus recommendation.
type Summary struct {
	Headline       string `json:"headline"`
	Detail         string `json:"detail"`
	SourcesChecked int    `json:"sourcesChecked"`
	FlagCount      int    `json:"flagCount"`
}

// Request identifies the organization to vet. EIN is optional; without it
// the revocation check is skipped and reported as unchecked.
type Request struct {
	OrgName       string
	EIN           string
	LookbackYears int
}

// Report is the full vetting outcome returned to the caller.
type Report struct {
	ID             string                      `json:"id"`
	OrgName        string                      `json:"orgName"`
	EIN            string                      `json:"ein,omitempty"`
	Revocation     *screening.RevocationResult `json:"revocation,omitempty"`
	Sanctions      screening.SanctionsResult   `json:"sanctions"`
	Litigation     *litigation.Result          `json:"litigation,omitempty"`
	Flags          []Flag                      `json:"flags"`
	Recommendation Recommendation              `json:"recommendation"`
	Summary        Summary                     `json:"summary"`
	CheckedAt      time.Time                   `json:"checkedAt"`
}
