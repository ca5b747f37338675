package vetting

import (
	"fmt"

	"orgvet/internal/litigation"
	"orgvet/internal/screening"
)

// Litigation severity thresholds.
const highCaseCount = 3

// Aggregate combines the three check results into severity-tagged flags.
// This is pure domain logic - no I/O, no side effects. Flags are appended
// in the fixed order revocation, sanctions, litigation so output stays
// deterministic. A nil result means that source was not checked and
// contributes nothing.
func Aggregate(rev *screening.RevocationResult, sanc *screening.SanctionsResult, lit *litigation.Result) []Flag {
	flags := []Flag{}

	if rev != nil && rev.Revoked {
		flags = append(flags, Flag{
			Severity: SeverityCritical,
			Source:   SourceRevocation,
			Type:     "tax_exempt_status_revoked",
			Detail:   rev.Detail,
		})
	}

	if sanc != nil && sanc.Found {
		flags = append(flags, Flag{
			Severity: SeverityCritical,
			Source:   SourceSanctions,
			Type:     "sdn_list_match",
			Detail:   sanc.Detail,
		})
	}

	if lit != nil && lit.CaseCount >= 1 {
		severity := SeverityMedium
		if lit.CaseCount >= highCaseCount {
			severity = SeverityHigh
		}
		flags = append(flags, Flag{
			Severity: severity,
			Source:   SourceLitigation,
			Type:     "federal_litigation",
			Detail:   lit.Detail,
		})
	}

	return flags
}

// Recommend maps a flag set to the final call: any CRITICAL flag blocks,
// any flag at all warrants review, otherwise clean.
func Recommend(flags []Flag) Recommendation {
	anyFlag := len(flags) > 0
	for _, f := range flags {
		if f.Severity == SeverityCritical {
			return RecommendationBlock
		}
	}
	if anyFlag {
		return RecommendationFlag
	}
	return RecommendationClean
}

var headlines = map[Recommendation]string{
	RecommendationClean: "No watchlist flags found",
	RecommendationFlag:  "Review recommended: watchlist flags found",
	RecommendationBlock: "Do not proceed: critical watchlist flags",
}

// Summarize renders flags plus recommendation into the user-facing summary.
// The headline is a fixed lookup keyed by recommendation.
func Summarize(flags []Flag, rec Recommendation, sourcesChecked int) Summary {
	return Summary{
		Headline:       headlines[rec],
		Detail:         fmt.Sprintf("%d of 3 sources checked, %d flag(s) found", sourcesChecked, len(flags)),
		SourcesChecked: sourcesChecked,
		FlagCount:      len(flags),
	}
}
