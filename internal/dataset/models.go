package dataset

import "strings"

// Source selects which dataset a refresh targets.
type Source string

const (
	SourceIRS  Source = "irs"
	SourceOFAC Source = "ofac"
	SourceAll  Source = "all"
)

// ParseSource validates a refresh target supplied by the admin surface.
func ParseSource(s string) (Source, bool) {
	switch Source(strings.ToLower(strings.TrimSpace(s))) {
	case SourceIRS:
		return SourceIRS, true
	case SourceOFAC:
		return SourceOFAC, true
	case SourceAll, Source(""):
		return SourceAll, true
	}
	return "", false
}

// RevocationRow is one entry from the IRS auto-revocation list. Rows are
// immutable once parsed and owned exclusively by their generation.
type RevocationRow struct {
	EIN               string
	LegalName         string
	DBA               string
	City              string
	State             string
	ZIP               string
	Country           string
	ExemptionType     string
	RevocationDate    string
	PostingDate       string
	ReinstatementDate string
}

// Reinstated reports whether the organization has regained exemption.
func (r *RevocationRow) Reinstated() bool {
	return r.ReinstatementDate != ""
}

// SanctionsRow is one primary entity from the OFAC SDN list. Alias entries
// are folded into the name index at load time and never kept as rows.
type SanctionsRow struct {
	EntityNumber string
	PrimaryName  string
	EntityType   string
	Program      string
	Title        string
	Remarks      string

	// NameKey is the canonical form of PrimaryName, precomputed so
	// matchers can classify primary vs alias hits without re-normalizing.
	NameKey string
}

// revocationGeneration is one complete, immutable snapshot of the
// revocation indices. Published whole via an atomic pointer swap.
type revocationGeneration struct {
	byEIN map[string]*RevocationRow
}

// sanctionsGeneration is one complete, immutable snapshot of the sanctions
// name index.
type sanctionsGeneration struct {
	byName     map[string][]*SanctionsRow
	sdnCount   int
	aliasCount int
}

// NormalizeEIN strips dashes and whitespace and reports whether the result
// is exactly nine ASCII digits. Applied before both storage and lookup so
// the EIN key space stays uniform.
func NormalizeEIN(ein string) (string, bool) {
	var b strings.Builder
	b.Grow(len(ein))
	for _, r := range ein {
		switch {
		case r == '-', r == ' ', r == '\t':
			continue
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			return "", false
		}
	}
	s := b.String()
	if len(s) != 9 {
		return "", false
	}
	return s, true
}
