package screening

import (
	"fmt"
	"strings"

	"orgvet/internal/normalize"
)

// SanctionsMatcher classifies an organization name against the OFAC SDN
// index. Matching is exact on the canonical form only.
type SanctionsMatcher struct {
	store Store
}

func NewSanctionsMatcher(store Store) *SanctionsMatcher {
	return &SanctionsMatcher{store: store}
}

// Check returns every entity indexed under the name's canonical form. Each
// match is classified primary when the entity's own normalized primary name
// equals the query key, alias when the query only reached it through an
// alias entry.
func (m *SanctionsMatcher) Check(name string) SanctionsResult {
	if strings.TrimSpace(name) == "" {
		return SanctionsResult{Found: false, Detail: "empty name, nothing to check"}
	}

	rows := m.store.LookupName(name)
	if len(rows) == 0 {
		return SanctionsResult{Found: false, Detail: "no SDN match for name"}
	}

	queryKey := normalize.Key(name)
	matches := make([]SanctionsMatch, 0, len(rows))
	for _, row := range rows {
		matchedOn := MatchedOnAlias
		if row.NameKey == queryKey {
			matchedOn = MatchedOnPrimary
		}
		matches = append(matches, SanctionsMatch{
			EntityNumber: row.EntityNumber,
			PrimaryName:  row.PrimaryName,
			EntityType:   row.EntityType,
			Program:      row.Program,
			MatchedOn:    matchedOn,
		})
	}

	return SanctionsResult{
		Found:   true,
		Detail:  fmt.Sprintf("matched %d SDN entities", len(matches)),
		Matches: matches,
	}
}
