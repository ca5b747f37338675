package screening

import (
	"fmt"

	"orgvet/internal/dataset"
)

// RevocationMatcher classifies an EIN against the IRS auto-revocation list.
type RevocationMatcher struct {
	store Store
}

func NewRevocationMatcher(store Store) *RevocationMatcher {
	return &RevocationMatcher{store: store}
}

// Check validates format first: a malformed EIN short-circuits without
// touching the store. On a valid EIN the outcome is one of four states —
// not found (clean), reinstated (clean), currently revoked, or invalid
// input.
func (m *RevocationMatcher) Check(ein string) RevocationResult {
	normalized, ok := dataset.NormalizeEIN(ein)
	if !ok {
		return RevocationResult{
			Found:   false,
			Revoked: false,
			Detail:  fmt.Sprintf("invalid format: EIN %q is not 9 digits", ein),
		}
	}

	row := m.store.LookupEIN(normalized)
	if row == nil {
		return RevocationResult{
			Found:   false,
			Revoked: false,
			Detail:  "EIN not found on the auto-revocation list",
		}
	}

	if row.Reinstated() {
		return RevocationResult{
			Found:             true,
			Revoked:           false,
			Detail:            fmt.Sprintf("exemption was revoked on %s but reinstated on %s", row.RevocationDate, row.ReinstatementDate),
			LegalName:         row.LegalName,
			RevocationDate:    row.RevocationDate,
			ReinstatementDate: row.ReinstatementDate,
		}
	}

	return RevocationResult{
		Found:          true,
		Revoked:        true,
		Detail:         fmt.Sprintf("tax-exempt status revoked on %s and not reinstated", row.RevocationDate),
		LegalName:      row.LegalName,
		RevocationDate: row.RevocationDate,
	}
}
