package screening

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orgvet/internal/dataset"
	"orgvet/internal/normalize"
)

// stubStore records whether a lookup happened so format short-circuits can
// be asserted.
type stubStore struct {
	einCalls  int
	nameCalls int
	rows      map[string]*dataset.RevocationRow
	names     map[string][]*dataset.SanctionsRow
}

func (s *stubStore) LookupEIN(ein string) *dataset.RevocationRow {
	s.einCalls++
	return s.rows[ein]
}

func (s *stubStore) LookupName(name string) []*dataset.SanctionsRow {
	s.nameCalls++
	return s.names[normalize.Key(name)]
}

func TestRevocationCheckInvalidFormatSkipsStore(t *testing.T) {
	store := &stubStore{}
	m := NewRevocationMatcher(store)

	for _, ein := range []string{"", "1234", "12345678X", "12-34567890"} {
		res := m.Check(ein)
		assert.False(t, res.Found, ein)
		assert.False(t, res.Revoked, ein)
		assert.Contains(t, res.Detail, "invalid format", ein)
	}
	assert.Zero(t, store.einCalls)
}

func TestRevocationCheckNotFound(t *testing.T) {
	store := &stubStore{}
	res := NewRevocationMatcher(store).Check("12-3456789")

	assert.False(t, res.Found)
	assert.False(t, res.Revoked)
	assert.Contains(t, res.Detail, "not found")
	assert.Equal(t, 1, store.einCalls)
}

func TestRevocationCheckRevoked(t *testing.T) {
	store := &stubStore{rows: map[string]*dataset.RevocationRow{
		"123456789": {
			EIN:            "123456789",
			LegalName:      "ACME CHARITABLE TRUST",
			RevocationDate: "15-MAY-2024",
		},
	}}
	res := NewRevocationMatcher(store).Check("12-3456789")

	assert.True(t, res.Found)
	assert.True(t, res.Revoked)
	assert.Equal(t, "ACME CHARITABLE TRUST", res.LegalName)
	assert.Contains(t, res.Detail, "revoked on 15-MAY-2024")
	assert.Contains(t, res.Detail, "not reinstated")
}

func TestRevocationCheckReinstated(t *testing.T) {
	store := &stubStore{rows: map[string]*dataset.RevocationRow{
		"123456789": {
			EIN:               "123456789",
			LegalName:         "PHOENIX FUND",
			RevocationDate:    "15-MAY-2024",
			ReinstatementDate: "01-JAN-2025",
		},
	}}
	res := NewRevocationMatcher(store).Check("123456789")

	// Reinstated is found-but-clean: distinct from never-listed.
	assert.True(t, res.Found)
	assert.False(t, res.Revoked)
	assert.Contains(t, res.Detail, "reinstated on 01-JAN-2025")
	assert.Equal(t, "01-JAN-2025", res.ReinstatementDate)
}

func sdnRow(entity, primary, program string) *dataset.SanctionsRow {
	return &dataset.SanctionsRow{
		EntityNumber: entity,
		PrimaryName:  primary,
		Program:      program,
		NameKey:      normalize.Key(primary),
	}
}

func TestSanctionsCheckEmptyName(t *testing.T) {
	store := &stubStore{}
	res := NewSanctionsMatcher(store).Check("   ")

	assert.False(t, res.Found)
	assert.Zero(t, store.nameCalls)
}

func TestSanctionsCheckNoMatch(t *testing.T) {
	store := &stubStore{}
	res := NewSanctionsMatcher(store).Check("Harmless Bakery")

	assert.False(t, res.Found)
	assert.Empty(t, res.Matches)
	assert.Equal(t, 1, store.nameCalls)
}

func TestSanctionsCheckPrimaryMatch(t *testing.T) {
	row := sdnRow("540", "BANCO NACIONAL DE CUBA", "CUBA")
	store := &stubStore{names: map[string][]*dataset.SanctionsRow{
		row.NameKey: {row},
	}}

	res := NewSanctionsMatcher(store).Check("Banco Nacional de Cuba")
	require.True(t, res.Found)
	require.Len(t, res.Matches, 1)
	assert.Equal(t, MatchedOnPrimary, res.Matches[0].MatchedOn)
	assert.Equal(t, "540", res.Matches[0].EntityNumber)
	assert.Equal(t, "matched 1 SDN entities", res.Detail)
}

func TestSanctionsCheckAliasMatch(t *testing.T) {
	// The entity's primary name differs from the queried alias, so the
	// match is classified as an alias hit.
	row := sdnRow("540", "BANCO NACIONAL DE CUBA", "CUBA")
	store := &stubStore{names: map[string][]*dataset.SanctionsRow{
		normalize.Key("NATIONAL BANK OF CUBA"): {row},
	}}

	res := NewSanctionsMatcher(store).Check("National Bank of Cuba")
	require.True(t, res.Found)
	require.Len(t, res.Matches, 1)
	assert.Equal(t, MatchedOnAlias, res.Matches[0].MatchedOn)
	assert.Equal(t, "BANCO NACIONAL DE CUBA", res.Matches[0].PrimaryName)
}

func TestSanctionsCheckMultipleEntitiesUnderOneKey(t *testing.T) {
	a := sdnRow("100", "GLOBAL HORIZONS", "SDGT")
	b := sdnRow("200", "GLOBAL HORIZONS LTD", "SDNTK")
	key := normalize.Key("GLOBAL HORIZONS")
	require.Equal(t, key, b.NameKey) // "ltd" strips to the same canonical form

	store := &stubStore{names: map[string][]*dataset.SanctionsRow{
		key: {a, b},
	}}

	res := NewSanctionsMatcher(store).Check("Global Horizons, Ltd.")
	require.True(t, res.Found)
	require.Len(t, res.Matches, 2)
	assert.Equal(t, MatchedOnPrimary, res.Matches[0].MatchedOn)
	assert.Equal(t, MatchedOnPrimary, res.Matches[1].MatchedOn)
	assert.Equal(t, "matched 2 SDN entities", res.Detail)
}
