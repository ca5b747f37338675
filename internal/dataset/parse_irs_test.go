package dataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const irsHeader = "EIN|Legal Name|DBA Name|City|State|ZIP|Country|Exemption Type|Revocation Date|Revocation Posting Date|Exemption Reinstatement Date"

func irsLine(ein, name, reinstated string) string {
	return strings.Join([]string{ein, name, "", "SPRINGFIELD", "IL", "62701", "US", "03", "15-MAY-2024", "10-JUN-2024", reinstated}, "|")
}

func TestParseRevocation(t *testing.T) {
	data := strings.Join([]string{
		irsHeader,
		irsLine("001234567", "ACME CHARITABLE TRUST", ""),
		irsLine("00-7654321", "REINSTATED ORG", "01-JAN-2025"),
		irsLine("12345", "SHORT EIN DROPPED", ""),
		irsLine("12345678X", "ALPHA EIN DROPPED", ""),
		"002222222|TOO|FEW|FIELDS",
		"",
	}, "\n")

	gen := parseRevocation([]byte(data))
	require.Len(t, gen.byEIN, 2)

	row := gen.byEIN["001234567"]
	require.NotNil(t, row)
	assert.Equal(t, "ACME CHARITABLE TRUST", row.LegalName)
	assert.Equal(t, "IL", row.State)
	assert.Equal(t, "15-MAY-2024", row.RevocationDate)
	assert.False(t, row.Reinstated())

	// Dashes in the source EIN are stripped before storage.
	row = gen.byEIN["007654321"]
	require.NotNil(t, row)
	assert.True(t, row.Reinstated())
	assert.Equal(t, "01-JAN-2025", row.ReinstatementDate)
}

func TestParseRevocationSkipsHeader(t *testing.T) {
	// Only a header: nothing should be indexed even though the header has
	// the right field count.
	gen := parseRevocation([]byte(irsHeader))
	assert.Empty(t, gen.byEIN)
}

func TestNormalizeEIN(t *testing.T) {
	tests := []struct {
		in    string
		want  string
		valid bool
	}{
		{"123456789", "123456789", true},
		{"12-3456789", "123456789", true},
		{" 12 3456789 ", "123456789", true},
		{"12345678", "", false},
		{"1234567890", "", false},
		{"12345678X", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := NormalizeEIN(tt.in)
		assert.Equal(t, tt.valid, ok, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}
