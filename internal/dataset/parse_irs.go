package dataset

import (
	"bufio"
	"bytes"
	"strings"
)

// The IRS revocation file is pipe-delimited:
// EIN|Legal Name|DBA|City|State|ZIP|Country|Exemption Type|Revocation Date|Posting Date|Reinstatement Date
const irsFieldCount = 11

// parseRevocation builds a fresh revocation generation from the extracted
// file bytes. Malformed rows are discarded silently: the upstream file
// carries a long tail of junk lines and a vetting service must not fail a
// 600K-row load over them. The currently published generation is never
// touched; the caller decides whether this one survives the size floor.
func parseRevocation(data []byte) *revocationGeneration {
	gen := &revocationGeneration{byEIN: make(map[string]*RevocationRow, 700_000)}

	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	first := true
	for sc.Scan() {
		line := sc.Text()
		if first {
			first = false
			// Header line.
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "|")
		if len(fields) < irsFieldCount {
			continue
		}
		ein, ok := NormalizeEIN(strings.TrimSpace(fields[0]))
		if !ok {
			continue
		}
		gen.byEIN[ein] = &RevocationRow{
			EIN:               ein,
			LegalName:         strings.TrimSpace(fields[1]),
			DBA:               strings.TrimSpace(fields[2]),
			City:              strings.TrimSpace(fields[3]),
			State:             strings.TrimSpace(fields[4]),
			ZIP:               strings.TrimSpace(fields[5]),
			Country:           strings.TrimSpace(fields[6]),
			ExemptionType:     strings.TrimSpace(fields[7]),
			RevocationDate:    strings.TrimSpace(fields[8]),
			PostingDate:       strings.TrimSpace(fields[9]),
			ReinstatementDate: strings.TrimSpace(fields[10]),
		}
	}
	return gen
}
