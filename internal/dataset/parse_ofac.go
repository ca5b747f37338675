package dataset

import (
	"bytes"
	"encoding/csv"
	"io"
	"strings"

	"orgvet/internal/normalize"
)

// OFAC publishes quoted CSV with ragged column counts and "-0-" for null.
// sdn.csv: ent_num, name, type, program, title, ..., remarks (col 11)
// alt.csv: ent_num, alt_num, alt_type, alt_name, ...
const (
	sdnRemarksIndex   = 11
	altMinFieldCount  = 4
	altNameFieldIndex = 3
)

// parseSanctions builds a fresh sanctions generation from the primary and
// alias files. Aliases join against primaries by entity number; orphan
// aliases are dropped. The name index points every key — primary name or
// alias — at the primary entity record, and an entity already present
// under a key is not duplicated in that key's sequence.
func parseSanctions(primary, alias []byte) *sanctionsGeneration {
	gen := &sanctionsGeneration{byName: make(map[string][]*SanctionsRow, 16_384)}

	byEntity := make(map[string]*SanctionsRow, 16_384)
	for _, rec := range readRagged(primary) {
		if len(rec) < 2 {
			continue
		}
		entNum := strings.TrimSpace(rec[0])
		name := ofacField(rec, 1)
		if entNum == "" || name == "" {
			continue
		}
		row := &SanctionsRow{
			EntityNumber: entNum,
			PrimaryName:  name,
			EntityType:   ofacField(rec, 2),
			Program:      ofacField(rec, 3),
			Title:        ofacField(rec, 4),
			Remarks:      ofacField(rec, sdnRemarksIndex),
			NameKey:      normalize.Key(name),
		}
		byEntity[entNum] = row
		gen.insert(row.NameKey, row)
		gen.sdnCount++
	}

	for _, rec := range readRagged(alias) {
		if len(rec) < altMinFieldCount {
			continue
		}
		row, ok := byEntity[strings.TrimSpace(rec[0])]
		if !ok {
			continue
		}
		aliasName := ofacField(rec, altNameFieldIndex)
		if aliasName == "" {
			continue
		}
		gen.insert(normalize.Key(aliasName), row)
		gen.aliasCount++
	}
	return gen
}

// insert appends row under key unless the entity is already indexed there.
func (g *sanctionsGeneration) insert(key string, row *SanctionsRow) {
	if key == "" {
		return
	}
	for _, existing := range g.byName[key] {
		if existing.EntityNumber == row.EntityNumber {
			return
		}
	}
	g.byName[key] = append(g.byName[key], row)
}

func readRagged(data []byte) [][]string {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var records [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Skip unparseable lines the same way malformed IRS rows
			// are skipped.
			continue
		}
		records = append(records, rec)
	}
	return records
}

func ofacField(rec []string, i int) string {
	if i >= len(rec) {
		return ""
	}
	v := strings.TrimSpace(rec[i])
	if v == "-0-" {
		return ""
	}
	return v
}
