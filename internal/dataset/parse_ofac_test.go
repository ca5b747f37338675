package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orgvet/internal/normalize"
)

const testSDN = `306,"AEROCARIBBEAN AIRLINES","-0-","CUBA",-0-,-0-,-0-,-0-,-0-,-0-,-0-,"-0-"
540,"BANCO NACIONAL DE CUBA","a.k.a. 'BNC'","CUBA",-0-,-0-,-0-,-0-,-0-,-0-,-0-,"remarks here"
9001,"GLOBAL HORIZONS FOUNDATION",-0-,"SDGT",-0-
`

const testALT = `306,220,"aka","AERO-CARIBBEAN"
540,301,"aka","NATIONAL BANK OF CUBA"
99999,999,"aka","ORPHAN ALIAS"
540,302,"aka","BANCO NACIONAL DE CUBA"
`

func TestParseSanctions(t *testing.T) {
	gen := parseSanctions([]byte(testSDN), []byte(testALT))

	assert.Equal(t, 3, gen.sdnCount)
	// The orphan alias is dropped; the other three join.
	assert.Equal(t, 3, gen.aliasCount)

	// Primary name lookup.
	rows := gen.byName[normalize.Key("AEROCARIBBEAN AIRLINES")]
	require.Len(t, rows, 1)
	assert.Equal(t, "306", rows[0].EntityNumber)
	assert.Equal(t, "AEROCARIBBEAN AIRLINES", rows[0].PrimaryName)

	// Alias lookup resolves to the primary record, never a separate row.
	rows = gen.byName[normalize.Key("AERO-CARIBBEAN")]
	require.Len(t, rows, 1)
	assert.Same(t, gen.byName[normalize.Key("AEROCARIBBEAN AIRLINES")][0], rows[0])

	// An alias equal to the primary name must not duplicate the entity
	// under that key.
	rows = gen.byName[normalize.Key("BANCO NACIONAL DE CUBA")]
	require.Len(t, rows, 1)
	assert.Equal(t, "540", rows[0].EntityNumber)

	// "-0-" nulls fold to empty strings; ragged short rows still parse.
	row := gen.byName[normalize.Key("GLOBAL HORIZONS FOUNDATION")][0]
	assert.Empty(t, row.EntityType)
	assert.Equal(t, "SDGT", row.Program)
	assert.Empty(t, row.Remarks)
}

func TestParseSanctionsOrphanAliasDropped(t *testing.T) {
	gen := parseSanctions([]byte(testSDN), []byte(testALT))
	assert.Empty(t, gen.byName[normalize.Key("ORPHAN ALIAS")])
}

func TestParseSanctionsEmptyInputs(t *testing.T) {
	gen := parseSanctions(nil, nil)
	assert.Zero(t, gen.sdnCount)
	assert.Zero(t, gen.aliasCount)
	assert.Empty(t, gen.byName)
}
