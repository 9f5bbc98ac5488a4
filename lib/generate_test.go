package lib

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const generateNetlist = `<export version="D">
  <components>
    <comp ref="R1">
      <value>10k</value>
      <footprint>Resistor_SMD:R_0402_1005Metric</footprint>
      <fields>
        <field name="Supplier">S1</field>
        <field name="SupplierRef">C60490</field>
      </fields>
    </comp>
    <comp ref="R2">
      <value>1k</value>
      <footprint>Resistor_SMD:R_0402_1005Metric</footprint>
      <fields>
        <field name="Supplier">S2</field>
      </fields>
    </comp>
  </components>
</export>`

const generatePositions = "Ref,PosX,PosY,Rot,Side\n" +
	"R1,1.0,2.0,0,top\n" +
	"R3,5.0,6.0,0,top\n"

func TestGenerateCPLJoinCorrectness(t *testing.T) {
	blob, warnings, err := GenerateCPL(generateNetlist, generatePositions)
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(blob)).ReadAll()
	require.NoError(t, err)

	// exactly one data row: R1; R2 has no placement, R3 no component
	require.Len(t, rows, 2)
	assert.Equal(t, "R1", rows[1][0])
	assert.Equal(t, "1.0000", rows[1][1])
	assert.Equal(t, "2.0000", rows[1][2])

	require.Len(t, warnings, 1)
	assert.Equal(t, WarnUnmatchedPlacement, warnings[0].Kind)
	assert.Equal(t, "R3", warnings[0].Reference)
}

func TestGenerateBOMGroups(t *testing.T) {
	blobs, warnings, err := GenerateBOM(generateNetlist)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, blobs, 2)

	// R2 is absent from CPL but present in its BOM group
	require.Contains(t, blobs, "S2")
	rows, err := csv.NewReader(strings.NewReader(blobs["S2"])).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "R2", rows[1][0])
}

func TestGenerateBOMDuplicateReference(t *testing.T) {
	input := `<export version="D"><components>
	  <comp ref="R1"><value>1k</value>
	    <fields><field name="Supplier">S1</field></fields>
	  </comp>
	  <comp ref="R1"><value>10k</value>
	    <fields><field name="Supplier">S1</field></fields>
	  </comp>
	</components></export>`

	blobs, warnings, err := GenerateBOM(input)
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(blobs["S1"])).ReadAll()
	require.NoError(t, err)

	// exactly one R1 entry, carrying the last occurrence's value
	require.Len(t, rows, 2)
	assert.Equal(t, "R1", rows[1][0])
	assert.Equal(t, "10k", rows[1][1])

	require.Len(t, warnings, 1)
	assert.Equal(t, WarnDuplicateReference, warnings[0].Kind)
}

func TestGenerateBOMEmptySupplier(t *testing.T) {
	input := `<export version="D"><components>
	  <comp ref="TP1"><value>TestPoint</value></comp>
	</components></export>`

	blobs, warnings, err := GenerateBOM(input)
	require.NoError(t, err)

	require.Len(t, blobs, 1)
	require.Contains(t, blobs, UnassignedSupplier)
	assert.Equal(t, "unassigned_BOM.csv", BOMFilename(UnassignedSupplier))

	require.Len(t, warnings, 1)
	assert.Equal(t, WarnEmptySupplier, warnings[0].Kind)
	assert.Equal(t, "TP1", warnings[0].Reference)
}

func TestGenerateBOMSupplierRefLookup(t *testing.T) {
	lookup := func(value, footprint string) (string, bool) {
		if value == "1k" && footprint == "R_0402_1005Metric" {
			return "C11702", true
		}
		return "", false
	}

	blobs, _, err := GenerateBOM(generateNetlist, BOMWithSupplierRefLookup(lookup))
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(blobs["S2"])).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "C11702", rows[1][5])

	// R1 already had a reference; the lookup must not replace it
	rows, err = csv.NewReader(strings.NewReader(blobs["S1"])).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "C60490", rows[1][5])
}

func TestGenerateBOMMerge(t *testing.T) {
	input := `<export version="D"><components>
	  <comp ref="R1"><value>10k</value>
	    <fields>
	      <field name="Supplier">S1</field>
	      <field name="PartNumber">RC0402</field>
	      <field name="SupplierRef">C60490</field>
	    </fields>
	  </comp>
	  <comp ref="R2"><value>10k</value>
	    <fields>
	      <field name="Supplier">S1</field>
	      <field name="PartNumber">RC0402</field>
	      <field name="SupplierRef">C60490</field>
	    </fields>
	  </comp>
	</components></export>`

	blobs, _, err := GenerateBOM(input, BOMWithMerge(3))
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(blobs["S1"])).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "R1,R2", rows[1][0])
	assert.Equal(t, "6", rows[1][1])
}

func TestGenerateCPLRotations(t *testing.T) {
	rotations := map[string]float64{"R_0402_1005Metric": 270}
	positions := "Ref,PosX,PosY,Rot,Side\nR1,1.0,2.0,180,top\n"

	blob, _, err := GenerateCPL(generateNetlist, positions, CPLWithRotations(rotations))
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(blob)).ReadAll()
	require.NoError(t, err)

	// 180 + 270 wraps to 90
	assert.Equal(t, "90.0000", rows[1][3])
}

func TestGenerateCPLParseErrorAborts(t *testing.T) {
	_, _, err := GenerateCPL("<export", generatePositions)
	require.Error(t, err)

	perr := &ParseError{}
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "components", perr.Source)
}
