package lib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupBySupplierFirstSeenOrder(t *testing.T) {
	components := []*Component{
		{Reference: "R1", Supplier: "LCSC"},
		{Reference: "C1", Supplier: "Mouser"},
		{Reference: "R2", Supplier: "LCSC"},
		{Reference: "U1", Supplier: "Digi-Key"},
	}

	groups, warnings := GroupBySupplier(components)
	assert.Empty(t, warnings)
	require.Len(t, groups, 3)

	assert.Equal(t, "LCSC", groups[0].Supplier)
	assert.Equal(t, "Mouser", groups[1].Supplier)
	assert.Equal(t, "Digi-Key", groups[2].Supplier)

	// input order within the group
	require.Len(t, groups[0].Components, 2)
	assert.Equal(t, "R1", groups[0].Components[0].Reference)
	assert.Equal(t, "R2", groups[0].Components[1].Reference)
}

func TestGroupBySupplierPartitionInvariant(t *testing.T) {
	components := []*Component{
		{Reference: "R1", Supplier: "A"},
		{Reference: "R2", Supplier: "B"},
		{Reference: "R3"},
		{Reference: "R4", Supplier: "A"},
	}

	groups, _ := GroupBySupplier(components)

	// no record lost, no record in two groups
	seen := map[string]int{}
	total := 0
	for _, group := range groups {
		for _, component := range group.Components {
			seen[component.Reference]++
			total++
		}
	}

	assert.Equal(t, len(components), total)
	for _, component := range components {
		assert.Equal(t, 1, seen[component.Reference], component.Reference)
	}
}

func TestGroupBySupplierUnassignedSentinel(t *testing.T) {
	components := []*Component{
		{Reference: "R1", Supplier: "LCSC"},
		{Reference: "TP1"},
	}

	groups, warnings := GroupBySupplier(components)
	require.Len(t, groups, 2)
	assert.Equal(t, UnassignedSupplier, groups[1].Supplier)
	require.Len(t, groups[1].Components, 1)
	assert.Equal(t, "TP1", groups[1].Components[0].Reference)

	require.Len(t, warnings, 1)
	assert.Equal(t, WarnEmptySupplier, warnings[0].Kind)
	assert.Equal(t, "TP1", warnings[0].Reference)
}

func TestMergeGroup(t *testing.T) {
	group := &SupplierGroup{
		Supplier: "LCSC",
		Components: []*Component{
			{Reference: "R1", Value: "10k", PartNumber: "RC0402", SupplierRef: "C60490"},
			{Reference: "C1", Value: "100n", PartNumber: "CL05B", SupplierRef: "C1525"},
			{Reference: "R2", Value: "10k", PartNumber: "RC0402", SupplierRef: "C60490"},
		},
	}

	lines := MergeGroup(group, 1)
	require.Len(t, lines, 2)

	assert.Equal(t, []string{"R1", "R2"}, lines[0].References)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, "RC0402", lines[0].PartNumber)

	assert.Equal(t, []string{"C1"}, lines[1].References)
	assert.Equal(t, 1, lines[1].Quantity)
}

func TestMergeGroupMultiplier(t *testing.T) {
	group := &SupplierGroup{
		Supplier: "LCSC",
		Components: []*Component{
			{Reference: "R1", PartNumber: "RC0402", SupplierRef: "C60490"},
			{Reference: "R2", PartNumber: "RC0402", SupplierRef: "C60490"},
		},
	}

	lines := MergeGroup(group, 5)
	require.Len(t, lines, 1)
	assert.Equal(t, 10, lines[0].Quantity)
}
