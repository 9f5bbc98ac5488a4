package lib

import (
	"bytes"
	"encoding/csv"
	"sort"
	"strconv"
	"strings"
)

// fixed output name for the component placement list
const CPLFilename = "CPL.csv"

var (
	bomHeader = []string{
		"Reference", "Value", "Footprint",
		"Manufacturer", "PartNumber", "SupplierRef",
	}
	mergedBOMHeader = []string{
		"Designators", "Quantity", "Value", "Footprint",
		"Manufacturer", "PartNumber", "SupplierRef",
	}
	cplHeader = []string{
		"Designator", "Mid X", "Mid Y", "Rotation", "Layer",
		"Value", "Footprint",
	}
)

/*
RenderBOM renders one supplier group as CSV text, built fully in
memory. Extra schematic fields become additional columns, sorted
by name so the output is byte-reproducible.
*/
func RenderBOM(group *SupplierGroup) (string, error) {
	extras := extraColumns(group.Components)

	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	writer.Write(append(append([]string{}, bomHeader...), extras...))
	for _, component := range group.Components {
		row := []string{
			component.Reference,
			component.Value,
			component.Footprint,
			component.Manufacturer,
			component.PartNumber,
			component.SupplierRef,
		}
		for _, column := range extras {
			row = append(row, component.Fields[column])
		}

		writer.Write(row)
	}

	writer.Flush()
	return buf.String(), writer.Error()
}

/*
RenderMergedBOM renders quantity lines produced by MergeGroup,
designators joined by comma.
*/
func RenderMergedBOM(lines []*BOMLine) (string, error) {
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	writer.Write(mergedBOMHeader)
	for _, line := range lines {
		writer.Write([]string{
			strings.Join(line.References, ","),
			strconv.Itoa(line.Quantity),
			line.Value,
			line.Footprint,
			line.Manufacturer,
			line.PartNumber,
			line.SupplierRef,
		})
	}

	writer.Flush()
	return buf.String(), writer.Error()
}

/*
RenderCPL renders the reconciled placements, in reconciler order.
*/
func RenderCPL(placed []*PlacedComponent) (string, error) {
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	writer.Write(cplHeader)
	for _, pc := range placed {
		writer.Write([]string{
			pc.Reference,
			formatCoord(pc.Placement.X),
			formatCoord(pc.Placement.Y),
			formatCoord(pc.Placement.Rotation),
			string(pc.Placement.Side),
			pc.Value,
			pc.Footprint,
		})
	}

	writer.Flush()
	return buf.String(), writer.Error()
}

/*
Coordinates render with fixed precision so a given input yields
identical bytes on every run and host.
*/
func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

/*
BOMFilename returns the output file name for a supplier,
sanitized for filesystem safety.
*/
func BOMFilename(supplier string) string {
	return sanitizeName(supplier) + "_BOM.csv"
}

func sanitizeName(name string) string {
	if name == "" {
		name = UnassignedSupplier
	}

	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		}
		return '_'
	}, name)
}

func extraColumns(components []*Component) []string {
	seen := map[string]bool{}
	columns := []string{}
	for _, component := range components {
		for name := range component.Fields {
			if !seen[name] {
				seen[name] = true
				columns = append(columns, name)
			}
		}
	}

	sort.Strings(columns)
	return columns
}
