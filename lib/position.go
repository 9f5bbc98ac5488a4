package lib

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

type Side string

const (
	SideTop    Side = "top"
	SideBottom Side = "bottom"
)

/*
Placement is one placed component on the board, as exported by the
pcb tool.
*/
type Placement struct {
	Reference string
	X         float64
	Y         float64
	Rotation  float64
	Side      Side
}

/*
Exporters do not agree on column names; each canonical column
accepts the spellings seen in the wild.
*/
var positionAliases = map[string][]string{
	"reference": {"ref", "reference", "designator"},
	"x":         {"x", "posx", "mid x"},
	"y":         {"y", "posy", "mid y"},
	"rotation":  {"rot", "rotation"},
	"side":      {"side", "layer"},
}

/*
ParsePlacements parses a placement export. Columns are resolved by
header name, not position. Rows with unparsable numeric fields or
an unknown side are skipped and reported; a missing required
column is fatal. Duplicate references are kept, in order, for the
reconciler to resolve.
*/
func ParsePlacements(name string, r io.Reader) ([]*Placement, []Warning, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, &ParseError{Source: name, Err: fmt.Errorf("missing header row: %w", err)}
	}

	columns, err := resolveColumns(header)
	if err != nil {
		return nil, nil, &ParseError{Source: name, Err: err}
	}

	placements := []*Placement{}
	warnings := []Warning{}
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, &ParseError{Source: name, Line: line, Err: err}
		}

		cell := func(column string) string {
			if i := columns[column]; i < len(row) {
				return strings.TrimSpace(row[i])
			}
			return ""
		}

		reference := cell("reference")
		if reference == "" {
			warnings = append(warnings, Warning{
				Kind:   WarnBadPlacement,
				Detail: fmt.Sprintf("line %d: empty reference", line),
			})
			continue
		}

		x, errx := strconv.ParseFloat(cell("x"), 64)
		y, erry := strconv.ParseFloat(cell("y"), 64)
		rotation, errr := strconv.ParseFloat(cell("rotation"), 64)
		if errx != nil || erry != nil || errr != nil {
			warnings = append(warnings, Warning{
				Kind:      WarnBadPlacement,
				Reference: reference,
				Detail:    fmt.Sprintf("line %d: unparsable coordinate", line),
			})
			continue
		}

		side, ok := parseSide(cell("side"))
		if !ok {
			warnings = append(warnings, Warning{
				Kind:      WarnBadPlacement,
				Reference: reference,
				Detail:    fmt.Sprintf("line %d: unknown side %q", line, cell("side")),
			})
			continue
		}

		placements = append(placements, &Placement{
			Reference: reference,
			X:         x,
			Y:         y,
			Rotation:  rotation,
			Side:      side,
		})
	}

	return placements, warnings, nil
}

func resolveColumns(header []string) (map[string]int, error) {
	index := map[string]int{}
	for i, cell := range header {
		index[strings.ToLower(strings.TrimSpace(cell))] = i
	}

	columns := map[string]int{}
	for canonical, aliases := range positionAliases {
		found := -1
		for _, alias := range aliases {
			if i, ok := index[alias]; ok {
				found = i
				break
			}
		}
		if found < 0 {
			return nil, fmt.Errorf("no %q column in header", canonical)
		}

		columns[canonical] = found
	}

	return columns, nil
}

func parseSide(value string) (Side, bool) {
	switch strings.ToLower(value) {
	case "top", "t", "f.cu":
		return SideTop, true
	case "bottom", "bot", "b", "b.cu":
		return SideBottom, true
	}

	return "", false
}
