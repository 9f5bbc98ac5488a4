package lib

import "strings"

/*
	The entry operations take raw export text and return blobs plus
	warnings; the caller owns path resolution and persistence. The
	core never touches the filesystem.
*/

type bomOptions struct {
	lookup     func(value, footprint string) (string, bool)
	merge      bool
	multiplier int
}

type BOMOption func(*bomOptions)

/*
BOMWithSupplierRefLookup fills empty supplier references through
lookup, keyed by component value and footprint.
*/
func BOMWithSupplierRefLookup(lookup func(value, footprint string) (string, bool)) BOMOption {
	return func(o *bomOptions) {
		o.lookup = lookup
	}
}

/*
BOMWithMerge collapses equal parts into quantity lines, scaled by
the board multiplier.
*/
func BOMWithMerge(multiplier int) BOMOption {
	return func(o *bomOptions) {
		o.merge = true
		o.multiplier = multiplier
	}
}

/*
GenerateBOM parses the schematic export and returns one CSV blob
per distinct supplier, keyed by supplier name.
*/
func GenerateBOM(componentText string, opts ...BOMOption) (map[string]string, []Warning, error) {
	options := bomOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	components, err := ParseComponents("components", strings.NewReader(componentText))
	if err != nil {
		return nil, nil, err
	}

	deduped, warnings := DedupeComponents(components)
	if options.lookup != nil {
		deduped = fillSupplierRefs(deduped, options.lookup)
	}

	groups, groupWarnings := GroupBySupplier(deduped)
	warnings = append(warnings, groupWarnings...)

	blobs := map[string]string{}
	for _, group := range groups {
		blob := ""
		if options.merge {
			blob, err = RenderMergedBOM(MergeGroup(group, options.multiplier))
		} else {
			blob, err = RenderBOM(group)
		}
		if err != nil {
			return nil, warnings, err
		}

		blobs[group.Supplier] = blob
	}

	return blobs, warnings, nil
}

type cplOptions struct {
	rotations map[string]float64
}

type CPLOption func(*cplOptions)

/*
CPLWithRotations applies per-footprint rotation offsets to the
exported placements, normalized into [0, 360).
*/
func CPLWithRotations(rotations map[string]float64) CPLOption {
	return func(o *cplOptions) {
		o.rotations = rotations
	}
}

/*
GenerateCPL reconciles the schematic export with the placement
export and returns the CPL blob. Only references present in both
sources appear; everything excluded is reported in the warnings.
*/
func GenerateCPL(componentText, placementText string, opts ...CPLOption) (string, []Warning, error) {
	options := cplOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	components, err := ParseComponents("components", strings.NewReader(componentText))
	if err != nil {
		return "", nil, err
	}

	placements, warnings, err := ParsePlacements("placements", strings.NewReader(placementText))
	if err != nil {
		return "", nil, err
	}

	placed, joinWarnings := Reconcile(components, placements)
	warnings = append(warnings, joinWarnings...)

	if len(options.rotations) > 0 {
		placed = applyRotations(placed, options.rotations)
	}

	blob, err := RenderCPL(placed)
	if err != nil {
		return "", warnings, err
	}

	return blob, warnings, nil
}

/*
Records are immutable once parsed; adjustments work on copies.
*/
func fillSupplierRefs(components []*Component, lookup func(value, footprint string) (string, bool)) []*Component {
	filled := make([]*Component, 0, len(components))
	for _, component := range components {
		if component.SupplierRef != "" {
			filled = append(filled, component)
			continue
		}

		ref, ok := lookup(component.Value, component.Footprint)
		if !ok {
			filled = append(filled, component)
			continue
		}

		clone := *component
		clone.SupplierRef = ref
		filled = append(filled, &clone)
	}

	return filled
}

func applyRotations(placed []*PlacedComponent, rotations map[string]float64) []*PlacedComponent {
	adjusted := make([]*PlacedComponent, 0, len(placed))
	for _, pc := range placed {
		offset, ok := rotations[pc.Footprint]
		if !ok {
			adjusted = append(adjusted, pc)
			continue
		}

		placement := *pc.Placement
		placement.Rotation = normalizeRotation(placement.Rotation + offset)
		adjusted = append(adjusted, &PlacedComponent{Component: pc.Component, Placement: &placement})
	}

	return adjusted
}

func normalizeRotation(degrees float64) float64 {
	for degrees < 0 {
		degrees += 360
	}
	for degrees >= 360 {
		degrees -= 360
	}

	return degrees
}
