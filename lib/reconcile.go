package lib

/*
PlacedComponent joins a schematic component with its board
placement. One exists for every reference present in both sources;
anything else is reported, never silently dropped.
*/
type PlacedComponent struct {
	*Component
	Placement *Placement
}

/*
DedupeComponents collapses duplicate reference designators. The
last occurrence wins; the record keeps the position of the first,
so downstream ordering stays reproducible. Every collision is
reported.
*/
func DedupeComponents(components []*Component) ([]*Component, []Warning) {
	deduped := []*Component{}
	slots := map[string]int{}
	warnings := []Warning{}

	for _, component := range components {
		if i, ok := slots[component.Reference]; ok {
			warnings = append(warnings, Warning{
				Kind:      WarnDuplicateReference,
				Reference: component.Reference,
				Detail:    "last occurrence wins",
			})
			deduped[i] = component
			continue
		}

		slots[component.Reference] = len(deduped)
		deduped = append(deduped, component)
	}

	return deduped, warnings
}

/*
Reconcile joins placements to components by reference designator,
preserving placement order. Placements without a matching
component are excluded and reported; a repeated placement
reference keeps its first occurrence only. Components without a
placement simply do not appear here; they remain eligible for BOM
output.
*/
func Reconcile(components []*Component, placements []*Placement) ([]*PlacedComponent, []Warning) {
	deduped, warnings := DedupeComponents(components)

	byReference := map[string]*Component{}
	for _, component := range deduped {
		byReference[component.Reference] = component
	}

	placed := []*PlacedComponent{}
	seen := map[string]bool{}
	for _, placement := range placements {
		if seen[placement.Reference] {
			warnings = append(warnings, Warning{
				Kind:      WarnDuplicatePlacement,
				Reference: placement.Reference,
				Detail:    "first occurrence wins",
			})
			continue
		}
		seen[placement.Reference] = true

		component, ok := byReference[placement.Reference]
		if !ok {
			warnings = append(warnings, Warning{
				Kind:      WarnUnmatchedPlacement,
				Reference: placement.Reference,
			})
			continue
		}

		placed = append(placed, &PlacedComponent{Component: component, Placement: placement})
	}

	return placed, warnings
}
