package lib

// group name for components with no Supplier field set
const UnassignedSupplier = "unassigned"

/*
SupplierGroup is an ordered slice of components sharing one
supplier value.
*/
type SupplierGroup struct {
	Supplier   string
	Components []*Component
}

/*
GroupBySupplier partitions components by supplier value. Groups
appear in first-seen order and components keep their input order
within a group. Components without a supplier land in the
unassigned group, with a report each.
*/
func GroupBySupplier(components []*Component) ([]*SupplierGroup, []Warning) {
	groups := []*SupplierGroup{}
	byName := map[string]*SupplierGroup{}
	warnings := []Warning{}

	for _, component := range components {
		supplier := component.Supplier
		if supplier == "" {
			warnings = append(warnings, Warning{
				Kind:      WarnEmptySupplier,
				Reference: component.Reference,
			})
			supplier = UnassignedSupplier
		}

		group, ok := byName[supplier]
		if !ok {
			group = &SupplierGroup{Supplier: supplier}
			byName[supplier] = group
			groups = append(groups, group)
		}

		group.Components = append(group.Components, component)
	}

	return groups, warnings
}

/*
BOMLine is one merged bill-of-materials row: every component of a
group that shares a part number and supplier reference, with the
designators collected and a quantity.
*/
type BOMLine struct {
	References   []string
	Quantity     int
	Value        string
	Footprint    string
	Manufacturer string
	PartNumber   string
	SupplierRef  string
}

/*
MergeGroup collapses components with equal (PartNumber,
SupplierRef) into single quantity lines, in first-seen order.
multiplier scales quantities by the number of boards built.
*/
func MergeGroup(group *SupplierGroup, multiplier int) []*BOMLine {
	if multiplier < 1 {
		multiplier = 1
	}

	lines := []*BOMLine{}
	byPart := map[string]*BOMLine{}
	for _, component := range group.Components {
		key := component.PartNumber + "\x00" + component.SupplierRef
		line, ok := byPart[key]
		if !ok {
			line = &BOMLine{
				Value:        component.Value,
				Footprint:    component.Footprint,
				Manufacturer: component.Manufacturer,
				PartNumber:   component.PartNumber,
				SupplierRef:  component.SupplierRef,
			}
			byPart[key] = line
			lines = append(lines, line)
		}

		line.References = append(line.References, component.Reference)
		line.Quantity += multiplier
	}

	return lines
}
