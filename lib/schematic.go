package lib

import (
	"encoding/xml"
	"io"
	"strings"
)

/*
Represents one schematic component instance, parsed from the
eeschema intermediate netlist. Custom fields beyond the fixed set
pass through untouched in Fields.
*/
type Component struct {
	Reference    string
	Value        string
	Footprint    string
	Manufacturer string
	PartNumber   string
	Supplier     string
	SupplierRef  string

	Fields map[string]string
}

type netlistField struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

type netlistComp struct {
	Ref       string         `xml:"ref,attr"`
	Value     string         `xml:"value"`
	Footprint string         `xml:"footprint"`
	Fields    []netlistField `xml:"fields>field"`
}

type netlist struct {
	XMLName    xml.Name      `xml:"export"`
	Components []netlistComp `xml:"components>comp"`
}

/*
ParseComponents returns the components of an eeschema intermediate
netlist, in document order. name identifies the source in errors.

<export version="D">

	<components>
	  <comp ref="R1">
	    <value>10k</value>
	    <footprint>Resistor_SMD:R_0402_1005Metric</footprint>
	    <fields>
	      <field name="Supplier">LCSC</field>
	    </fields>
	  </comp>
	</components>

</export>
*/
func ParseComponents(name string, r io.Reader) ([]*Component, error) {
	export := netlist{}
	if err := xml.NewDecoder(r).Decode(&export); err != nil {
		line := 0
		if serr, ok := err.(*xml.SyntaxError); ok {
			line = serr.Line
		}

		return nil, &ParseError{Source: name, Line: line, Err: err}
	}

	components := []*Component{}
	for _, comp := range export.Components {
		component := &Component{
			Reference: strings.TrimSpace(comp.Ref),
			Value:     strings.TrimSpace(comp.Value),
			Footprint: footprintName(comp.Footprint),
			Fields:    map[string]string{},
		}

		for _, field := range comp.Fields {
			value := strings.TrimSpace(field.Value)
			switch field.Name {
			case "Manufacturer":
				component.Manufacturer = value
			case "PartNumber":
				component.PartNumber = value
			case "Supplier":
				component.Supplier = value
			case "SupplierRef":
				component.SupplierRef = value
			default:
				component.Fields[field.Name] = value
			}
		}

		/*
			A supplier-specific reference field, e.g. "LCSCRef" for
			Supplier=LCSC, takes precedence over the generic
			SupplierRef.
		*/
		if component.Supplier != "" {
			refField := component.Supplier + "Ref"
			if ref, ok := component.Fields[refField]; ok {
				if ref != "" {
					component.SupplierRef = ref
				}
				delete(component.Fields, refField)
			}
		}

		components = append(components, component)
	}

	return components, nil
}

/*
eeschema exports footprints as "library:name"; only the name part
matters for assembly outputs.
*/
func footprintName(footprint string) string {
	parts := strings.Split(strings.TrimSpace(footprint), ":")

	return parts[len(parts)-1]
}
