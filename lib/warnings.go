package lib

import "fmt"

type WarningKind string

const (
	WarnDuplicateReference WarningKind = "duplicate-reference"
	WarnDuplicatePlacement WarningKind = "duplicate-placement"
	WarnUnmatchedPlacement WarningKind = "unmatched-placement"
	WarnEmptySupplier      WarningKind = "empty-supplier"
	WarnBadPlacement       WarningKind = "bad-placement"
)

/*
Warning reports a non-fatal data issue found while generating
outputs. Warnings never abort a run; they are accumulated and
returned alongside the result so the caller can display them.
*/
type Warning struct {
	Kind      WarningKind
	Reference string
	Detail    string
}

func (w Warning) String() string {
	if w.Detail == "" {
		return fmt.Sprintf("%s: %s", w.Kind, w.Reference)
	}

	return fmt.Sprintf("%s: %s: %s", w.Kind, w.Reference, w.Detail)
}

/*
ParseError is fatal for the source file it came from. Line is zero
when no row context is available.
*/
type ParseError struct {
	Source string
	Line   int
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: line %d: %v", e.Source, e.Line, e.Err)
	}

	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
