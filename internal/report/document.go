package report

import (
	"fmt"
	"time"
)

// Document is the complete, ordered, annotated report for one ticker and
// reporting period. It is constructed once per pipeline run, flows through
// annotation, and is read-only once handed to the renderer and exporter.
type Document struct {
	Ticker      string
	GeneratedOn time.Time
	Period      Period
	Sections    []*Section
}

// Section returns the section of the given kind. The builder guarantees
// every kind is present exactly once, so a nil return indicates a document
// that did not come out of the builder.
func (d *Document) Section(kind SectionKind) *Section {
	for _, s := range d.Sections {
		if s.Kind == kind {
			return s
		}
	}
	return nil
}

// Validate checks the document's structural invariants: a non-empty
// section list with no duplicate kinds, in the fixed order, each section
// carrying its full field set.
func (d *Document) Validate() error {
	if d.Ticker == "" {
		return fmt.Errorf("document has no ticker")
	}
	kinds := SectionKinds()
	if len(d.Sections) != len(kinds) {
		return fmt.Errorf("document has %d sections, want %d", len(d.Sections), len(kinds))
	}
	for i, s := range d.Sections {
		if s.Kind != kinds[i] {
			return fmt.Errorf("section %d is %s, want %s", i, s.Kind, kinds[i])
		}
		for _, key := range s.Kind.FieldKeys() {
			if _, ok := s.Data[key]; !ok {
				return fmt.Errorf("section %s missing field %q", s.Kind, key)
			}
		}
	}
	return nil
}
