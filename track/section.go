package track

import (
	"fmt"

	"github.com/trailsense/trackfile/format"
	"github.com/trailsense/trackfile/section"
)

// Section is one independently schematized, independently checksummed
// block of columnar points.
//
// A Section is immutable once constructed, whether decoded from bytes or
// built from columns, and is safe for concurrent read access.
type Section struct {
	encoding   format.SectionEncoding
	pointCount int
	schema     section.Schema
	columns    []*Column
}

// NewSection builds a section from columns. All columns must cover the
// same number of points; that count becomes the section's point count.
func NewSection(columns ...*Column) (*Section, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("section needs at least one column")
	}
	if len(columns) > section.MaxFields {
		return nil, fmt.Errorf("section has %d columns, maximum is %d", len(columns), section.MaxFields)
	}

	pointCount := columns[0].Len()
	fields := make([]section.Field, len(columns))
	for i, c := range columns {
		if c.Len() != pointCount {
			return nil, fmt.Errorf("column %q covers %d points, column %q covers %d",
				c.Name(), c.Len(), columns[0].Name(), pointCount)
		}
		fields[i] = c.field
	}

	return &Section{
		encoding:   format.EncodingStandard,
		pointCount: pointCount,
		schema:     section.NewSchema(fields),
		columns:    columns,
	}, nil
}

// Encoding returns the section's encoding code.
func (s *Section) Encoding() format.SectionEncoding {
	return s.encoding
}

// PointCount returns the number of points in the section.
func (s *Section) PointCount() int {
	return s.pointCount
}

// Schema returns the section's schema.
func (s *Section) Schema() section.Schema {
	return s.schema
}

// FieldCount returns the number of columns.
func (s *Section) FieldCount() int {
	return len(s.columns)
}

// Column returns the named column.
func (s *Section) Column(name string) (*Column, bool) {
	i, ok := s.schema.Index(name)
	if !ok {
		return nil, false
	}

	return s.columns[i], true
}

// ColumnAt returns the column at schema position i, nil when out of range.
func (s *Section) ColumnAt(i int) *Column {
	if i < 0 || i >= len(s.columns) {
		return nil
	}

	return s.columns[i]
}
