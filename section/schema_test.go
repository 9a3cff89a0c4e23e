package section

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trailsense/trackfile/errs"
	"github.com/trailsense/trackfile/format"
)

func testSchema() Schema {
	return NewSchema([]Field{
		{Name: "m", Type: format.FieldTypeI64, Size: 9},
		{Name: "elevation", Type: format.FieldTypeF64, Scale: 2, Size: 17},
		{Name: "k", Type: format.FieldTypeBool, Size: 9},
		{Name: "j", Type: format.FieldTypeString, Size: 24},
	})
}

func TestSchema_RoundTrip(t *testing.T) {
	s := testSchema()

	buf, err := s.AppendTo(nil)
	require.NoError(t, err)

	parsed, next, err := ParseSchema(buf, 0)
	require.NoError(t, err)
	require.Equal(t, len(buf), next)
	require.Equal(t, s.Fields(), parsed.Fields())
}

func TestSchema_Wire(t *testing.T) {
	s := NewSchema([]Field{{Name: "m", Type: format.FieldTypeI64, Size: 9}})

	buf, err := s.AppendTo(nil)
	require.NoError(t, err)

	// version, field count, type, name length, name, size varint.
	require.Equal(t, []byte{SchemaVersion, 1, byte(format.FieldTypeI64), 1, 'm', 9}, buf)
}

func TestSchema_F64CarriesScale(t *testing.T) {
	s := NewSchema([]Field{{Name: "grade", Type: format.FieldTypeF64, Scale: 3, Size: 12}})

	buf, err := s.AppendTo(nil)
	require.NoError(t, err)

	parsed, _, err := ParseSchema(buf, 0)
	require.NoError(t, err)
	require.Equal(t, uint8(3), parsed.Fields()[0].Scale)
}

func TestSchema_UnsupportedVersion(t *testing.T) {
	buf := []byte{SchemaVersion + 1, 0}

	_, _, err := ParseSchema(buf, 0)
	require.ErrorIs(t, err, errs.ErrUnsupportedSchemaVersion)
}

func TestSchema_UnsupportedFieldType(t *testing.T) {
	buf := []byte{SchemaVersion, 1, 0x7F, 1, 'x', 5}

	_, _, err := ParseSchema(buf, 0)
	require.ErrorIs(t, err, errs.ErrUnsupportedFieldType)
}

func TestSchema_Truncated(t *testing.T) {
	s := testSchema()
	buf, err := s.AppendTo(nil)
	require.NoError(t, err)

	for cut := 0; cut < len(buf); cut++ {
		_, _, parseErr := ParseSchema(buf[:cut], 0)
		require.Error(t, parseErr, "cut at %d", cut)
		require.ErrorIs(t, parseErr, errs.ErrBounds, "cut at %d", cut)
	}
}

func TestSchema_Index(t *testing.T) {
	s := testSchema()

	i, ok := s.Index("elevation")
	require.True(t, ok)
	require.Equal(t, 1, i)

	i, ok = s.Index("j")
	require.True(t, ok)
	require.Equal(t, 3, i)

	_, ok = s.Index("missing")
	require.False(t, ok)
}

func TestSchema_EmptyName(t *testing.T) {
	s := NewSchema([]Field{{Name: "", Type: format.FieldTypeBool, Size: 4}})

	buf, err := s.AppendTo(nil)
	require.NoError(t, err)

	parsed, _, err := ParseSchema(buf, 0)
	require.NoError(t, err)
	require.Equal(t, "", parsed.Fields()[0].Name)
}
