package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFieldID_Deterministic(t *testing.T) {
	require.Equal(t, FieldID("elevation"), FieldID("elevation"))
	require.NotEqual(t, FieldID("elevation"), FieldID("elevatioN"))
}

func TestFieldID_EmptyName(t *testing.T) {
	// Empty names are legal in schemas; the ID must still be stable.
	require.Equal(t, FieldID(""), FieldID(""))
	require.NotEqual(t, FieldID(""), FieldID("a"))
}
