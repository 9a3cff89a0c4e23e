package endian

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetLittleEndianEngine(t *testing.T) {
	engine := GetLittleEndianEngine()
	require.Equal(t, binary.LittleEndian, engine)

	buf := engine.AppendUint16(nil, 0x1234)
	require.Equal(t, []byte{0x34, 0x12}, buf)
	require.Equal(t, uint16(0x1234), engine.Uint16(buf))
}

func TestGetBigEndianEngine(t *testing.T) {
	engine := GetBigEndianEngine()
	require.Equal(t, binary.BigEndian, engine)

	buf := engine.AppendUint32(nil, 0xDEADBEEF)
	require.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, buf)
}
