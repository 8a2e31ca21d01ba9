package endian

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEngines(t *testing.T) {
	le := GetLittleEndianEngine()
	be := GetBigEndianEngine()

	require.Equal(t, []byte{0x02, 0x01}, le.AppendUint16(nil, 0x0102))
	require.Equal(t, []byte{0x01, 0x02}, be.AppendUint16(nil, 0x0102))

	require.True(t, IsLittleEndian(le))
	require.False(t, IsLittleEndian(be))

	buf := be.AppendUint64([]byte{0xaa}, 7)
	require.Len(t, buf, 9)
	require.Equal(t, uint64(7), be.Uint64(buf[1:]))
}
