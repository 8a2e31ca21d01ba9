package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCompression(t *testing.T) {
	for _, c := range []CompressionType{CompressionNone, CompressionZstd, CompressionS2, CompressionLZ4} {
		name := map[CompressionType]string{
			CompressionNone: "none", CompressionZstd: "zstd", CompressionS2: "s2", CompressionLZ4: "lz4",
		}[c]
		got, ok := ParseCompression(name)
		require.True(t, ok)
		require.Equal(t, c, got)
	}

	_, ok := ParseCompression("gzip")
	require.False(t, ok)
	require.Equal(t, "Unknown", CompressionType(9).String())
}

func TestParseEncoding(t *testing.T) {
	got, ok := ParseEncoding("gorilla")
	require.True(t, ok)
	require.Equal(t, TypeGorilla, got)
	require.Equal(t, "Gorilla", got.String())

	got, ok = ParseEncoding("")
	require.True(t, ok)
	require.Equal(t, TypeRaw, got)

	_, ok = ParseEncoding("delta")
	require.False(t, ok)
}
