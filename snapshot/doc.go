// Package snapshot serializes processed panels into a compact, checksummed
// binary form that can be cached on disk or shipped between processes.
//
// A snapshot is a fixed 40 byte header, four independently compressed
// payloads and a trailing xxHash64 checksum of everything before it:
//
//	+--------+-------+--------+------+------------+----------+
//	| header | sizes | values | keys | last times | checksum |
//	+--------+-------+--------+------+------------+----------+
//
// Group sizes are uvarints, keys are length-prefixed strings and last times
// are delta-of-delta varints. Values are raw float64 bits by default, or one
// Gorilla XOR stream per column with WithValueEncoding(format.TypeGorilla).
// Every payload then goes through the codec chosen with WithCompression.
//
// Example:
//
//	res, err := processing.Process(df)
//	...
//	b, err := snapshot.EncodeResult(res, snapshot.WithCompression(format.CompressionS2))
//	...
//	panel, err := snapshot.Decode(b)
//	v, err := panel.Array.Group(0)
package snapshot
