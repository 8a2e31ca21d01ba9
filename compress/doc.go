// Package compress provides the codecs applied to snapshot payloads after
// they are encoded.
//
// Four algorithms are available, selected by format.CompressionType:
//   - None: payloads are stored as encoded
//   - Zstd: best ratio, for snapshots written once and shipped far
//   - S2: fast with a fair ratio, a good default for local caches
//   - LZ4: fastest decompression
//
// Zstd uses the pure Go github.com/klauspost/compress/zstd encoder by default.
// Building with the gozstd tag switches to github.com/valyala/gozstd, which
// links the reference C library through cgo:
//
//	go build -tags gozstd ./...
//
// Both produce standard zstd frames, so snapshots written by one build are
// readable by the other.
//
// Codecs are stateless values and safe for concurrent use; GetCodec returns
// shared instances.
package compress
