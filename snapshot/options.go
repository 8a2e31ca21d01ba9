package snapshot

import (
	"fmt"

	"github.com/marcozanotti/utilsforecast/compress"
	"github.com/marcozanotti/utilsforecast/endian"
	"github.com/marcozanotti/utilsforecast/errs"
	"github.com/marcozanotti/utilsforecast/format"
	"github.com/marcozanotti/utilsforecast/internal/options"
)

type config struct {
	engine      endian.EndianEngine
	compression format.CompressionType
	encoding    format.EncodingType
}

// Option configures Encode.
type Option = options.Option[*config]

func defaultConfig() *config {
	return &config{
		engine:      endian.GetLittleEndianEngine(),
		compression: format.CompressionZstd,
		encoding:    format.TypeRaw,
	}
}

// WithCompression sets the codec applied to every payload (default Zstd).
func WithCompression(c format.CompressionType) Option {
	return options.New(func(cfg *config) error {
		if _, err := compress.GetCodec(c); err != nil {
			return err
		}
		cfg.compression = c

		return nil
	})
}

// WithValueEncoding sets the encoding of the value payload (default Raw).
func WithValueEncoding(e format.EncodingType) Option {
	return options.New(func(cfg *config) error {
		if e != format.TypeRaw && e != format.TypeGorilla {
			return fmt.Errorf("%w: value encoding %s", errs.ErrInvalidOption, e)
		}
		cfg.encoding = e

		return nil
	})
}

// WithLittleEndian writes multi-byte fields little endian (the default).
func WithLittleEndian() Option {
	return options.NoError(func(cfg *config) {
		cfg.engine = endian.GetLittleEndianEngine()
	})
}

// WithBigEndian writes multi-byte fields big endian.
func WithBigEndian() Option {
	return options.NoError(func(cfg *config) {
		cfg.engine = endian.GetBigEndianEngine()
	})
}
