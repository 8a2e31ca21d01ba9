package processing

import (
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/marcozanotti/utilsforecast/errs"
	"github.com/marcozanotti/utilsforecast/internal/logging"
	"github.com/marcozanotti/utilsforecast/internal/options"
)

// Default column names.
const (
	DefaultIDCol     = "unique_id"
	DefaultTimeCol   = "ds"
	DefaultTargetCol = "y"
)

// DefaultTimeLayouts are the layouts tried, in order, when a String time
// column is coerced.
var DefaultTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Mode selects which columns Validate requires.
type Mode uint8

const (
	// ValidateFull requires the id, time and target columns.
	ValidateFull Mode = iota
	// ValidatePartial requires the id and time columns only.
	ValidatePartial
)

func (m Mode) String() string {
	switch m {
	case ValidateFull:
		return "full"
	case ValidatePartial:
		return "partial"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// Config holds the normalizer settings.
type Config struct {
	IDCol       string
	TimeCol     string
	TargetCol   string
	ValueCols   []string // nil selects the mode default
	Mode        Mode
	Sort        bool
	NumericIDs  bool
	TimeLayouts []string
	Logger      *slog.Logger
}

// Option configures Process.
type Option = options.Option[*Config]

// DefaultConfig returns the configuration used when Process gets no options.
func DefaultConfig() *Config {
	return &Config{
		IDCol:       DefaultIDCol,
		TimeCol:     DefaultTimeCol,
		TargetCol:   DefaultTargetCol,
		Mode:        ValidateFull,
		Sort:        true,
		TimeLayouts: DefaultTimeLayouts,
		Logger:      logging.Discard(),
	}
}

// Required returns the columns Validate requires in the configured mode.
func (c *Config) Required() []string {
	if c.Mode == ValidatePartial {
		return []string{c.IDCol, c.TimeCol}
	}

	return []string{c.IDCol, c.TimeCol, c.TargetCol}
}

// Values returns the columns copied into the value buffer.
func (c *Config) Values() []string {
	if c.ValueCols != nil {
		return c.ValueCols
	}
	if c.Mode == ValidatePartial {
		return []string{}
	}

	return []string{c.TargetCol}
}

// WithColumns sets the id, time and target column names.
func WithColumns(id, timeCol, target string) Option {
	return options.New(func(c *Config) error {
		if id == "" || timeCol == "" || target == "" {
			return fmt.Errorf("%w: empty column name", errs.ErrInvalidOption)
		}
		c.IDCol, c.TimeCol, c.TargetCol = id, timeCol, target

		return nil
	})
}

// WithValueColumns lists the columns stored in the array, in order.
// An empty list yields a zero-column array.
func WithValueColumns(cols ...string) Option {
	return options.NoError(func(c *Config) {
		c.ValueCols = append([]string{}, cols...)
	})
}

// WithMode sets the validation mode.
func WithMode(m Mode) Option {
	return options.New(func(c *Config) error {
		if m != ValidateFull && m != ValidatePartial {
			return fmt.Errorf("%w: validation mode %s", errs.ErrInvalidOption, m)
		}
		c.Mode = m

		return nil
	})
}

// WithSort enables or disables sorting by (id, time). With sorting disabled
// the caller guarantees the source is already grouped by id.
func WithSort(enabled bool) Option {
	return options.NoError(func(c *Config) {
		c.Sort = enabled
	})
}

// WithNumericIDs converts String ids that are all base-10 integers into an
// Int column before grouping.
func WithNumericIDs() Option {
	return options.NoError(func(c *Config) {
		c.NumericIDs = true
	})
}

// WithTimeLayouts replaces the layouts used to parse String time columns.
func WithTimeLayouts(layouts ...string) Option {
	return options.New(func(c *Config) error {
		if len(layouts) == 0 {
			return fmt.Errorf("%w: no time layouts", errs.ErrInvalidOption)
		}
		c.TimeLayouts = slices.Clone(layouts)

		return nil
	})
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return options.New(func(c *Config) error {
		if l == nil {
			return fmt.Errorf("%w: nil logger", errs.ErrInvalidOption)
		}
		c.Logger = l

		return nil
	})
}
