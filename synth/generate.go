// Package synth generates synthetic panels of seasonal series for tests,
// benchmarks and demos.
package synth

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/marcozanotti/utilsforecast/arrowframe"
	"github.com/marcozanotti/utilsforecast/errs"
	"github.com/marcozanotti/utilsforecast/frame"
	"github.com/marcozanotti/utilsforecast/internal/options"
)

// Engine selects the backend of the generated panel.
type Engine uint8

const (
	// EngineFrame returns a *frame.Frame.
	EngineFrame Engine = iota
	// EngineArrow returns an *arrowframe.Frame, which the caller must release.
	EngineArrow
)

var seasonalities = map[string]int{"D": 7, "M": 12}

var start = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

type config struct {
	freq        string
	minLength   int
	maxLength   int
	nStatic     int
	equalEnds   bool
	trend       bool
	categorical bool
	engine      Engine
	seed        uint64
}

// Option configures GenerateSeries.
type Option = options.Option[*config]

// WithFreq sets the frequency, "D" (daily) or "M" (month end).
func WithFreq(freq string) Option {
	return options.New(func(c *config) error {
		if _, ok := seasonalities[freq]; !ok {
			return fmt.Errorf("%w: frequency %q, supported are D and M", errs.ErrInvalidOption, freq)
		}
		c.freq = freq

		return nil
	})
}

// WithLengths sets the inclusive range series lengths are drawn from.
func WithLengths(minLength, maxLength int) Option {
	return options.New(func(c *config) error {
		if minLength < 1 || minLength > maxLength {
			return fmt.Errorf("%w: lengths [%d, %d]", errs.ErrInvalidOption, minLength, maxLength)
		}
		c.minLength, c.maxLength = minLength, maxLength

		return nil
	})
}

// WithStaticFeatures adds n static columns static_0..static_{n-1}.
func WithStaticFeatures(n int) Option {
	return options.New(func(c *config) error {
		if n < 0 {
			return fmt.Errorf("%w: %d static features", errs.ErrInvalidOption, n)
		}
		c.nStatic = n

		return nil
	})
}

// WithEqualEnds makes every series end on the same date.
func WithEqualEnds() Option {
	return options.NoError(func(c *config) { c.equalEnds = true })
}

// WithTrend adds a positive linear trend to every series.
func WithTrend() Option {
	return options.NoError(func(c *config) { c.trend = true })
}

// WithStaticAsCategorical controls whether ids and static features are
// emitted as String columns (the default) or Int columns.
func WithStaticAsCategorical(categorical bool) Option {
	return options.NoError(func(c *config) { c.categorical = categorical })
}

// WithEngine selects the output backend.
func WithEngine(e Engine) Option {
	return options.New(func(c *config) error {
		if e != EngineFrame && e != EngineArrow {
			return fmt.Errorf("%w: engine %d", errs.ErrInvalidOption, e)
		}
		c.engine = e

		return nil
	})
}

// WithSeed sets the random seed. The same seed yields the same panel.
func WithSeed(seed uint64) Option {
	return options.NoError(func(c *config) { c.seed = seed })
}

// GenerateSeries builds a panel of nSeries seasonal series with columns
// unique_id, ds, y and static_0..static_{n-1}.
//
// Series lengths are uniform in [min, max] (default [50, 500]). Dates start
// on 2000-01-01, or are aligned to a common end with WithEqualEnds. The
// target of row r is (r mod season) + U(0, 0.5), with season 7 for daily and
// 12 for monthly data; static_0, when present, scales it by (1 + static_0).
// Rows are ordered by series then date.
func GenerateSeries(nSeries int, opts ...Option) (frame.Source, error) {
	cfg := &config{
		freq:        "D",
		minLength:   50,
		maxLength:   500,
		categorical: true,
		engine:      EngineFrame,
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	if nSeries < 0 {
		return nil, fmt.Errorf("%w: %d series", errs.ErrInvalidOption, nSeries)
	}

	cols := generate(nSeries, cfg)
	if cfg.engine == EngineArrow {
		af, err := arrowframe.FromColumns(nil, cols...)
		if err != nil {
			return nil, err
		}

		return af, nil
	}

	f, err := frame.New(cols...)
	if err != nil {
		return nil, err
	}

	return f, nil
}

func generate(nSeries int, cfg *config) []frame.Column {
	rng := rand.New(rand.NewPCG(cfg.seed, cfg.seed^0x9e3779b97f4a7c15))

	lengths := make([]int, nSeries)
	total := 0
	for i := range lengths {
		lengths[i] = cfg.minLength + rng.IntN(cfg.maxLength-cfg.minLength+1)
		total += lengths[i]
	}

	dates := dateRange(cfg.freq, cfg.maxLength)
	season := seasonalities[cfg.freq]

	ids := make([]int64, 0, total)
	ds := make([]time.Time, 0, total)
	steps := make([]int, 0, total)
	for i, n := range lengths {
		offset := 0
		if cfg.equalEnds {
			offset = cfg.maxLength - n
		}
		for t := range n {
			ids = append(ids, int64(i))
			ds = append(ds, dates[offset+t])
			steps = append(steps, t)
		}
	}

	y := make([]float64, total)
	for r := range y {
		y[r] = float64(r%season) + rng.Float64()*0.5
	}

	statics := make([][]int64, cfg.nStatic)
	for s := range statics {
		perSeries := make([]int64, nSeries)
		for i := range perSeries {
			perSeries[i] = int64(rng.IntN(100))
		}
		statics[s] = make([]int64, total)
		for r, id := range ids {
			statics[s][r] = perSeries[id]
		}
		if s == 0 {
			for r := range y {
				y[r] *= 1 + float64(statics[s][r])
			}
		}
	}

	if cfg.trend {
		coefs := make([]float64, nSeries)
		for i := range coefs {
			coefs[i] = rng.Float64()
		}
		for r, id := range ids {
			y[r] += coefs[id] * float64(steps[r])
		}
	}

	cols := []frame.Column{
		categoryColumn("unique_id", ids, cfg.categorical),
		frame.TimeColumn("ds", ds),
		frame.FloatColumn("y", y),
	}
	for s, vals := range statics {
		cols = append(cols, categoryColumn("static_"+strconv.Itoa(s), vals, cfg.categorical))
	}

	return cols
}

func dateRange(freq string, n int) []time.Time {
	out := make([]time.Time, n)
	for i := range out {
		if freq == "M" {
			// day 0 of the next month is the last day of this one
			out[i] = time.Date(2000, time.Month(i+2), 0, 0, 0, 0, 0, time.UTC)
		} else {
			out[i] = start.AddDate(0, 0, i)
		}
	}

	return out
}

func categoryColumn(name string, vals []int64, categorical bool) frame.Column {
	if !categorical {
		return frame.IntColumn(name, vals)
	}

	strs := make([]string, len(vals))
	for i, v := range vals {
		strs[i] = strconv.FormatInt(v, 10)
	}

	return frame.StringColumn(name, strs)
}
