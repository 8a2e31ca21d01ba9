package processing

import (
	"fmt"
	"math"

	"github.com/marcozanotti/utilsforecast/errs"
	"github.com/marcozanotti/utilsforecast/frame"
	"github.com/marcozanotti/utilsforecast/grouped"
	"github.com/marcozanotti/utilsforecast/internal/options"
)

// Result is a normalized panel.
type Result struct {
	// Array holds the value columns, one group per id.
	Array *grouped.Array[float64]
	// IDs holds the id of every group, in group order.
	IDs frame.Column
	// LastTimes holds the last time value of every group, in group order.
	LastTimes frame.Column
	// Index maps the string form of an id to its group position.
	Index *grouped.KeyIndex
	// ValueCols names the columns of Array.
	ValueCols []string
	// Sorted reports whether the input was already ordered by (id, time).
	Sorted bool
	// Source is the coerced and sorted source the array was built from.
	Source frame.Source

	release func()
}

// GroupOf returns the rows of the group whose id formats as key.
func (r *Result) GroupOf(key string) (grouped.View[float64], bool) {
	pos, ok := r.Index.Lookup(key)
	if !ok {
		return grouped.View[float64]{}, false
	}

	v, err := r.Array.Group(pos)
	if err != nil {
		return grouped.View[float64]{}, false
	}

	return v, true
}

// LastTimeValues returns LastTimes as int64: Unix nanoseconds for Time
// columns and the raw values for integer time steps.
func (r *Result) LastTimeValues() ([]int64, error) {
	col := r.LastTimes
	switch col.Kind() {
	case frame.KindTime:
		out := make([]int64, col.Len())
		for i, t := range col.Times() {
			out[i] = t.UnixNano()
		}

		return out, nil
	case frame.KindInt:
		return append([]int64{}, col.Ints()...), nil
	case frame.KindFloat:
		out := make([]int64, col.Len())
		for i, v := range col.Floats() {
			if v != math.Trunc(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: time value %v of group %d is not integral", errs.ErrColumnType, v, i)
			}
			out[i] = int64(v)
		}

		return out, nil
	default:
		return nil, fmt.Errorf("%w: time column %q is %s", errs.ErrColumnType, col.Name(), col.Kind())
	}
}

// Release drops the Arrow resources the normalizer created. The input
// passed to Process is never released.
func (r *Result) Release() {
	if r.release != nil {
		r.release()
		r.release = nil
	}
}

type releaser interface {
	Release()
}

// pipeline tracks the current source and releases intermediates it owns.
type pipeline struct {
	cur     frame.Source
	release func()
}

func (p *pipeline) adopt(next frame.Source) {
	if next == p.cur {
		return
	}

	p.release()
	p.cur = next
	p.release = func() {}
	if r, ok := next.(releaser); ok {
		p.release = r.Release
	}
}

// Process normalizes a tabular source into a ragged array.
//
// The steps are: resolve the backend, validate the required columns,
// optionally coerce ids, coerce the time column, sort by (id, time) unless
// the source is already sorted or sorting is disabled, copy the value
// columns into one matrix and compute the group boundaries.
//
// src may be a *frame.Frame, *arrowframe.Frame or arrow.Record. It is never
// modified.
func Process(src any, opts ...Option) (*Result, error) {
	cfg := DefaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	in, release, err := AsSource(src)
	if err != nil {
		return nil, err
	}

	p := &pipeline{cur: in, release: release}
	res, err := p.run(cfg)
	if err != nil {
		p.release()
		return nil, err
	}

	return res, nil
}

func (p *pipeline) run(cfg *Config) (*Result, error) {
	log := cfg.Logger

	if err := Validate(p.cur, cfg.Mode, cfg); err != nil {
		return nil, err
	}

	valueCols := cfg.Values()
	if missing := frame.MissingColumns(p.cur, valueCols...); len(missing) > 0 {
		return nil, &errs.MissingColumnsError{Columns: missing}
	}

	if err := p.coerce(cfg); err != nil {
		return nil, err
	}
	if err := checkIDs(p.cur, cfg.IDCol); err != nil {
		return nil, err
	}

	sorted, err := IsSorted(p.cur, cfg.IDCol, cfg.TimeCol)
	if err != nil {
		return nil, err
	}
	if !sorted && cfg.Sort {
		next, err := p.cur.SortBy(cfg.IDCol, cfg.TimeCol)
		if err != nil {
			return nil, err
		}
		p.adopt(next)
		log.Debug("sorted source", "id", cfg.IDCol, "time", cfg.TimeCol, "rows", p.cur.Len())
	}

	ids, err := p.cur.Column(cfg.IDCol)
	if err != nil {
		return nil, err
	}
	times, err := p.cur.Column(cfg.TimeCol)
	if err != nil {
		return nil, err
	}

	m, err := ValueMatrix(p.cur, valueCols)
	if err != nil {
		return nil, err
	}

	indptr, err := groupBoundaries(ids)
	if err != nil {
		return nil, err
	}

	arr, err := grouped.New(flatten(m), len(valueCols), indptr)
	if err != nil {
		return nil, err
	}

	uniq := ids.Take(indptr[:len(indptr)-1])
	keys := make([]string, uniq.Len())
	for i := range keys {
		keys[i] = uniq.Format(i)
	}
	index, err := grouped.NewKeyIndex(keys)
	if err != nil {
		return nil, fmt.Errorf("source is not grouped by %q: %w", cfg.IDCol, err)
	}

	log.Debug("normalized panel",
		"rows", arr.Rows(),
		"groups", arr.Len(),
		"value_cols", len(valueCols),
		"already_sorted", sorted)

	return &Result{
		Array:     arr,
		IDs:       uniq,
		LastTimes: times.Take(grouped.LastPositions(indptr)),
		Index:     index,
		ValueCols: valueCols,
		Sorted:    sorted,
		Source:    p.cur,
		release:   p.release,
	}, nil
}

// coerce replaces the id and time columns with their coerced forms.
func (p *pipeline) coerce(cfg *Config) error {
	var changed []frame.Column

	if cfg.NumericIDs {
		ids, err := p.cur.Column(cfg.IDCol)
		if err != nil {
			return err
		}
		if c := CoerceIDs(ids); c.Kind() != ids.Kind() {
			changed = append(changed, c)
		}
	}

	times, err := p.cur.Column(cfg.TimeCol)
	if err != nil {
		return err
	}
	coerced, err := CoerceTime(times, cfg.TimeLayouts)
	if err != nil {
		return err
	}
	if coerced.Kind() != times.Kind() {
		changed = append(changed, coerced)
	}

	if len(changed) == 0 {
		return nil
	}

	next, err := p.cur.WithColumns(changed...)
	if err != nil {
		return err
	}
	p.adopt(next)

	return nil
}

// checkIDs rejects NaN ids, which arise from nulls in numeric id columns
// and would never compare equal to form a group.
func checkIDs(src frame.Source, idCol string) error {
	ids, err := src.Column(idCol)
	if err != nil {
		return err
	}
	if ids.Kind() != frame.KindFloat {
		return nil
	}

	for i, v := range ids.Floats() {
		if math.IsNaN(v) {
			return fmt.Errorf("%w: id column %q has a null or NaN id at row %d", errs.ErrColumnType, idCol, i)
		}
	}

	return nil
}

func groupBoundaries(ids frame.Column) ([]int, error) {
	var indptr []int
	switch ids.Kind() {
	case frame.KindInt:
		indptr, _ = grouped.Boundaries(ids.Ints())
	case frame.KindString:
		indptr, _ = grouped.Boundaries(ids.Strings())
	case frame.KindFloat:
		indptr, _ = grouped.Boundaries(ids.Floats())
	case frame.KindTime:
		nanos := make([]int64, ids.Len())
		for i, t := range ids.Times() {
			nanos[i] = t.UnixNano()
		}
		indptr, _ = grouped.Boundaries(nanos)
	default:
		return nil, fmt.Errorf("%w: id column %q is %s", errs.ErrColumnType, ids.Name(), ids.Kind())
	}

	return indptr, nil
}
