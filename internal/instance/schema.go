package instance

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/jcastellanos/jobshopd/pkg/models"
)

// Tardiness is the typed instance for the weighted-tardiness variant.
type Tardiness struct {
	Jobs      int
	Tasks     int
	Durations [][]int // jobs x tasks
	Weights   []int   // per job
	DueDates  []int   // per job
}

// DataMap renders the instance as solver data fields.
func (t Tardiness) DataMap() map[string]any {
	return map[string]any{
		"jobs":      t.Jobs,
		"tasks":     t.Tasks,
		"d":         t.Durations,
		"weights":   t.Weights,
		"due_dates": t.DueDates,
	}
}

// Maintenance is the typed instance for the maintenance-aware variant.
type Maintenance struct {
	Jobs        int
	Tasks       int
	MaxWindows  int
	ProcTime    [][]int  // JOBS x TASKS
	MaintStart  [][]int  // TASKS x MAX_MAINT_WINDOWS
	MaintEnd    [][]int  // TASKS x MAX_MAINT_WINDOWS
	MaintActive [][]bool // TASKS x MAX_MAINT_WINDOWS
}

// DataMap renders the instance as solver data fields.
func (m Maintenance) DataMap() map[string]any {
	return map[string]any{
		"JOBS":              m.Jobs,
		"TASKS":             m.Tasks,
		"MAX_MAINT_WINDOWS": m.MaxWindows,
		"PROC_TIME":         m.ProcTime,
		"MAINT_START":       m.MaintStart,
		"MAINT_END":         m.MaintEnd,
		"MAINT_ACTIVE":      m.MaintActive,
	}
}

// ExtractTardiness pulls and shape-checks the weighted-tardiness fields.
func ExtractTardiness(raw Raw) (Tardiness, error) {
	var out Tardiness
	var err error
	if out.Jobs, err = requireInt(raw, "jobs"); err != nil {
		return out, err
	}
	if out.Tasks, err = requireInt(raw, "tasks"); err != nil {
		return out, err
	}
	if out.Durations, err = require2DInt(raw, "d", out.Jobs, out.Tasks); err != nil {
		return out, err
	}
	if out.Weights, err = require1DInt(raw, "weights", out.Jobs); err != nil {
		return out, err
	}
	if out.DueDates, err = require1DInt(raw, "due_dates", out.Jobs); err != nil {
		return out, err
	}
	return out, nil
}

// ExtractMaintenance pulls and shape-checks the maintenance-aware fields.
func ExtractMaintenance(raw Raw) (Maintenance, error) {
	var out Maintenance
	var err error
	if out.Jobs, err = requireInt(raw, "JOBS"); err != nil {
		return out, err
	}
	if out.Tasks, err = requireInt(raw, "TASKS"); err != nil {
		return out, err
	}
	if out.MaxWindows, err = requireInt(raw, "MAX_MAINT_WINDOWS"); err != nil {
		return out, err
	}
	if out.ProcTime, err = require2DInt(raw, "PROC_TIME", out.Jobs, out.Tasks); err != nil {
		return out, err
	}
	if out.MaintStart, err = require2DInt(raw, "MAINT_START", out.Tasks, out.MaxWindows); err != nil {
		return out, err
	}
	if out.MaintEnd, err = require2DInt(raw, "MAINT_END", out.Tasks, out.MaxWindows); err != nil {
		return out, err
	}
	if out.MaintActive, err = require2DBool(raw, "MAINT_ACTIVE", out.Tasks, out.MaxWindows); err != nil {
		return out, err
	}
	return out, nil
}

func requireInt(raw Raw, key string) (int, error) {
	v, ok := raw[key]
	if !ok {
		return 0, models.Validationf(key, "missing required field")
	}
	n, ok := coerceInt(v)
	if !ok {
		return 0, models.Validationf(key, "must be an integer; got %v", v)
	}
	return n, nil
}

func require1DInt(raw Raw, key string, size int) ([]int, error) {
	v, ok := raw[key]
	if !ok {
		return nil, models.Validationf(key, "missing required field")
	}
	seq, ok := v.([]any)
	if !ok {
		return nil, models.Validationf(key, "must be a list of %d integers", size)
	}
	if len(seq) != size {
		return nil, models.Validationf(key, "must have length %d; got %d", size, len(seq))
	}
	out := make([]int, size)
	for i, item := range seq {
		n, ok := coerceInt(item)
		if !ok {
			return nil, models.Validationf(key, "element %d is not an integer: %v", i, item)
		}
		out[i] = n
	}
	return out, nil
}

// require2DInt accepts a nested rows x cols matrix or a flat sequence of
// length rows*cols (the shape the DZN array2d constructor yields).
func require2DInt(raw Raw, key string, rows, cols int) ([][]int, error) {
	cells, err := matrixCells(raw, key, rows, cols)
	if err != nil {
		return nil, err
	}
	out := make([][]int, rows)
	for r := range out {
		out[r] = make([]int, cols)
		for c := range out[r] {
			n, ok := coerceInt(cells[r*cols+c])
			if !ok {
				return nil, models.Validationf(key, "must contain integers; got %v", cells[r*cols+c])
			}
			out[r][c] = n
		}
	}
	return out, nil
}

// require2DBool mirrors require2DInt with the permissive boolean coercion.
func require2DBool(raw Raw, key string, rows, cols int) ([][]bool, error) {
	cells, err := matrixCells(raw, key, rows, cols)
	if err != nil {
		return nil, err
	}
	out := make([][]bool, rows)
	for r := range out {
		out[r] = make([]bool, cols)
		for c := range out[r] {
			b, ok := coerceBool(cells[r*cols+c])
			if !ok {
				return nil, models.Validationf(key, "must contain booleans; got %v", cells[r*cols+c])
			}
			out[r][c] = b
		}
	}
	return out, nil
}

// matrixCells flattens the accepted matrix forms to a row-major cell slice
// of exactly rows*cols entries. Mismatched shape in either form is an error
// naming the expectation; values are never truncated or padded.
func matrixCells(raw Raw, key string, rows, cols int) ([]any, error) {
	v, ok := raw[key]
	if !ok {
		return nil, models.Validationf(key, "missing required field")
	}
	seq, ok := v.([]any)
	if !ok {
		return nil, models.Validationf(key, "must be a matrix with shape [%d][%d]", rows, cols)
	}

	if nested, ok := asNestedRows(seq); ok {
		if len(nested) != rows {
			return nil, models.Validationf(key, "must have %d rows; got %d", rows, len(nested))
		}
		cells := make([]any, 0, rows*cols)
		for r, row := range nested {
			if len(row) != cols {
				return nil, models.Validationf(key, "row %d must have %d columns; got %d", r, cols, len(row))
			}
			cells = append(cells, row...)
		}
		return cells, nil
	}

	if len(seq) != rows*cols {
		return nil, models.Validationf(key, "flat form must have %d values for shape [%d][%d]; got %d",
			rows*cols, rows, cols, len(seq))
	}
	return seq, nil
}

// asNestedRows reports whether every element of seq is itself a sequence.
func asNestedRows(seq []any) ([][]any, bool) {
	if len(seq) == 0 {
		return nil, false
	}
	rowSeqs := make([][]any, len(seq))
	for i, el := range seq {
		row, ok := el.([]any)
		if !ok {
			return nil, false
		}
		rowSeqs[i] = row
	}
	return rowSeqs, true
}

// coerceInt accepts the scalar encodings the two parsers can produce: native
// ints, JSON numbers (integral only), and numeric strings.
func coerceInt(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case int64:
		return int(x), true
	case json.Number:
		n, err := x.Int64()
		if err != nil {
			return 0, false
		}
		return int(n), true
	case float64:
		if x != float64(int(x)) {
			return 0, false
		}
		return int(x), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// coerceBool accepts boolean literals, numeric 0/1, and the string forms
// true/t/1 and false/f/0, case-insensitive.
func coerceBool(v any) (bool, bool) {
	switch x := v.(type) {
	case bool:
		return x, true
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "true", "t", "1":
			return true, true
		case "false", "f", "0":
			return false, true
		}
		return false, false
	default:
		n, ok := coerceInt(v)
		if !ok {
			return false, false
		}
		switch n {
		case 0:
			return false, true
		case 1:
			return true, true
		}
		return false, false
	}
}
