package engine

import (
	"encoding/json"
	"fmt"
)

// Bindings are the decision-variable assignments of one reported solution,
// keyed by variable name as emitted by the engine.
type Bindings map[string]json.RawMessage

// Int extracts a scalar integer variable. A missing or non-integer value is
// an output-contract violation.
func (b Bindings) Int(key string) (int, error) {
	raw, ok := b[key]
	if !ok {
		return 0, &Error{Op: "result", Msg: "missing variable " + key}
	}
	var n int
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, &Error{Op: "result", Msg: "variable " + key + " is not an integer", Err: err}
	}
	return n, nil
}

// Int2D extracts a rows x cols integer matrix variable. The engine may emit
// it nested or flat; either way the declared shape must match exactly.
func (b Bindings) Int2D(key string, rows, cols int) ([][]int, error) {
	raw, ok := b[key]
	if !ok {
		return nil, &Error{Op: "result", Msg: "missing variable " + key}
	}

	shapeErr := func() error {
		return &Error{Op: "result", Msg: fmt.Sprintf(
			"variable %s is not an integer matrix with shape [%d][%d]", key, rows, cols)}
	}

	var nested [][]int
	if err := json.Unmarshal(raw, &nested); err == nil {
		if len(nested) != rows {
			return nil, shapeErr()
		}
		for _, row := range nested {
			if len(row) != cols {
				return nil, shapeErr()
			}
		}
		return nested, nil
	}

	var flat []int
	if err := json.Unmarshal(raw, &flat); err != nil || len(flat) != rows*cols {
		return nil, shapeErr()
	}
	out := make([][]int, rows)
	for r := range out {
		out[r] = flat[r*cols : (r+1)*cols]
	}
	return out, nil
}
