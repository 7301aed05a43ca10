// Package instance ingests raw scheduling instances: parsing the two
// supported textual formats, extracting the variant-specific typed fields,
// and loading stored instances by id.
package instance

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/jcastellanos/jobshopd/pkg/models"
)

// Raw is the untyped field mapping produced by parsing. Values are int or
// bool scalars, or []any sequences (nested rows, or flat for array2d data
// whose shape is resolved later against the companion scalars).
type Raw map[string]any

// Parse converts raw instance bytes into a Raw mapping. The filename acts as
// a format hint: a .json suffix demands strict JSON with no fallback. Any
// other name tries JSON first (covers mis-named uploads) and falls back to
// the DZN-like declarative format. Parsing is pure; identical bytes and hint
// always produce the same mapping.
func Parse(data []byte, filename string) (Raw, error) {
	if strings.HasSuffix(strings.ToLower(filename), ".json") {
		return parseJSON(data)
	}
	if raw, err := parseJSON(data); err == nil {
		return raw, nil
	}
	return parseDZN(string(data))
}

func parseJSON(data []byte) (Raw, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, &models.ParseError{Format: "json", Msg: err.Error()}
	}
	if obj == nil {
		return nil, &models.ParseError{Format: "json", Msg: "instance must be a JSON object"}
	}
	return Raw(obj), nil
}
