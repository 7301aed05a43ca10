package instance

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jcastellanos/jobshopd/pkg/models"
)

var (
	dznComment = regexp.MustCompile(`%[^\n]*`)
	dznArray2D = regexp.MustCompile(`(?is)^array2d\s*\(\s*[^,]+,\s*[^,]+,\s*\[(.*)\]\s*\)$`)
	dznArray1D = regexp.MustCompile(`(?s)^\[\s*(.*?)\s*\]$`)
	dznWS      = regexp.MustCompile(`\s+`)
)

// parseDZN reads the line-oriented declarative format: `name = value;`
// statements with % comments. Values are int/bool scalars, bracketed 1-D
// lists, or array2d(_, _, [flat]) constructors whose payload stays flat; the
// schema validator reshapes it using the companion scalar fields.
func parseDZN(text string) (Raw, error) {
	noComments := dznComment.ReplaceAllString(text, "")

	data := Raw{}
	sawAssignment := false
	for _, stmt := range strings.Split(noComments, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		key, val, ok := strings.Cut(stmt, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		val = strings.TrimSpace(val)
		if key == "" {
			return nil, &models.ParseError{Format: "dzn", Msg: "assignment with empty name"}
		}
		sawAssignment = true

		if m := dznArray2D.FindStringSubmatch(val); m != nil {
			data[key] = splitValues(m[1])
			continue
		}
		if m := dznArray1D.FindStringSubmatch(val); m != nil {
			data[key] = splitValues(m[1])
			continue
		}
		data[key] = classifyToken(val)
	}

	if !sawAssignment {
		return nil, &models.ParseError{Format: "dzn", Msg: "no assignments found"}
	}
	return data, nil
}

// splitValues tokenizes a bracketed payload. Embedded newlines and repeated
// whitespace are insignificant; tokens are comma-separated.
func splitValues(s string) []any {
	s = dznWS.ReplaceAllString(strings.TrimSpace(s), " ")
	var out []any
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		out = append(out, classifyToken(tok))
	}
	return out
}

// classifyToken turns a token into bool, then int, falling back to the raw
// string when neither parse succeeds.
func classifyToken(tok string) any {
	switch strings.ToLower(tok) {
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.Atoi(tok); err == nil {
		return n
	}
	return tok
}
