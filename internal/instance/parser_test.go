package instance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcastellanos/jobshopd/pkg/models"
)

func TestParse_StrictJSON(t *testing.T) {
	raw, err := Parse([]byte(`{"jobs": 2, "flag": true}`), "instance.json")
	require.NoError(t, err)

	n, ok := coerceInt(raw["jobs"])
	require.True(t, ok)
	assert.Equal(t, 2, n)
	assert.Equal(t, true, raw["flag"])
}

func TestParse_StrictJSON_NoFallback(t *testing.T) {
	// A .json hint must not fall back to the DZN parser.
	_, err := Parse([]byte("jobs = 2;"), "instance.json")
	require.Error(t, err)

	var parseErr *models.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "json", parseErr.Format)
}

func TestParse_JSONMustBeObject(t *testing.T) {
	_, err := Parse([]byte(`[1, 2, 3]`), "instance.json")
	require.Error(t, err)
}

func TestParse_MisnamedJSONFallsThrough(t *testing.T) {
	// JSON content under a .dzn name still parses as JSON.
	raw, err := Parse([]byte(`{"jobs": 3}`), "instance.dzn")
	require.NoError(t, err)

	n, ok := coerceInt(raw["jobs"])
	require.True(t, ok)
	assert.Equal(t, 3, n)
}

func TestParse_DZNScalarsAndComments(t *testing.T) {
	text := `
% instance header comment
jobs = 2;  % trailing comment
tasks = 3;
active = true;
label = abc;
`
	raw, err := Parse([]byte(text), "instance.dzn")
	require.NoError(t, err)

	assert.Equal(t, 2, raw["jobs"])
	assert.Equal(t, 3, raw["tasks"])
	assert.Equal(t, true, raw["active"])
	assert.Equal(t, "abc", raw["label"])
}

func TestParse_DZNArrays(t *testing.T) {
	text := `
weights = [4, 2, 7];
flags = [true, FALSE, true];
d = array2d(1..2, 1..3, [1, 2, 3,
                         4, 5, 6]);
`
	raw, err := Parse([]byte(text), "instance.dzn")
	require.NoError(t, err)

	assert.Equal(t, []any{4, 2, 7}, raw["weights"])
	assert.Equal(t, []any{true, false, true}, raw["flags"])
	// array2d payloads stay flat; the schema validator reshapes them.
	assert.Equal(t, []any{1, 2, 3, 4, 5, 6}, raw["d"])
}

func TestParse_DZNGarbageRejected(t *testing.T) {
	_, err := Parse([]byte("this is not an instance"), "notes.txt")
	require.Error(t, err)

	var parseErr *models.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "dzn", parseErr.Format)
}

func TestParse_Idempotent(t *testing.T) {
	text := []byte(`
jobs = 2;
d = array2d(1..2, 1..2, [5, 1, 2, 8]);
weights = [1, 3];
`)
	first, err := Parse(text, "a.dzn")
	require.NoError(t, err)
	second, err := Parse(text, "a.dzn")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
