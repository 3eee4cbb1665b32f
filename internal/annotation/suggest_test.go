package annotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClosestTag(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"pram", "param"},
		{"exprt", "export"},
		{"returns", "return"},
		{"importFrm", "importFrom"},
		{"frmat", "format"},
		{"completelywrong", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, closestTag(tt.input), "input %q", tt.input)
	}
}

func TestLevenshtein(t *testing.T) {
	assert.Equal(t, 0, levenshtein("param", "param"))
	assert.Equal(t, 1, levenshtein("pram", "param"))
	assert.Equal(t, 5, levenshtein("", "param"))
	assert.Equal(t, 3, levenshtein("abc", "xyz"))
}

func TestUnrecognizedTagCarriesTypoSuggestion(t *testing.T) {
	source := "#' @pram x the first operand\n#' @export\nf <- function(x) x\n"

	_, diags := New("src/f.u", source).Parse()
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Suggestion, "did you mean '@param'?")
}
