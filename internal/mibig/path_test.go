package mibig

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSteps(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Steps
	}{
		{"single stage", "pksA", Steps{{"pksA"}}},
		{"comma separated", "pksA, pksB > TE", Steps{{"pksA", "pksB"}, {"TE"}}},
		{"slash separated", "pksA/pksB > TE", Steps{{"pksA", "pksB"}, {"TE"}}},
		{"mixed", "a,b > c/d > e", Steps{{"a", "b"}, {"c", "d"}, {"e"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSteps(tt.raw))
		})
	}
}

func TestStepsCanonicalForm(t *testing.T) {
	var steps Steps
	require.NoError(t, json.Unmarshal([]byte(`"pksA/pksB > TE"`), &steps))

	out, err := json.Marshal(steps)
	require.NoError(t, err)
	assert.Equal(t, `"pksA, pksB > TE"`, string(out))
	assert.Equal(t, "pksA, pksB > TE", steps.String())
}

func TestPathRequiresProductsAndReferences(t *testing.T) {
	_, err := NewPath(nil, nil, nil, false, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "path.products")
	assert.Contains(t, err.Error(), "path.references")

	path, err := NewPath(
		[]Product{{Name: "prodigiosin"}},
		ParseSteps("pigI > pigA"),
		[]Citation{{Database: "pubmed", Value: "15600304"}},
		false, false,
	)
	require.NoError(t, err)
	assert.Len(t, path.Steps, 2)
}
