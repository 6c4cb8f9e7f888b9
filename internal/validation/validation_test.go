package validation

import (
	"testing"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorKeepsAllViolations(t *testing.T) {
	var c Collector
	c.Add("entry.accession", "invalid accession %q", "XYZ")
	c.Add("entry.quality", "invalid quality %q", "great")

	err := c.Err()
	require.Error(t, err)

	verr, ok := err.(*Error)
	require.True(t, ok)
	require.Len(t, verr.Violations, 2)
	assert.Equal(t, "entry.accession", verr.Violations[0].Field)
	assert.Equal(t, `invalid accession "XYZ"`, verr.Violations[0].Message)
	assert.Equal(t, "entry.quality", verr.Violations[1].Field)
}

func TestCollectorEmptyIsNil(t *testing.T) {
	var c Collector
	if err := c.Err(); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
}

func TestMergeNestedError(t *testing.T) {
	var inner Collector
	inner.Add("method", "invalid method")
	inner.Add("references", "missing references")

	var outer Collector
	outer.MergePrefixed("evidence[0]", inner.Err())

	verr := outer.Err().(*Error)
	require.Len(t, verr.Violations, 2)
	assert.Equal(t, "evidence[0].method", verr.Violations[0].Field)
	assert.Equal(t, "evidence[0].references", verr.Violations[1].Field)
}

func TestMergeOzzoErrors(t *testing.T) {
	type port struct {
		Port int
	}
	p := port{}
	err := ozzo.ValidateStruct(&p,
		ozzo.Field(&p.Port, ozzo.Required),
	)
	require.Error(t, err)

	var c Collector
	c.Merge("config", err)

	verr := c.Err().(*Error)
	require.Len(t, verr.Violations, 1)
	assert.Equal(t, "config.Port", verr.Violations[0].Field)
}

func TestErrorMessageListsEveryViolation(t *testing.T) {
	var c Collector
	c.Add("a", "first")
	c.Add("b", "second")
	assert.Equal(t, "a: first; b: second", c.Err().Error())
}
