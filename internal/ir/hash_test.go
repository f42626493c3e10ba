package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordHashDeterministic(t *testing.T) {
	rec := &Record{
		Name:   "Something",
		Fields: []Field{{Name: "number", Type: "Int"}, {Name: "whatever", Type: "String"}},
	}

	h1, err := RecordHash(rec)
	require.NoError(t, err)
	h2, err := RecordHash(rec)
	require.NoError(t, err)

	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64)
}

func TestRecordHashSensitiveToFieldOrder(t *testing.T) {
	a := &Record{Name: "R", Fields: []Field{{Name: "x", Type: "Int"}, {Name: "y", Type: "Int"}}}
	b := &Record{Name: "R", Fields: []Field{{Name: "y", Type: "Int"}, {Name: "x", Type: "Int"}}}

	ha, err := RecordHash(a)
	require.NoError(t, err)
	hb, err := RecordHash(b)
	require.NoError(t, err)

	assert.NotEqual(t, ha, hb)
}

func TestHashWithDomainSeparation(t *testing.T) {
	data := []byte(`{"name":"R"}`)
	assert.NotEqual(t, hashWithDomain("a/v1", data), hashWithDomain("b/v1", data))
	// The null separator keeps "ab"+"c" distinct from "a"+"bc".
	assert.NotEqual(t, hashWithDomain("ab", []byte("c")), hashWithDomain("a", []byte("bc")))
}
