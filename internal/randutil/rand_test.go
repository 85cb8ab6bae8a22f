package randutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIsDeterministic(t *testing.T) {
	a, b := New(42), New(42)
	for range 100 {
		assert.Equal(t, a.Uint64(), b.Uint64())
	}

	c, d := New(1), New(2)
	assert.NotEqual(t, c.Uint64(), d.Uint64())
}

func TestSeed(t *testing.T) {
	for range 20 {
		assert.Positive(t, Seed())
	}
}
