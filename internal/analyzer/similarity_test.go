package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{"Identical", "hello", "hello", 1.0},
		{"CompletelyDifferent", "aaaa", "bbbb", 0.0},
		{"HelloWorld", "hello", "world", 0.2},
		{"OneEmpty", "", "abc", 0.0},
		{"BothEmpty", "", "", 1.0},
		{"Prefix", "abcd", "ab", 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Similarity([]byte(tt.a), []byte(tt.b)), 1e-9)
		})
	}
}

func TestSimilaritySymmetric(t *testing.T) {
	a := []byte("kitten")
	b := []byte("sitting")
	assert.Equal(t, Similarity(a, b), Similarity(b, a))
}

func TestSimilaritySingleEdit(t *testing.T) {
	a := []byte("aaaaaaaaaaaaaaaaa") // 17 bytes
	b := append([]byte(nil), a...)
	b[8] = 'b'

	sim := Similarity(a, b)
	assert.InDelta(t, 16.0/17.0, sim, 1e-9)
	assert.Less(t, sim, 1.0)
	assert.GreaterOrEqual(t, sim, 0.9)
}

func TestSimilarityReflexive(t *testing.T) {
	keys := [][]byte{
		[]byte{0x00},
		[]byte("some longer signature sequence"),
		make([]byte, 64),
	}
	for _, k := range keys {
		assert.Equal(t, 1.0, Similarity(k, k))
	}
}
