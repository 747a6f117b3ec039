package secure

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZero(t *testing.T) {
	data := []byte("sensitive data to be zeroed")
	original := make([]byte, len(data))
	copy(original, data)

	Zero(data)

	for _, b := range data {
		assert.Equal(t, byte(0), b)
	}
	assert.NotEqual(t, original, data)
}

func TestConstantTimeCompare(t *testing.T) {
	a := []byte("test data")
	b := []byte("test data")
	c := []byte("different")
	d := []byte("test dat")

	assert.True(t, ConstantTimeCompare(a, b))
	assert.False(t, ConstantTimeCompare(a, c))
	assert.False(t, ConstantTimeCompare(a, d))
	assert.False(t, ConstantTimeCompare(a, []byte{}))
}

func BenchmarkZero(b *testing.B) {
	data := make([]byte, 1024)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Zero(data)
	}
}

func BenchmarkConstantTimeCompare(b *testing.B) {
	a := bytes.Repeat([]byte{0x42}, 32)
	b1 := bytes.Repeat([]byte{0x42}, 32)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ConstantTimeCompare(a, b1)
	}
}
