package gf256

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// referenceMul is the schoolbook multiply, free to branch since it only runs in tests.
func referenceMul(a, b byte) byte {
	result := byte(0)
	for i := 0; i < 8; i++ {
		if (b>>i)&1 == 1 {
			result ^= a
		}
		carry := a & 0x80
		a <<= 1
		if carry != 0 {
			a ^= 0x1B
		}
	}
	return result
}

func element(t *rapid.T, label string) Element {
	return Element(rapid.Uint8().Draw(t, label))
}

func nonZeroElement(t *rapid.T, label string) Element {
	return Element(rapid.Uint8Range(1, 255).Draw(t, label))
}

func TestKnownProducts(t *testing.T) {
	tests := []struct {
		name string
		a, b Element
		want Element
	}{
		{"AES inverse pair", 0x53, 0xCA, 0x01},
		{"FIPS-197 example", 0x57, 0x83, 0xC1},
		{"FIPS-197 xtime", 0x57, 0x13, 0xFE},
		{"Zero absorbs", 0x00, 0xFF, 0x00},
		{"One is identity", 0x01, 0xAB, 0xAB},
		{"Overflow reduces", 0x80, 0x02, 0x1B},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Mul(tt.b))
			assert.Equal(t, tt.want, tt.b.Mul(tt.a))
		})
	}
}

func TestMulMatchesReference(t *testing.T) {
	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			got := Element(a).Mul(Element(b))
			require.Equal(t, referenceMul(byte(a), byte(b)), got.Byte(), "a=%d b=%d", a, b)
		}
	}
}

func TestInverseOfEveryNonZeroElement(t *testing.T) {
	for a := 1; a < 256; a++ {
		e := Element(a)
		inv := e.Inverse()
		assert.False(t, inv.IsZero(), "inverse of %d must be nonzero", a)
		assert.Equal(t, One(), inv.Mul(e), "a=%d", a)
	}
}

func TestInverseOfZeroIsZero(t *testing.T) {
	assert.Equal(t, Zero(), Zero().Inverse())
}

func TestDivisionByZeroPanics(t *testing.T) {
	assert.PanicsWithValue(t, ErrDivisionByZero, func() {
		Element(7).Div(Zero())
	})
}

func TestPow(t *testing.T) {
	for a := 0; a < 256; a++ {
		e := Element(a)
		expected := One()
		for exp := 0; exp < 256; exp++ {
			require.Equal(t, expected, e.Pow(uint8(exp)), "a=%d e=%d", a, exp)
			expected = expected.Mul(e)
		}
	}
}

func TestPowZeroExponent(t *testing.T) {
	assert.Equal(t, One(), Zero().Pow(0))
	assert.Equal(t, One(), Element(0x42).Pow(0))
}

func TestFieldAxioms(t *testing.T) {
	t.Run("Self inverse under addition", func(t *testing.T) {
		rapid.Check(t, func(t *rapid.T) {
			a := element(t, "a")
			if !a.Add(a).IsZero() {
				t.Fatalf("%v + %v != 0", a, a)
			}
			if !a.Neg().Equal(a) {
				t.Fatalf("-%v != %v", a, a)
			}
		})
	})

	t.Run("Identities", func(t *testing.T) {
		rapid.Check(t, func(t *rapid.T) {
			a := element(t, "a")
			if !a.Mul(One()).Equal(a) {
				t.Fatalf("%v * 1 != %v", a, a)
			}
			if !a.Add(Zero()).Equal(a) {
				t.Fatalf("%v + 0 != %v", a, a)
			}
		})
	})

	t.Run("Multiplicative inverse", func(t *testing.T) {
		rapid.Check(t, func(t *rapid.T) {
			a := nonZeroElement(t, "a")
			if !a.Inverse().Mul(a).Equal(One()) {
				t.Fatalf("inverse(%v) * %v != 1", a, a)
			}
		})
	})

	t.Run("Commutative", func(t *testing.T) {
		rapid.Check(t, func(t *rapid.T) {
			a, b := element(t, "a"), element(t, "b")
			if !a.Mul(b).Equal(b.Mul(a)) {
				t.Fatalf("%v * %v is not commutative", a, b)
			}
			if !a.Add(b).Equal(b.Add(a)) {
				t.Fatalf("%v + %v is not commutative", a, b)
			}
		})
	})

	t.Run("Associative", func(t *testing.T) {
		rapid.Check(t, func(t *rapid.T) {
			a, b, c := element(t, "a"), element(t, "b"), element(t, "c")
			if !a.Add(b.Add(c)).Equal(a.Add(b).Add(c)) {
				t.Fatalf("addition not associative for %v %v %v", a, b, c)
			}
			if !a.Mul(b.Mul(c)).Equal(a.Mul(b).Mul(c)) {
				t.Fatalf("multiplication not associative for %v %v %v", a, b, c)
			}
		})
	})

	t.Run("Distributive", func(t *testing.T) {
		rapid.Check(t, func(t *rapid.T) {
			a, b, c := element(t, "a"), element(t, "b"), element(t, "c")
			if !a.Mul(b.Add(c)).Equal(a.Mul(b).Add(a.Mul(c))) {
				t.Fatalf("not distributive for %v %v %v", a, b, c)
			}
		})
	})

	t.Run("Division undoes multiplication", func(t *testing.T) {
		rapid.Check(t, func(t *rapid.T) {
			a, b := element(t, "a"), nonZeroElement(t, "b")
			if !a.Mul(b).Div(b).Equal(a) {
				t.Fatalf("(%v * %v) / %v != %v", a, b, b, a)
			}
			if !a.Sub(b).Add(b).Equal(a) {
				t.Fatalf("(%v - %v) + %v != %v", a, b, b, a)
			}
		})
	})
}

func TestSquare(t *testing.T) {
	for a := 0; a < 256; a++ {
		e := Element(a)
		assert.Equal(t, e.Mul(e), e.Square())
	}
}

func TestEqualAndIsZero(t *testing.T) {
	assert.True(t, Zero().IsZero())
	assert.False(t, One().IsZero())
	assert.True(t, Element(0x99).Equal(0x99))
	assert.False(t, Element(0x99).Equal(0x98))
}

func TestRandom(t *testing.T) {
	e, err := Random(bytes.NewReader([]byte{0xAB}))
	require.NoError(t, err)
	assert.Equal(t, Element(0xAB), e)

	_, err = Random(bytes.NewReader(nil))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read random field element")
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func TestFieldCapability(t *testing.T) {
	var f Field
	assert.Equal(t, Zero(), f.Zero())
	assert.Equal(t, One(), f.One())

	e, err := f.Random(bytes.NewReader([]byte{5}))
	require.NoError(t, err)
	assert.Equal(t, Element(5), e)

	_, err = f.Random(failingReader{})
	assert.ErrorContains(t, err, "entropy exhausted")
}

func TestString(t *testing.T) {
	assert.Equal(t, "27", Element(27).String())
}

func BenchmarkMul(b *testing.B) {
	x, y := Element(0x57), Element(0x83)
	for i := 0; i < b.N; i++ {
		x = x.Mul(y)
	}
}

func BenchmarkInverse(b *testing.B) {
	x := Element(0x53)
	for i := 0; i < b.N; i++ {
		_ = x.Inverse()
	}
}
