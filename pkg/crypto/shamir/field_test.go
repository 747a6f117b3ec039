package shamir

import (
	"fmt"
	"io"
)

// gf251 is a small prime field used to exercise the generic code paths
// against something other than GF(2^8).
type gf251 uint16

const p251 = 251

func (a gf251) Add(b gf251) gf251 { return (a + b) % p251 }

func (a gf251) Sub(b gf251) gf251 { return (a + p251 - b) % p251 }

func (a gf251) Mul(b gf251) gf251 { return gf251(uint32(a) * uint32(b) % p251) }

func (a gf251) Div(b gf251) gf251 {
	if b == 0 {
		panic("gf251: division by zero")
	}
	return a.Mul(b.pow(p251 - 2))
}

func (a gf251) pow(e int) gf251 {
	res := gf251(1)
	for i := 0; i < e; i++ {
		res = res.Mul(a)
	}
	return res
}

type gf251Field struct{}

func (gf251Field) Zero() gf251 { return 0 }

func (gf251Field) One() gf251 { return 1 }

func (gf251Field) Random(r io.Reader) (gf251, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, fmt.Errorf("gf251: %w", err)
	}
	return gf251(buf[0]) % p251, nil
}
