package shamir

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/Davincible/gfshare/pkg/crypto/gf256"
)

// Text prefixes naming a share's encoding.
const (
	HexPrefix    = "hex:"
	Base64Prefix = "b64:"
)

// Share is one recipient's portion of a split secret: one point per secret
// byte. The x coordinate is drawn afresh for every byte position, so a share
// serializes as len(secret) (x, y) pairs.
type Share struct {
	points []Point[gf256.Element]
}

// NewShare returns a share holding a copy of points.
func NewShare(points []Point[gf256.Element]) Share {
	cp := make([]Point[gf256.Element], len(points))
	copy(cp, points)
	return Share{points: cp}
}

// Len returns the number of points, which equals the secret length.
func (s Share) Len() int {
	return len(s.points)
}

// Point returns the point at byte position i.
func (s Share) Point(i int) Point[gf256.Element] {
	return s.points[i]
}

// Points returns a copy of all points.
func (s Share) Points() []Point[gf256.Element] {
	cp := make([]Point[gf256.Element], len(s.points))
	copy(cp, s.points)
	return cp
}

// Validate checks that no point uses the reserved x coordinate zero.
func (s Share) Validate() error {
	for i, p := range s.points {
		if p.X.IsZero() {
			return fmt.Errorf("%w: zero x at position %d", ErrInvalidCoordinate, i)
		}
	}
	return nil
}

// Bytes encodes the share as concatenated (x, y) byte pairs.
func (s Share) Bytes() []byte {
	out := make([]byte, 0, 2*len(s.points))
	for _, p := range s.points {
		out = append(out, p.X.Byte(), p.Y.Byte())
	}
	return out
}

// Hex returns the hex encoding of Bytes.
func (s Share) Hex() string {
	return hex.EncodeToString(s.Bytes())
}

// Base64 returns the standard base64 encoding of Bytes behind Base64Prefix.
// The prefix keeps the text from being read as hex when every character
// happens to be a hex digit.
func (s Share) Base64() string {
	return Base64Prefix + base64.StdEncoding.EncodeToString(s.Bytes())
}

// ParseShare decodes the output of Bytes.
func ParseShare(data []byte) (Share, error) {
	if len(data)%2 != 0 {
		return Share{}, fmt.Errorf("%w: odd length %d", ErrMalformedShare, len(data))
	}

	points := make([]Point[gf256.Element], len(data)/2)
	for i := range points {
		points[i] = Point[gf256.Element]{
			X: gf256.Element(data[2*i]),
			Y: gf256.Element(data[2*i+1]),
		}
	}

	share := Share{points: points}
	if err := share.Validate(); err != nil {
		return Share{}, err
	}
	return share, nil
}

// ParseShareString decodes a share given as text. Tagged text is decoded as
// its tag says. Untagged text is hex when it decodes as hex and base64
// otherwise, so untagged base64 made only of hex digits is misread.
func ParseShareString(s string) (Share, error) {
	s = strings.TrimSpace(s)

	switch {
	case strings.HasPrefix(s, Base64Prefix):
		return parseEncoded(strings.TrimPrefix(s, Base64Prefix), base64.StdEncoding.DecodeString, "base64")
	case strings.HasPrefix(s, HexPrefix):
		return parseEncoded(strings.TrimPrefix(s, HexPrefix), hex.DecodeString, "hex")
	case s == "":
		return Share{}, fmt.Errorf("%w: empty input", ErrMalformedShare)
	}

	if data, err := hex.DecodeString(s); err == nil {
		return ParseShare(data)
	}

	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return Share{}, fmt.Errorf("%w: neither hex nor base64", ErrMalformedShare)
	}
	return ParseShare(data)
}

func parseEncoded(s string, decode func(string) ([]byte, error), name string) (Share, error) {
	if s == "" {
		return Share{}, fmt.Errorf("%w: empty %s", ErrMalformedShare, name)
	}

	data, err := decode(s)
	if err != nil {
		return Share{}, fmt.Errorf("%w: invalid %s", ErrMalformedShare, name)
	}
	return ParseShare(data)
}
