// Package shamir implements (k, n) threshold secret sharing over GF(2^8).
//
// Every byte of the secret becomes the constant term of its own random
// polynomial of degree k-1. Each share receives one point of that polynomial
// per byte position, with x coordinates drawn independently per position.
// Any k shares recover the secret by interpolating each position at zero.
//
// Recover does not know k. Combining fewer than k shares returns bytes of the
// right length that are not the secret, and no error: callers must not treat a
// successful Recover as proof that enough shares were supplied.
package shamir

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/Davincible/gfshare/pkg/crypto/gf256"
	"github.com/Davincible/gfshare/pkg/secure"
)

// MaxParts bounds the number of shares below the 255 nonzero x coordinates.
const MaxParts = 254

var (
	ErrInvalidShareCount   = errors.New("parts must be between 1 and 254")
	ErrInvalidThreshold    = errors.New("threshold must be between 1 and parts")
	ErrNoShares            = errors.New("no shares provided")
	ErrShareLengthMismatch = errors.New("shares have different lengths")
	ErrInvalidCoordinate   = errors.New("invalid x coordinate")
	ErrMalformedShare      = errors.New("malformed share")
)

var field Field[gf256.Element] = gf256.Field{}

type Config struct {
	Parts     int
	Threshold int
}

func (c *Config) Validate() error {
	if c.Parts < 1 || c.Parts > MaxParts {
		return fmt.Errorf("%w, got %d", ErrInvalidShareCount, c.Parts)
	}
	if c.Threshold < 1 || c.Threshold > c.Parts {
		return fmt.Errorf("%w (%d), got %d", ErrInvalidThreshold, c.Parts, c.Threshold)
	}
	return nil
}

// Sharer splits and recovers secrets. The zero value is not usable; call
// NewSharer.
type Sharer struct {
	random  io.Reader
	workers int
	logger  *slog.Logger
}

type Option func(*Sharer)

// WithRandom replaces crypto/rand.Reader as the source of coefficients and x
// coordinates. It must never be seeded or replayed outside of tests.
func WithRandom(r io.Reader) Option {
	return func(s *Sharer) {
		s.random = r
	}
}

// WithWorkers spreads byte positions over n goroutines.
func WithWorkers(n int) Option {
	return func(s *Sharer) {
		if n > 0 {
			s.workers = n
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Sharer) {
		s.logger = logger
	}
}

func NewSharer(opts ...Option) *Sharer {
	s := &Sharer{
		random:  rand.Reader,
		workers: 1,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var defaultSharer = NewSharer()

// Split splits secret with crypto/rand as the randomness source.
func Split(secret []byte, config Config) ([]Share, error) {
	return defaultSharer.Split(secret, config)
}

// Recover combines shares produced by Split.
func Recover(shares []Share) ([]byte, error) {
	return defaultSharer.Recover(shares)
}

// Split separates secret into config.Parts shares, any config.Threshold of
// which recover it.
func (s *Sharer) Split(secret []byte, config Config) ([]Share, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	random := s.random
	if s.workers > 1 {
		random = secure.NewSyncReader(random)
	}

	points := make([][]Point[gf256.Element], config.Parts)
	for j := range points {
		points[j] = make([]Point[gf256.Element], len(secret))
	}

	err := s.forEachRange(len(secret), func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			if err := splitPosition(random, secret, i, config.Threshold, points); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to split secret: %w", err)
	}

	shares := make([]Share, config.Parts)
	for j := range shares {
		shares[j] = Share{points: points[j]}
	}

	s.logger.Debug("Split secret",
		"length", len(secret), "threshold", config.Threshold, "parts", config.Parts, "workers", s.workers)

	return shares, nil
}

func splitPosition(random io.Reader, secret []byte, pos, threshold int, points [][]Point[gf256.Element]) error {
	poly, err := NewPolynomial[gf256.Element](field, random, gf256.Element(secret[pos]), threshold)
	if err != nil {
		return fmt.Errorf("position %d: %w", pos, err)
	}

	var used [256]bool
	for j := range points {
		x, err := drawCoordinate(random, &used)
		if err != nil {
			return fmt.Errorf("position %d: %w", pos, err)
		}
		points[j][pos] = Point[gf256.Element]{X: x, Y: poly.Evaluate(x)}
	}

	return nil
}

// drawCoordinate rejection-samples a nonzero x not yet used at this position.
func drawCoordinate(random io.Reader, used *[256]bool) (gf256.Element, error) {
	for {
		x, err := gf256.Random(random)
		if err != nil {
			return 0, err
		}
		if x.IsZero() || used[x] {
			continue
		}
		used[x] = true
		return x, nil
	}
}

// Recover interpolates every byte position of shares at zero. All shares must
// have the same length, and each position must carry distinct nonzero x
// coordinates. The threshold is not checked.
func (s *Sharer) Recover(shares []Share) ([]byte, error) {
	if len(shares) == 0 {
		return nil, ErrNoShares
	}

	size := shares[0].Len()
	for i, share := range shares[1:] {
		if share.Len() != size {
			return nil, fmt.Errorf("%w: share %d has %d points, expected %d",
				ErrShareLengthMismatch, i+1, share.Len(), size)
		}
	}

	secret := make([]byte, size)
	err := s.forEachRange(size, func(lo, hi int) error {
		points := make([]Point[gf256.Element], len(shares))
		for i := lo; i < hi; i++ {
			var seen [256]bool
			for j, share := range shares {
				p := share.points[i]
				if p.X.IsZero() || seen[p.X] {
					return fmt.Errorf("%w: share %d at position %d", ErrInvalidCoordinate, j, i)
				}
				seen[p.X] = true
				points[j] = p
			}
			secret[i] = InterpolateAtZero[gf256.Element](field, points).Byte()
		}
		return nil
	})
	if err != nil {
		secure.Zero(secret)
		return nil, err
	}

	s.logger.Debug("Recovered secret", "length", size, "shares", len(shares))

	return secret, nil
}

func (s *Sharer) forEachRange(length int, fn func(lo, hi int) error) error {
	if s.workers <= 1 || length < 2 {
		return fn(0, length)
	}

	chunk := (length + s.workers - 1) / s.workers
	var g errgroup.Group
	g.SetLimit(s.workers)
	for lo := 0; lo < length; lo += chunk {
		lo, hi := lo, min(lo+chunk, length)
		g.Go(func() error {
			return fn(lo, hi)
		})
	}
	return g.Wait()
}
