package random

import (
	"crypto/rand"
	"encoding/binary"
	"math/big"
)

// cryptoSource implements Source using crypto/rand.
//
// Invariant: values are uniformly distributed and not reproducible. Use it
// only where reproducibility is not wanted, or to pick a seed.
type cryptoSource struct{}

// NewCryptoSource returns a Source backed by crypto/rand.
//
// Postcondition: Every value returned by Intn is in [0, n).
func NewCryptoSource() Source {
	return &cryptoSource{}
}

// Intn returns a cryptographically secure random int in [0, n).
//
// Precondition: n > 0. Panics with "random: Intn called with n <= 0" if n <= 0.
// Panics with "random: crypto/rand failure: <err>" if crypto/rand fails.
func (c *cryptoSource) Intn(n int) int {
	if n <= 0 {
		panic("random: Intn called with n <= 0")
	}
	val, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("random: crypto/rand failure: " + err.Error())
	}
	return int(val.Int64())
}

// Float64 returns a cryptographically secure float in [0.0, 1.0) with 53 bits
// of precision.
func (c *cryptoSource) Float64() float64 {
	return float64(cryptoUint64()>>11) / (1 << 53)
}

// NewSeed returns a fresh non-zero seed suitable for NewSeededSource.
func NewSeed() uint64 {
	for {
		if s := cryptoUint64(); s != 0 {
			return s
		}
	}
}

func cryptoUint64() uint64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		panic("random: crypto/rand failure: " + err.Error())
	}
	return binary.LittleEndian.Uint64(buf[:])
}
