package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const randomBytes = 8

// Generator creates opaque IDs used to correlate log lines of one run.
type Generator interface {
	NewID() (string, error)
}

// RandomGenerator renders "<prefix>_<16 hex chars>", or just the hex part
// when prefix is empty.
type RandomGenerator struct {
	prefix string
}

func NewRandomGenerator(prefix string) *RandomGenerator {
	return &RandomGenerator{prefix: prefix}
}

func (g *RandomGenerator) NewID() (string, error) {
	buf := make([]byte, randomBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	if g == nil || g.prefix == "" {
		return hex.EncodeToString(buf), nil
	}
	return g.prefix + "_" + hex.EncodeToString(buf), nil
}
