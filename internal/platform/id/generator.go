// Package id generates the opaque identifiers handed out for races, bets,
// drivers, and users. IDs carry no structure; ordering and ownership live in
// the records themselves.
package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const idBytes = 16

// Generator creates opaque IDs suitable for external references.
type Generator interface {
	NewID() (string, error)
}

// RandomGenerator produces hex-encoded random IDs. Services take the
// Generator interface so tests can substitute fixed IDs.
type RandomGenerator struct{}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

func (g *RandomGenerator) NewID() (string, error) {
	buf := make([]byte, idBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	return hex.EncodeToString(buf), nil
}
