package id

import (
	"fmt"

	"github.com/google/uuid"
)

// Generator creates opaque IDs for broadcast events and websocket clients.
type Generator interface {
	NewID() (string, error)
}

type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) NewID() (string, error) {
	v, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}
	return v.String(), nil
}

// MustNewID is NewID for call sites that cannot surface an error.
func MustNewID(g Generator) string {
	if g == nil {
		return uuid.NewString()
	}
	v, err := g.NewID()
	if err != nil {
		return uuid.NewString()
	}
	return v
}
