package core

import (
	"fmt"

	"github.com/google/uuid"
)

// Identifier names a geometry for its whole lifetime, across clones and reloads.
type Identifier string

const InvalidIdentifier Identifier = ""

func NewIdentifier() Identifier {
	return Identifier(uuid.New().String())
}

func ParseIdentifier(s string) (Identifier, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return InvalidIdentifier, fmt.Errorf("invalid identifier '%s': %w", s, err)
	}
	return Identifier(id.String()), nil
}

func (id Identifier) Short() string {
	if len(id) < 8 {
		return string(id)
	}
	return string(id[:8])
}

func (id Identifier) IsValid() bool {
	return id != InvalidIdentifier
}
