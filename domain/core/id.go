package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Master-data keys as stored in the planning database
type (
	ProductID   string
	ComponentID string
	LocationID  string
	PartnerID   string
)

func (id ProductID) String() string   { return string(id) }
func (id ComponentID) String() string { return string(id) }
func (id LocationID) String() string  { return string(id) }
func (id PartnerID) String() string   { return string(id) }

// RequireKey trims s and rejects blank keys.
func RequireKey(field, s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", NewInvalidArgument(field, "cannot be empty")
	}
	return s, nil
}

// ComponentIDs converts raw strings, rejecting an empty list or blank entries.
func ComponentIDs(raw []string) ([]ComponentID, error) {
	if len(raw) == 0 {
		return nil, NewEmptyInput("component_ids")
	}
	ids := make([]ComponentID, 0, len(raw))
	for i, r := range raw {
		v, err := RequireKey(fmt.Sprintf("component_ids[%d]", i), r)
		if err != nil {
			return nil, err
		}
		ids = append(ids, ComponentID(v))
	}
	return ids, nil
}
