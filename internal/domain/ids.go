package domain

import "github.com/google/uuid"

// UUIDGenerator mints random document ids.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string { return uuid.NewString() }
