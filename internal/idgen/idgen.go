package idgen

import "github.com/google/uuid"

// NewFunc mints run identifiers.  Tests stub it with a deterministic
// sequence.
var NewFunc = func() string { return uuid.New().String() }

// New returns the next identifier from NewFunc.
func New() string { return NewFunc() }
