package idgen

import "github.com/google/uuid"

// NewFunc produces globally unique identifiers; a variable so tests can stub
// it with a predictable sequence.
var NewFunc = func() string { return uuid.New().String() }

// New returns a new globally unique identifier as a string.
func New() string { return NewFunc() }
