package executor

import "errors"

var (
	ErrNilTask     = errors.New("task cannot be nil")
	ErrNotStarted  = errors.New("pool has not been started")
	ErrUnnamedPool = errors.New("pool name is required")
)
