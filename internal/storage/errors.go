package storage

import "errors"

// ErrBatchNotFound is returned when a batch ID is not in the store.
var ErrBatchNotFound = errors.New("batch not found")
