package vlog

import "errors"

// ErrNotFound indicates that no vlog exists with the requested id.
var ErrNotFound = errors.New("vlog not found")
