package domain

import "github.com/pkg/errors"

// ErrNotFound is returned by every store when the requested record is absent.
var ErrNotFound = errors.New("not found")
