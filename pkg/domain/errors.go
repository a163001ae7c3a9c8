package domain

import "errors"

// ErrCacheMiss is returned by a ResultCache when no entry exists for a key.
var ErrCacheMiss = errors.New("cache miss")
