package api

import "errors"

// ErrUnavailable marks transport-level failures: the server could not be
// reached or returned something that is not an API envelope.
var ErrUnavailable = errors.New("server unavailable")
