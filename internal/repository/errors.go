package repository

import "errors"

// ErrNotFound is a repository-specific sentinel error. It is returned when no
// credential is stored for a key, whichever backend holds it.
//
// The session layer treats it as "no credential" rather than as a failure,
// which keeps the driver's own not-found signals (`sql.ErrNoRows`, `redis.Nil`)
// out of the layers above.
var ErrNotFound = errors.New("repository: not found")
