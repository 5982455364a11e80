// Package process cleans up browser process trees left behind by a session.
package process

import "errors"

// ErrInvalidPID is returned for PIDs that would target the caller's own
// process group.
var ErrInvalidPID = errors.New("invalid pid")
