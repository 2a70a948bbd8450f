package ledger

import "errors"

// Sentinel errors returned by the ledger and its collaborators. Handlers map
// these to HTTP statuses with errors.Is; everything else is a server error.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrUnauthorized    = errors.New("unauthorized")
)
