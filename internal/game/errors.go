package game

import "errors"

var (
	ErrSessionNotFound     = errors.New("game session not found")
	ErrForbidden           = errors.New("user does not own this game session")
	ErrUpstreamUnavailable = errors.New("language model unavailable")
	ErrExtractionFailure   = errors.New("could not extract character name from reply")
	ErrSessionCompleted    = errors.New("game session already completed")
	ErrGameNotStarted      = errors.New("game session has not started")
	ErrGameAlreadyStarted  = errors.New("game session already started")
	ErrInvalidLevel        = errors.New("invalid level")
)

// IsDomainError reports whether err is one of the game's terminal outcomes.
// Anything else is an infrastructure failure (store, queue).
func IsDomainError(err error) bool {
	for _, target := range []error{
		ErrSessionNotFound,
		ErrForbidden,
		ErrUpstreamUnavailable,
		ErrSessionCompleted,
		ErrGameNotStarted,
		ErrGameAlreadyStarted,
		ErrInvalidLevel,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
