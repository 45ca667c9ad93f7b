package callsession

import (
	"context"
	"errors"
	"net"
)

// Setup failures are classified into a small taxonomy the hosting UI can
// render. Transports and device sources wrap these sentinels with %w; no
// message-substring matching happens anywhere.
var (
	ErrConfiguration = errors.New("call configuration invalid")
	ErrPermission    = errors.New("media device access denied")
	ErrToken         = errors.New("token invalid or expired")
	ErrNetwork       = errors.New("network unreachable")
	ErrTimeout       = errors.New("call setup timed out")
	ErrUnknown       = errors.New("call failed")
)

// Classify maps an arbitrary setup error onto the taxonomy.
// context.Canceled is passed through untouched: it means the caller ended
// the session mid-setup, which is not a failure to surface.
func Classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled):
		return context.Canceled
	case errors.Is(err, ErrConfiguration),
		errors.Is(err, ErrPermission),
		errors.Is(err, ErrToken),
		errors.Is(err, ErrNetwork),
		errors.Is(err, ErrTimeout):
		return err
	case errors.Is(err, context.DeadlineExceeded):
		return ErrTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return errors.Join(ErrNetwork, err)
	}
	return errors.Join(ErrUnknown, err)
}

// Message returns the user-facing text for a classified error.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrConfiguration):
		return "Call is misconfigured. Please reload the page and try again."
	case errors.Is(err, ErrPermission):
		return "Microphone or camera access was blocked. Allow access and try again."
	case errors.Is(err, ErrToken):
		return "Your call credential has expired. Please rejoin the call."
	case errors.Is(err, ErrNetwork):
		return "Could not reach the call server. Check your connection and try again."
	case errors.Is(err, ErrTimeout):
		return "The call took too long to connect. Please try again."
	default:
		return "The call could not be started. Please try again."
	}
}
