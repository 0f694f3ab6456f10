package common

import "errors"

var (
	// Session errors.
	ErrNotLoggedIn = errors.New("not logged in")
	ErrNoHome      = errors.New("no home joined")

	// Navigator errors.
	ErrUnknownScreen   = errors.New("unknown screen")
	ErrGestureNotArmed = errors.New("gesture not armed on current screen")

	// Page lifecycle errors.
	ErrUnmounted    = errors.New("page unmounted")
	ErrUnknownRoute = errors.New("unknown route")
	ErrRedirectLoop = errors.New("too many redirects")
)
