package domain

import "go.trai.ch/zerr"

// ErrMalformedEvent is returned when an incoming event does not carry either
// two or four positional arguments.
var ErrMalformedEvent = zerr.New("malformed build event")
