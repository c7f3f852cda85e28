package markov

import "errors"

var (
	// ErrInvalidOrder is returned by New when the order is not positive.
	ErrInvalidOrder = errors.New("markov: order must be positive")

	// ErrTooShort is returned by Fit when the text holds fewer than 2*order
	// runes. The model is left unchanged.
	ErrTooShort = errors.New("markov: text shorter than 2*order symbols")

	// ErrEmptyModel is returned by Generate when the model has never been
	// trained.
	ErrEmptyModel = errors.New("markov: model has no windows")

	// ErrInvalidLength is returned by Generate for a negative length.
	ErrInvalidLength = errors.New("markov: length must not be negative")

	// ErrUnknownWindow is returned by WindowIndex.Window for an id that was
	// never assigned. Seeing it from inside the model is a bug.
	ErrUnknownWindow = errors.New("markov: unknown window id")
)
