package game

import "errors"

// Action errors. An action that fails leaves the table unchanged.
var (
	ErrHandComplete      = errors.New("no hand in progress")
	ErrOutOfTurn         = errors.New("not this seat's turn")
	ErrUnknownAction     = errors.New("unknown action")
	ErrIllegalCheck      = errors.New("illegal check: facing a bet")
	ErrNothingToCall     = errors.New("nothing to call")
	ErrSizeTooSmall      = errors.New("size too small")
	ErrBelowCurrentBet   = errors.New("size must be above the current bet")
	ErrInsufficientStack = errors.New("not enough chips")
)
