package domain

import "errors"

var (
	ErrInvalidNumber    = errors.New("invalid number")
	ErrDivisionByZero   = errors.New("cannot divide by zero")
	ErrUnknownOperation = errors.New("unknown operation")
	ErrUnknownCommand   = errors.New("unknown command")
	ErrInvalidIndex     = errors.New("invalid history index")
	ErrPersistence      = errors.New("history persistence failed")
)
