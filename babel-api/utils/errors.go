package utils

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyAddress   = errors.New("address is empty")
	ErrInvalidAddress = errors.New("invalid hex address")
	ErrInvalidTokenID = errors.New("token id must be an unsigned 256-bit integer")
	ErrInvalidHash    = errors.New("invalid 32-byte hex hash")
	ErrEmptyURIList   = errors.New("metadata uri list is empty")
)

func TypedErr(e interface{}) error {
	switch t := e.(type) {
	case error:
		return t
	case string:
		if t == "" {
			return nil
		}
		return errors.New(t)
	default:
		return nil
	}
}

func WrapError(mainErr, subErr interface{}) error {
	main := TypedErr(mainErr)
	sub := TypedErr(subErr)

	switch {
	case main == nil && sub == nil:
		return nil
	case main == nil:
		return sub
	case sub == nil:
		return main
	default:
		return fmt.Errorf("%w: %v", main, sub)
	}
}
