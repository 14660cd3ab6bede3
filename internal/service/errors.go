package service

import "errors"

var (
	// ErrEmptyCart rejects checkout for a session with nothing in the cart.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password, so login failures do not reveal which accounts exist.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
