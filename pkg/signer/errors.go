package signer

import "errors"

var (
	ErrEmptySecret      = errors.New("signer: secret must not be empty")
	ErrInvalidInput     = errors.New("signer: invalid input")
	ErrInvalidFormat    = errors.New("signer: invalid token format")
	ErrUnsupportedValue = errors.New("signer: payload value cannot be encoded")
	ErrBadEntropy       = errors.New("signer: entropy source returned invalid hex")
)
