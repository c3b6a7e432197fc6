package apperror

import "errors"

var (
	ErrUnknownDisplay = errors.New("unknown display mode")
	ErrAddrNotFound   = errors.New("redis address string is empty")
)
