package externalApi

import "errors"

var (
	ErrNotFound         = errors.New("error not found")
	ErrRateLimited      = errors.New("error rate limited")
	ErrUnexpectedStatus = errors.New("error unexpected status")
)
