package heygen

import "errors"

var (
	ErrUnavailable     = errors.New("heygen api unavailable")
	ErrInvalidResponse = errors.New("invalid response from heygen")
	ErrNoVideoID       = errors.New("no video id in heygen response")
)
