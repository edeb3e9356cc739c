package redis

import "errors"

// Errors returned by Open and Healthcheck. Open joins ErrConnectionFailed
// with the last ping error so both can be matched with errors.Is.
var (
	ErrEmptyConnectionURL = errors.New("redis: empty connection URL")
	ErrFailedToParseURL   = errors.New("redis: failed to parse connection URL")
	ErrConnectionFailed   = errors.New("redis: failed to establish connection")
	ErrHealthcheckFailed  = errors.New("redis: healthcheck failed")
)
