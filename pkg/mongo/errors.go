package mongo

import "errors"

var (
	// ErrFailedToConnect is returned when all connection attempts are exhausted.
	ErrFailedToConnect = errors.New("failed to connect to mongo")

	// ErrHealthcheckFailed wraps ping failures from the health check.
	ErrHealthcheckFailed = errors.New("mongo healthcheck failed")
)
