package pg

import "errors"

var (
	ErrFailedToOpenDBConnection = errors.New("failed to open db connection")
	ErrFailedToParseDBConfig    = errors.New("failed to parse db config")
	ErrHealthcheckFailed        = errors.New("healthcheck failed, connection is not available")
	ErrTableNotAllowed          = errors.New("table not allowed for presence checks")
	ErrInvalidIdentifier        = errors.New("invalid table or column name")
)
