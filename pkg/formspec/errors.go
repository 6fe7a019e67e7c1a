package formspec

import "errors"

var (
	ErrFormNotFound      = errors.New("form not found")
	ErrInvalidDefinition = errors.New("invalid form definition")
	ErrReadFailed        = errors.New("failed to read form definitions")
	ErrDuplicateField    = errors.New("attribute declared twice")
)
