package jsvalidation

import "errors"

var (
	// ErrNilValidator is returned when a nil host validator is supplied.
	ErrNilValidator = errors.New("jsvalidation: validator is nil")

	// ErrConversionFailed wraps host failures while compiling rules.
	ErrConversionFailed = errors.New("jsvalidation: rule conversion failed")

	// ErrUnknownAttribute is returned when remote validation targets an attribute without rules.
	ErrUnknownAttribute = errors.New("jsvalidation: attribute has no rules")

	// ErrRenderFailed is returned when the validation script cannot be rendered.
	ErrRenderFailed = errors.New("jsvalidation: failed to render script")
)
