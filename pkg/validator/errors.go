package validator

import "errors"

var (
	// ErrValidationFailed is returned when validation fails but no specific error is provided.
	ErrValidationFailed = errors.New("validation failed")

	// ErrEmptyRule is returned when a rule string is blank.
	ErrEmptyRule = errors.New("empty validation rule")

	// ErrInvalidRule is returned when a rule string cannot be parsed.
	ErrInvalidRule = errors.New("invalid validation rule")

	// ErrUnsupportedRuleSpec is returned when a rule specification has an unsupported type.
	ErrUnsupportedRuleSpec = errors.New("unsupported rule specification")

	// ErrInvalidParameters is returned when a rule is missing required parameters.
	ErrInvalidParameters = errors.New("invalid rule parameters")

	// ErrNoPresenceVerifier is returned when unique or exists runs without a verifier.
	ErrNoPresenceVerifier = errors.New("presence verifier is not configured")

	// ErrPresenceCheckFailed is returned when the presence verifier fails.
	ErrPresenceCheckFailed = errors.New("presence check failed")
)
