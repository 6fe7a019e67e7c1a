// Package validator validates form data against Laravel-style rule strings.
//
// Rules are declared per attribute as a pipe separated string, a []string or
// a mixed []any:
//
//	v, err := validator.New(r.PostForm, map[string]any{
//		"email": "required|email|unique:users,email",
//		"age":   []string{"required", "integer", "min:18"},
//	}, validator.WithPresenceVerifier(verifier))
//	if err != nil {
//		return err
//	}
//	if err := v.Validate(ctx); err != nil {
//		if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//			// verrs.Bag() -> {"age": ["The age must be at least 18."]}
//		}
//		return err
//	}
//
// Besides validating, the Validator exposes the metadata a client side
// compiler needs: the rule set in declaration order (Rules, Attributes),
// rule parsing (ParseRule), implicit rule classification (IsImplicit),
// membership tests (HasRule), conditional rules (Sometimes) and message
// resolution (Message).
//
// # Messages
//
// Default messages are embedded English YAML loaded through pkg/i18n.
// Templates use %{attribute}, %{Attribute} and %{ATTRIBUTE} plus
// rule-specific placeholders such as %{min} or %{values}. Size rules (min,
// max, between, size, gt, gte, lt, lte) have numeric, file, array and
// string variants chosen from the other rules of the attribute.
//
// # Flow rules
//
// bail stops at the first failure of an attribute, sometimes skips an
// attribute that is not present, and nullable (the default for
// non-implicit rules) skips empty values.
//
// # Database rules
//
// unique and exists call a PresenceVerifier; see pkg/pg, pkg/redis and
// pkg/mongo for implementations. Custom rules registered with WithExtension
// also run on the server only.
package validator
