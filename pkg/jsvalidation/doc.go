// Package jsvalidation compiles server side validation rules into data a
// browser validation engine can execute.
//
// The input is a host validator from pkg/validator. ValidatorHandler walks
// its attributes in declaration order, skips attributes carrying the
// NoJsValidation rule, converts each rule through the RuleParser recipe
// table and attaches the message the server would produce:
//
//	v, _ := validator.New(nil, map[string]any{
//		"age":   "required|integer|min:18",
//		"email": "required|email|unique:users,email",
//	})
//	h, _ := jsvalidation.NewValidatorHandler(v)
//	data, err := h.ValidationData(true)
//
// data encodes as
//
//	{"rules": {"age": {"laravelValidation": [
//	    ["required", [], "The age field is required.", true],
//	    ["integer", [], "The age must be an integer.", false],
//	    ["min", ["18"], "The age must be at least 18.", false]]},
//	  "email": {...}},
//	 "messages": {}}
//
// Rules the browser cannot decide (unique, exists, active_url and host
// extensions) become laravelValidationRemote entries and are only emitted
// when remote output is requested. Rules registered through Sometimes are
// always emitted as remote entries. Rules without a recipe are skipped.
//
// Factory and JavascriptValidator add page level settings and render the
// bootstrap script as a templ component. RemoteValidator and
// RemoteMiddleware answer the round trips of remote rules.
package jsvalidation
