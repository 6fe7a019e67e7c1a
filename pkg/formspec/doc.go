// Package formspec loads form definitions from YAML.
//
// A definition names the form, lists its attributes and rules in order, and
// may carry custom messages, attribute display names, conditional rules and
// client options:
//
//	forms:
//	  register:
//	    selector: "#register"
//	    rules:
//	      name: required|string|max:255
//	      email: [required, email, "unique:users,email"]
//	      password: required|min:8|confirmed
//	    messages:
//	      email.unique: This address is already registered.
//	    attributes:
//	      email: e-mail address
//	    sometimes:
//	      - attributes: [company]
//	        rules: required|max:100
//
// Rules keep the order they are written in, so the compiled client data is
// stable between runs. A Form builds host validators for incoming requests
// and JavascriptValidators for rendering.
package formspec
