// Package sanitizer normalises submitted form values before validation.
//
// TrimStrings removes surrounding whitespace from every value, so "  " is
// treated as an empty field by required and the size rules. Password fields
// are left untouched by default.
//
//	r.Use(sanitizer.Middleware())
package sanitizer
