// Package handler serves validated forms over HTTP.
//
// Handlers are typed functions wrapped into http.HandlerFunc:
//
//	func submit(ctx handler.Context, req handler.FormRequest) handler.Response {
//		...
//		return handler.NoContent()
//	}
//
//	r.Post("/forms/{form}", handler.Wrap(submit,
//		handler.WithBinders[handler.Context, handler.FormRequest](
//			handler.BindForm(),
//			handler.BindFormName(chi.URLParam, "form"),
//		),
//	))
//
// Responses render themselves. JSON wraps data in a {"data": ...} envelope
// unless WithoutEnvelope is given; Templ renders a component as HTML, or as a
// datastar element patch when the request comes from datastar; Signals
// patches datastar signals.
//
// # Form endpoints
//
// FormEndpoints exposes a FormProvider (see pkg/formspec) as four handlers:
// compiled validation data as JSON, the page script, remote validation of a
// single field and full validation of a submission. Failed submissions turn
// into ValidationError, rendered as 422 by JSONError and by the error handler.
//
// # Errors
//
// HTTPError carries a status code and a machine readable key. NewErrorHandler
// logs errors with the request id and answers JSON, datastar signals or an
// HTML error page depending on the request.
package handler
