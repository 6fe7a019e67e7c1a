// Package clientip resolves the address of the visitor behind proxies.
//
// Middleware stores the address in the request context so the rate limiter
// and the request logger can use it:
//
//	r.Use(clientip.Middleware())
//	ip := clientip.FromContext(r.Context())
//
// Forwarding headers are only as trustworthy as the proxy in front of the
// service. Pass WithHeaders to list the ones the deployment actually sets.
package clientip
