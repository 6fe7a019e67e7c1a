// Package cache provides a small thread-safe LRU used to keep compiled
// client validation data between requests.
//
//	views := cache.NewLRU[string, jsvalidation.ViewData](128)
//	data, err := views.GetOrCompute(formName, func() (jsvalidation.ViewData, error) {
//		return compile(formName)
//	})
//
// Failed computations are not stored.
package cache
