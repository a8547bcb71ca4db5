package middleware

import "net/http"

// Middleware decorates an http.Handler with request pre/post processing.
type Middleware func(http.Handler) http.Handler

// Chain folds several middleware into one. The first argument ends up
// outermost, so it sees the request first and the response last.
func Chain(mws ...Middleware) Middleware {
	return func(h http.Handler) http.Handler {
		for i := len(mws) - 1; i >= 0; i-- {
			h = mws[i](h)
		}
		return h
	}
}
