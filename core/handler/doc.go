// Package handler defines the request processing types shared by the router,
// response and middleware packages.
//
// Handlers do not write to the http.ResponseWriter directly. They return a
// Response, a deferred rendering function, which the router executes. An error
// from the Response is passed to the router's ErrorHandler, so handlers can
// return typed errors and leave formatting to one place:
//
//	func getValue(s *store.Store) handler.HandlerFunc {
//		return func(r *http.Request) handler.Response {
//			v, err := s.Get(r.URL.Query().Get("key"))
//			if err != nil {
//				return response.Error(err)
//			}
//			return response.String(v)
//		}
//	}
//
// Middleware operates on plain http.Handler values so that any net/http
// middleware composes with the router.
package handler
