// Package response provides handler.Response constructors for text, HTML,
// JSON, html/template and WebSocket responses, together with the HTTPError
// type and the error handlers that turn returned errors into responses.
//
// Every constructor returns a handler.Response, a deferred rendering function
// executed by the router:
//
//	func getHandler(s *store.Store) handler.HandlerFunc {
//		return func(r *http.Request) handler.Response {
//			key := r.URL.Query().Get("key")
//			v, err := s.Get(key)
//			if errors.Is(err, store.ErrNotFound) {
//				return response.StringWithStatus(key+"=(null)\n", http.StatusNotFound)
//			}
//			if err != nil {
//				return response.Error(err)
//			}
//			return response.String(key + "=" + v + "\n")
//		}
//	}
//
// # Errors
//
// Return response.Error(err) to hand an error to the router's error handler.
// ErrorHandler renders plain text and JSONErrorHandler renders an HTTPError
// as JSON. Both resolve the status from an HTTPError, then from any error in
// the chain that implements StatusCode() int, and fall back to 500.
//
//	return response.Error(response.ErrBadRequest.WithMessage("Invalid /set request"))
//
// # Templates
//
// Template and TemplateName buffer the output before writing, so a template
// execution error never leaves a half-written page.
//
// # WebSocket
//
// WebSocket upgrades the connection with gorilla/websocket and runs the given
// handler until it returns:
//
//	response.WebSocket(func(ctx context.Context, conn *websocket.Conn) error {
//		return conn.WriteMessage(websocket.TextMessage, []byte("hello"))
//	}, response.WithWSHandshakeTimeout(5*time.Second))
package response
