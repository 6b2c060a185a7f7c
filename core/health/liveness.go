package health

import (
	"net/http"

	"github.com/dmitrymomot/lrucache/core/handler"
	"github.com/dmitrymomot/lrucache/core/response"
)

// Liveness indicates if the service process is running.
// Always returns "ALIVE" with 200 OK. No dependency checks.
func Liveness(*http.Request) handler.Response {
	return response.String("ALIVE")
}
