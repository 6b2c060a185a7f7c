package lrucache

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dmitrymomot/lrucache/core/export"
	"github.com/dmitrymomot/lrucache/core/handler"
	"github.com/dmitrymomot/lrucache/core/logger"
	"github.com/dmitrymomot/lrucache/core/response"
	"github.com/dmitrymomot/lrucache/core/store"
	"github.com/dmitrymomot/lrucache/pkg/broadcast"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	wsWriteWait = 5 * time.Second

	// Dashboards never send data frames, only control frames.
	wsReadBuffer  = 256
	wsWriteBuffer = 4096
)

type dashboardData struct {
	Title     string
	Capacity  int
	Entries   []store.Entry
	RefreshMS int64
}

func parseDashboard() (*template.Template, error) {
	return template.ParseFS(templatesFS, "templates/dashboard.html")
}

func (app *App) index(*http.Request) handler.Response {
	return response.Template(app.dashboard, dashboardData{
		Title:     app.config.AppName,
		Capacity:  app.store.Capacity(),
		Entries:   app.store.Snapshot(),
		RefreshMS: app.refresh().Milliseconds(),
	})
}

func (app *App) refresh() time.Duration {
	if app.config.DashboardRefresh <= 0 {
		return 3 * time.Second
	}
	return app.config.DashboardRefresh
}

// live pushes the JSON snapshot on connect, after every store change when a
// broadcaster is configured, and once per refresh interval until the client
// goes away or the server shuts down.
func (app *App) live(*http.Request) handler.Response {
	return response.WebSocket(app.pushSnapshots,
		response.WithWSHandshakeTimeout(wsWriteWait),
		response.WithWSReadBuffer(wsReadBuffer),
		response.WithWSWriteBuffer(wsWriteBuffer),
		response.WithWSErrorHandler(func(ctx context.Context, err error) {
			app.logger.DebugContext(ctx, "websocket closed", logger.Component("dashboard"), logger.Error(err))
		}),
	)
}

func (app *App) pushSnapshots(ctx context.Context, conn *websocket.Conn) error {
	// The client never sends data; reading is how a close frame or a dropped
	// connection is noticed.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(app.refresh())
	defer ticker.Stop()

	// A nil channel never fires, so without a broadcaster only the ticker drives updates.
	var changed <-chan broadcast.Message[store.Change]
	if app.changes != nil {
		sub := app.changes.Subscribe(ctx)
		defer sub.Close()
		changed = sub.Receive(ctx)
	}

	for {
		if err := app.writeSnapshot(conn); err != nil {
			return err
		}

		select {
		case <-app.shutdown:
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(wsWriteWait))
			return nil
		case <-ctx.Done():
			return nil
		case <-gone:
			return nil
		case _, ok := <-changed:
			if !ok {
				changed = nil
			}
		case <-ticker.C:
		}
	}
}

func (app *App) writeSnapshot(conn *websocket.Conn) error {
	b, err := export.MarshalJSON(app.store.Snapshot())
	if err != nil {
		return err
	}
	if err := conn.SetWriteDeadline(time.Now().Add(wsWriteWait)); err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, b)
}
