package lrucache

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"github.com/dmitrymomot/lrucache/core/export"
	"github.com/dmitrymomot/lrucache/core/handler"
	"github.com/dmitrymomot/lrucache/core/response"
	"github.com/dmitrymomot/lrucache/core/store"
)

var (
	errInvalidSet = response.ErrBadRequest.WithMessage("Invalid /set request")
	errInvalidGet = response.ErrBadRequest.WithMessage("Invalid /get request")
)

// setRequest is the JSON body accepted by POST /set.
type setRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (app *App) snapshotJSON(*http.Request) handler.Response {
	b, err := export.MarshalJSON(app.store.Snapshot())
	if err != nil {
		return response.Error(err)
	}
	return response.Bytes(b, export.ContentTypeJSON)
}

func (app *App) snapshotArrow(*http.Request) handler.Response {
	var buf bytes.Buffer
	if err := export.WriteArrow(&buf, app.store.Snapshot()); err != nil {
		return response.Error(err)
	}
	return response.Bytes(buf.Bytes(), export.ContentTypeArrow)
}

// setQuery handles GET /set?key=&val=.
func (app *App) setQuery(r *http.Request) handler.Response {
	q := r.URL.Query()
	key, val := q.Get("key"), q.Get("val")
	if err := app.put(key, val); err != nil {
		return response.Error(err)
	}
	return response.String("Set " + key + "=" + val + "\n")
}

// setBody handles POST /set with a JSON or form-encoded body.
func (app *App) setBody(r *http.Request) handler.Response {
	var req setRequest

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/json":
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return response.Error(bodyError(err))
		}
	case "application/x-www-form-urlencoded", "multipart/form-data":
		var err error
		if mediaType == "multipart/form-data" {
			err = r.ParseMultipartForm(app.config.MaxBodySize)
		} else {
			err = r.ParseForm()
		}
		if err != nil {
			return response.Error(bodyError(err))
		}
		req.Key = r.PostForm.Get("key")
		req.Value = r.PostForm.Get("value")
		if req.Value == "" {
			req.Value = r.PostForm.Get("val")
		}
	default:
		return response.Error(response.ErrUnsupportedMediaType)
	}

	if err := app.put(req.Key, req.Value); err != nil {
		return response.Error(err)
	}
	return response.NoContent()
}

func (app *App) get(r *http.Request) handler.Response {
	key := r.URL.Query().Get("key")
	v, err := app.store.Get(key)
	switch {
	case err == nil:
		return response.String(key + "=" + v + "\n")
	case errors.Is(err, store.ErrNotFound):
		return response.StringWithStatus(key+"=(null)\n", http.StatusNotFound)
	case errors.Is(err, store.ErrInvalidInput):
		return response.Error(errInvalidGet)
	default:
		return response.Error(storeError(err))
	}
}

func (app *App) put(key, value string) error {
	err := app.store.Put(key, value)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrInvalidInput):
		return errInvalidSet
	default:
		return storeError(err)
	}
}

// storeError maps store failures that are not caused by the request.
func storeError(err error) error {
	if errors.Is(err, store.ErrClosed) {
		return response.ErrServiceUnavailable.WithError(err)
	}
	return err
}

// bodyError keeps a 413 from the body limit and reports anything else as a
// malformed request.
func bodyError(err error) error {
	var sc interface{ StatusCode() int }
	if errors.As(err, &sc) && sc.StatusCode() == http.StatusRequestEntityTooLarge {
		return response.ErrRequestEntityTooLarge.WithError(err)
	}
	return errInvalidSet.WithError(err)
}
