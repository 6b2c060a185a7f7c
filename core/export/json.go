package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dmitrymomot/lrucache/core/store"
)

// ContentTypeJSON is the media type of WriteJSON output.
const ContentTypeJSON = "application/json; charset=utf-8"

// MarshalJSON encodes entries as a JSON array. A nil snapshot encodes as [].
func MarshalJSON(entries []store.Entry) ([]byte, error) {
	if entries == nil {
		entries = []store.Entry{}
	}
	b, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return b, nil
}

// WriteJSON writes entries to w as a JSON array.
func WriteJSON(w io.Writer, entries []store.Entry) error {
	b, err := MarshalJSON(entries)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// ReadJSON decodes a JSON array produced by WriteJSON.
func ReadJSON(r io.Reader) ([]store.Entry, error) {
	var entries []store.Entry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return entries, nil
}
