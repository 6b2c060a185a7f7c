// Package export renders store snapshots for external consumers.
//
// Two encodings are provided, both preserving the MRU-to-LRU order of the
// snapshot:
//
//   - JSON: an array of {"key","value"} objects. Keys and values are escaped
//     by encoding/json, so quotes, backslashes and control characters never
//     break the document.
//   - Arrow IPC stream: one record batch with rank, key and value columns,
//     suitable for loading a snapshot into dataframe tooling.
//
// Usage:
//
//	snap := s.Snapshot()
//	if err := export.WriteJSON(w, snap); err != nil {
//		return err
//	}
//
//	if err := export.WriteArrow(w, snap); err != nil {
//		return err
//	}
package export
