package export

import (
	"errors"
	"fmt"
	"io"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/dmitrymomot/lrucache/core/store"
)

// ContentTypeArrow is the media type of WriteArrow output.
const ContentTypeArrow = "application/vnd.apache.arrow.stream"

// ErrUnexpectedSchema is returned when an Arrow stream does not match SnapshotSchema.
var ErrUnexpectedSchema = errors.New("arrow stream does not match snapshot schema")

// SnapshotSchema returns the Arrow schema of an exported snapshot.
//
// Fields:
//   - rank: int64 - position in the recency order, 0 is most recently used
//   - key: string - cache key
//   - value: string - cache value
func SnapshotSchema() *arrow.Schema {
	return arrow.NewSchema(
		[]arrow.Field{
			{Name: "rank", Type: arrow.PrimitiveTypes.Int64},
			{Name: "key", Type: arrow.BinaryTypes.String},
			{Name: "value", Type: arrow.BinaryTypes.String},
		},
		nil,
	)
}

// ToRecord converts entries to a single Arrow record. The caller must Release it.
func ToRecord(mem memory.Allocator, entries []store.Entry) arrow.Record {
	if mem == nil {
		mem = memory.DefaultAllocator
	}

	builder := array.NewRecordBuilder(mem, SnapshotSchema())
	defer builder.Release()

	rankBuilder := builder.Field(0).(*array.Int64Builder)
	keyBuilder := builder.Field(1).(*array.StringBuilder)
	valueBuilder := builder.Field(2).(*array.StringBuilder)

	rankBuilder.Reserve(len(entries))
	keyBuilder.Reserve(len(entries))
	valueBuilder.Reserve(len(entries))

	for i, e := range entries {
		rankBuilder.Append(int64(i))
		keyBuilder.Append(e.Key)
		valueBuilder.Append(e.Value)
	}

	return builder.NewRecord()
}

// WriteArrow writes entries to w as an Arrow IPC stream with one record batch.
func WriteArrow(w io.Writer, entries []store.Entry) error {
	record := ToRecord(memory.DefaultAllocator, entries)
	defer record.Release()

	writer := ipc.NewWriter(w, ipc.WithSchema(record.Schema()))
	if err := writer.Write(record); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write record: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close writer: %w", err)
	}
	return nil
}

// ReadArrow decodes an Arrow IPC stream produced by WriteArrow. Rows are
// returned in rank order as written.
func ReadArrow(r io.Reader) ([]store.Entry, error) {
	reader, err := ipc.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create reader: %w", err)
	}
	defer reader.Release()

	if !reader.Schema().Equal(SnapshotSchema()) {
		return nil, ErrUnexpectedSchema
	}

	entries := []store.Entry{}
	for reader.Next() {
		record := reader.Record()
		keys := record.Column(1).(*array.String)
		values := record.Column(2).(*array.String)
		for i := 0; i < int(record.NumRows()); i++ {
			entries = append(entries, store.Entry{Key: keys.Value(i), Value: values.Value(i)})
		}
	}
	if err := reader.Err(); err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}
	return entries, nil
}
