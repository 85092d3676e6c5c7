package store

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/ssargent/recstore/pkg/codec"
	"github.com/ssargent/recstore/pkg/metrics"
	"go.uber.org/zap"
)

const textStoreName = "names"

// TextStore keeps null-terminated text records back to back in one arena.
// There is no side index: counting, lookup and removal scan from offset 0.
// A TextStore is not safe for concurrent use.
type TextStore struct {
	arena   *Buffer
	codec   *codec.TextCodec
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewTextStore creates an empty text store
func NewTextStore(opts Options) *TextStore {
	opts = opts.withDefaults()
	return &TextStore{
		arena:   NewBuffer(textStoreName, opts),
		codec:   codec.NewTextCodec(),
		logger:  opts.Logger.With(zap.String("store", textStoreName)),
		metrics: opts.Metrics,
	}
}

// LoadFromFile appends every line of path as a record, in file order.
//
// Line terminators are stripped and all other bytes are kept verbatim. If the
// arena cannot grow, the error is returned and the store is left empty: every
// record loaded so far, including records from earlier calls, is discarded.
// Any other failure keeps the records appended before it.
func (s *TextStore) LoadFromFile(path string) (err error) {
	start := time.Now()
	defer func() {
		s.metrics.RecordOperation(textStoreName, "load", err == nil, time.Since(start))
	}()

	reader, openErr := NewLineReader(FileReaderConfig{FilePath: path})
	if openErr != nil {
		s.metrics.RecordFailure(textStoreName, KindFileOpen.String())
		return &StoreError{Kind: KindFileOpen, Op: "load", Path: path, Err: openErr}
	}
	defer reader.Close()

	loaded := 0
	for {
		line, readErr := reader.ReadLine()
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return fmt.Errorf("load %s: line %d: %w", path, reader.Line()+1, readErr)
		}

		if appendErr := s.Append(line); appendErr != nil {
			var se *StoreError
			if errors.As(appendErr, &se) {
				se.Op = "load"
				se.Path = path
				if se.Kind == KindInvalidRecord {
					se.Err = fmt.Errorf("line %d: %w", reader.Line(), se.Err)
				}
			}
			return appendErr
		}
		loaded++
	}

	s.logger.Debug("names loaded",
		zap.String("path", path),
		zap.Int("records", loaded),
		zap.String("size", humanize.IBytes(uint64(s.arena.Len()))))
	return nil
}

// Append stores rec after the last record. rec must not contain a zero byte.
func (s *TextStore) Append(rec []byte) error {
	if err := codec.ValidText(rec); err != nil {
		s.metrics.RecordFailure(textStoreName, KindInvalidRecord.String())
		return &StoreError{Kind: KindInvalidRecord, Op: "append", Err: err}
	}

	window, err := s.arena.Extend(s.codec.Size(rec))
	if err != nil {
		return err
	}
	s.codec.Put(window, rec)
	s.metrics.RecordAppended(textStoreName)
	return nil
}

// Count returns the number of records. It scans the whole arena.
func (s *TextStore) Count() int {
	buf := s.arena.Bytes()
	count := 0
	for _, next, ok := s.codec.Next(buf, 0); ok; _, next, ok = s.codec.Next(buf, next) {
		count++
	}
	return count
}

// locate returns the offset of record index and its size including the terminator
func (s *TextStore) locate(index int) (off, size int, ok bool) {
	if index < 0 {
		return 0, 0, false
	}
	buf := s.arena.Bytes()
	i := 0
	for rec, next, found := s.codec.Next(buf, 0); found; rec, next, found = s.codec.Next(buf, next) {
		if i == index {
			return next - len(rec) - 1, s.codec.Size(rec), true
		}
		i++
	}
	return 0, 0, false
}

// At returns record index
func (s *TextStore) At(index int) (string, error) {
	off, size, ok := s.locate(index)
	if !ok {
		return "", &StoreError{Kind: KindIndexOutOfRange, Op: "get", Index: index}
	}
	return string(s.arena.Bytes()[off : off+size-1]), nil
}

// RemoveAt deletes record index, shifting every later record left
func (s *TextStore) RemoveAt(index int) error {
	off, size, ok := s.locate(index)
	if !ok {
		return &StoreError{Kind: KindIndexOutOfRange, Op: "remove", Index: index}
	}
	s.arena.Remove(off, size)
	s.metrics.RecordRemoved(textStoreName)
	return nil
}

// Clear releases the arena. Clearing an empty store is a no-op.
func (s *TextStore) Clear() {
	s.arena.Release()
}

// Len returns the number of arena bytes in use, terminators included
func (s *TextStore) Len() int {
	return s.arena.Len()
}

// Records returns an iterator over the records in insertion order. Each call
// starts a fresh scan from the first record.
func (s *TextStore) Records() RecordIterator {
	return &textIterator{store: s}
}

// PrintAll writes each record on its own line to w
func (s *TextStore) PrintAll(w io.Writer) error {
	if s.arena.Len() == 0 {
		s.logger.Warn("no names stored")
		return nil
	}

	bw := bufio.NewWriter(w)
	for it := s.Records(); it.Next(); {
		if _, err := bw.WriteString(it.Record()); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// SaveToFile writes the records to path, one per line, replacing its contents
func (s *TextStore) SaveToFile(path string) (err error) {
	start := time.Now()
	defer func() {
		s.metrics.RecordOperation(textStoreName, "save", err == nil, time.Since(start))
	}()

	writer, openErr := NewLineWriter(FileWriterConfig{FilePath: path})
	if openErr != nil {
		s.metrics.RecordFailure(textStoreName, KindFileOpen.String())
		return &StoreError{Kind: KindFileOpen, Op: "save", Path: path, Err: openErr}
	}

	for it := s.Records(); it.Next(); {
		if err := writer.WriteString(it.Record()); err != nil {
			_ = writer.Close()
			return fmt.Errorf("save %s: %w", path, err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}

	s.logger.Debug("names saved", zap.String("path", path), zap.Int("records", writer.Lines()))
	return nil
}

// textIterator walks the arena by offset, so it never holds a slice across
// store calls
type textIterator struct {
	store  *TextStore
	offset int
	record string
}

func (it *textIterator) Next() bool {
	rec, next, ok := it.store.codec.Next(it.store.arena.Bytes(), it.offset)
	if !ok {
		return false
	}
	it.record = string(rec)
	it.offset = next
	return true
}

func (it *textIterator) Record() string {
	return it.record
}
