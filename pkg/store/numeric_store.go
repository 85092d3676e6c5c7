package store

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/ssargent/recstore/pkg/codec"
	"github.com/ssargent/recstore/pkg/metrics"
	"go.uber.org/zap"
)

const numericStoreName = "numbers"

// NumericStore keeps 32-bit signed integers in fixed-width slots of one arena.
// Arithmetic wraps on overflow, as 32-bit two's complement.
// A NumericStore is not safe for concurrent use.
type NumericStore struct {
	arena   *Buffer
	codec   *codec.IntCodec
	count   int
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewNumericStore creates an empty numeric store
func NewNumericStore(opts Options) *NumericStore {
	opts = opts.withDefaults()
	return &NumericStore{
		arena:   NewBuffer(numericStoreName, opts),
		codec:   codec.NewIntCodec(),
		logger:  opts.Logger.With(zap.String("store", numericStoreName)),
		metrics: opts.Metrics,
	}
}

// LoadFromFile replaces the contents of the store with the integers in path.
//
// The file is opened first; if that fails the store is untouched. Otherwise
// the previous contents are released before reading. Each integer is the
// leading sign and digit run of a word; reading stops at the first token that
// does not start with one, or that overflows 32 bits. If the arena cannot grow
// the store is left empty.
func (s *NumericStore) LoadFromFile(path string) (err error) {
	start := time.Now()
	defer func() {
		s.metrics.RecordOperation(numericStoreName, "load", err == nil, time.Since(start))
	}()

	reader, openErr := NewIntReader(FileReaderConfig{FilePath: path})
	if openErr != nil {
		s.metrics.RecordFailure(numericStoreName, KindFileOpen.String())
		return &StoreError{Kind: KindFileOpen, Op: "load", Path: path, Err: openErr}
	}
	defer reader.Close()

	s.Clear()

	for {
		v, readErr := reader.ReadInt()
		if errors.Is(readErr, io.EOF) {
			break
		}
		var numErr *strconv.NumError
		if errors.As(readErr, &numErr) {
			s.logger.Warn("stopped reading at non-integer token",
				zap.String("path", path),
				zap.String("token", reader.Token()),
				zap.Int("records", s.count))
			break
		}
		if readErr != nil {
			return fmt.Errorf("load %s: %w", path, readErr)
		}

		if appendErr := s.Append(v); appendErr != nil {
			var se *StoreError
			if errors.As(appendErr, &se) {
				se.Op = "load"
				se.Path = path
			}
			return appendErr
		}
	}

	s.logger.Debug("numbers loaded",
		zap.String("path", path),
		zap.Int("records", s.count),
		zap.String("size", humanize.IBytes(uint64(s.arena.Len()))))
	return nil
}

// Append stores v in a new last slot, growing the arena to (Count()+1)*4 bytes
func (s *NumericStore) Append(v int32) error {
	window, err := s.arena.Extend(codec.IntWidth)
	if err != nil {
		s.count = 0
		return err
	}
	s.codec.Put(window, 0, v)
	s.count++
	s.metrics.RecordAppended(numericStoreName)
	return nil
}

// Count returns the number of stored integers
func (s *NumericStore) Count() int {
	return s.count
}

// Len returns the number of arena bytes in use, always Count()*4
func (s *NumericStore) Len() int {
	return s.arena.Len()
}

// At returns integer i
func (s *NumericStore) At(i int) (int32, error) {
	if i < 0 || i >= s.count {
		return 0, &StoreError{Kind: KindIndexOutOfRange, Op: "get", Index: i}
	}
	return s.codec.At(s.arena.Bytes(), i), nil
}

// Values returns a copy of the stored integers in index order
func (s *NumericStore) Values() []int32 {
	buf := s.arena.Bytes()
	values := make([]int32, s.count)
	for i := range values {
		values[i] = s.codec.At(buf, i)
	}
	return values
}

// Clear releases the arena. Clearing an empty store is a no-op.
func (s *NumericStore) Clear() {
	s.arena.Release()
	s.count = 0
}

// Sum adds every integer in index order. An empty store sums to 0.
func (s *NumericStore) Sum() int32 {
	buf := s.arena.Bytes()
	var sum int32
	for i := 0; i < s.count; i++ {
		sum += s.codec.At(buf, i)
	}
	return sum
}

// Difference subtracts every later integer from the first
func (s *NumericStore) Difference() (int32, error) {
	if s.count == 0 {
		return 0, &StoreError{Kind: KindEmptyStore, Op: "subtraction"}
	}
	buf := s.arena.Bytes()
	result := s.codec.At(buf, 0)
	for i := 1; i < s.count; i++ {
		result -= s.codec.At(buf, i)
	}
	return result, nil
}

// Product multiplies every integer, starting from 1
func (s *NumericStore) Product() (int32, error) {
	if s.count == 0 {
		return 0, &StoreError{Kind: KindEmptyStore, Op: "multiplication"}
	}
	buf := s.arena.Bytes()
	var product int32 = 1
	for i := 0; i < s.count; i++ {
		product *= s.codec.At(buf, i)
	}
	return product, nil
}

// Quotient divides the first integer by every later one in floating point.
// It stops at the first zero divisor and reports its index.
func (s *NumericStore) Quotient() (float64, error) {
	if s.count == 0 {
		return 0, &StoreError{Kind: KindEmptyStore, Op: "division"}
	}
	buf := s.arena.Bytes()
	result := float64(s.codec.At(buf, 0))
	for i := 1; i < s.count; i++ {
		divisor := s.codec.At(buf, i)
		if divisor == 0 {
			s.logger.Warn("division by zero", zap.Int("index", i))
			return 0, &StoreError{Kind: KindDivisionByZero, Op: "division", Index: i}
		}
		result /= float64(divisor)
	}
	return result, nil
}

// PrintAll writes "Stored numbers: " followed by every integer to w
func (s *NumericStore) PrintAll(w io.Writer) error {
	if s.count == 0 {
		s.logger.Warn("no numbers stored")
		return nil
	}

	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString("Stored numbers: " + s.joined()); err != nil {
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}
	return bw.Flush()
}

// joined renders the stored integers space-separated
func (s *NumericStore) joined() string {
	buf := s.arena.Bytes()
	out := make([]byte, 0, s.count*4)
	for i := 0; i < s.count; i++ {
		if i > 0 {
			out = append(out, ' ')
		}
		out = strconv.AppendInt(out, int64(s.codec.At(buf, i)), 10)
	}
	return string(out)
}
