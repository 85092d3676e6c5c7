package store

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/ssargent/recstore/pkg/metrics"
	"go.uber.org/zap"
)

// Allocator provides the backing memory for an arena
type Allocator interface {
	Alloc(n int) ([]byte, error)
}

// AllocatorFunc adapts a function to the Allocator interface
type AllocatorFunc func(n int) ([]byte, error)

// Alloc calls f(n)
func (f AllocatorFunc) Alloc(n int) ([]byte, error) {
	return f(n)
}

// HeapAllocator allocates arenas on the Go heap
type HeapAllocator struct{}

// Alloc returns a zeroed slice of n bytes. Allocation panics raised by the
// runtime (for example an impossible length) are returned as errors.
func (HeapAllocator) Alloc(n int) (buf []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			buf = nil
			err = fmt.Errorf("allocator: %v", r)
		}
	}()
	return make([]byte, n), nil
}

// Buffer is a single owned, contiguous arena with a manually tracked length.
// Growing may move the arena, so callers must hold offsets, never slices,
// across calls that can grow it.
type Buffer struct {
	name    string
	buf     []byte // len(buf) is the allocated capacity
	length  int    // bytes in use
	ceiling int
	growth  GrowthPolicy
	alloc   Allocator
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewBuffer creates an empty arena. name labels its logs and metrics.
func NewBuffer(name string, opts Options) *Buffer {
	opts = opts.withDefaults()
	return &Buffer{
		name:    name,
		ceiling: opts.Ceiling,
		growth:  opts.Growth,
		alloc:   opts.Allocator,
		logger:  opts.Logger,
		metrics: opts.Metrics,
	}
}

// Reserve guarantees the arena can hold newSize bytes.
//
// A request above the ceiling releases the whole arena and fails with
// ErrResourceLimitExceeded. A negative size or an allocator failure also
// releases the arena and fails with ErrAllocationFailure. Bytes [0, Len())
// survive a successful call.
func (b *Buffer) Reserve(newSize int) error {
	if newSize < 0 {
		b.Release()
		b.metrics.RecordFailure(b.name, KindAllocation.String())
		return &StoreError{Kind: KindAllocation, Op: "reserve", Size: newSize,
			Err: fmt.Errorf("negative size")}
	}
	if newSize > b.ceiling {
		b.logger.Error("memory usage exceeded the limit",
			zap.String("store", b.name),
			zap.String("limit", humanize.IBytes(uint64(b.ceiling))),
			zap.Int("requested", newSize))
		b.Release()
		b.metrics.RecordFailure(b.name, KindResourceLimit.String())
		return &StoreError{Kind: KindResourceLimit, Op: "reserve", Size: newSize, Ceiling: b.ceiling}
	}
	capacity := newSize
	switch b.growth {
	case GrowDoubling:
		if newSize <= len(b.buf) {
			return nil
		}
		capacity = max(2*len(b.buf), newSize)
		capacity = min(capacity, b.ceiling)
	default:
		if newSize == len(b.buf) {
			return nil
		}
	}

	next, err := b.alloc.Alloc(capacity)
	if err == nil && len(next) < capacity {
		err = fmt.Errorf("allocator returned %d bytes", len(next))
	}
	if err != nil {
		b.logger.Error("error allocating arena",
			zap.String("store", b.name),
			zap.Int("requested", capacity),
			zap.Int("allocated", b.length),
			zap.Error(err))
		b.Release()
		b.metrics.RecordFailure(b.name, KindAllocation.String())
		return &StoreError{Kind: KindAllocation, Op: "reserve", Size: capacity, Err: err}
	}

	copy(next, b.buf[:min(b.length, capacity)])
	b.buf = next[:capacity]
	b.length = min(b.length, capacity)
	b.metrics.RecordReallocation(b.name)
	b.metrics.UpdateBufferStats(b.name, b.length, len(b.buf))
	return nil
}

// Extend grows the in-use region by n bytes and returns the new window for
// the caller to fill. The window is only valid until the next call that can
// grow or release the arena.
func (b *Buffer) Extend(n int) ([]byte, error) {
	start := b.length
	if err := b.Reserve(start + n); err != nil {
		return nil, err
	}
	b.length = start + n
	b.metrics.UpdateBufferStats(b.name, b.length, len(b.buf))
	return b.buf[start:b.length], nil
}

// Remove deletes n bytes at off by shifting the tail left
func (b *Buffer) Remove(off, n int) {
	if off < 0 || n <= 0 || off+n > b.length {
		return
	}
	copy(b.buf[off:], b.buf[off+n:b.length])
	b.length -= n
	b.metrics.UpdateBufferStats(b.name, b.length, len(b.buf))
}

// Release frees the arena and resets the length to zero
func (b *Buffer) Release() {
	b.buf = nil
	b.length = 0
	b.metrics.UpdateBufferStats(b.name, 0, 0)
}

// Bytes returns the in-use region. The slice aliases the arena and is only
// valid until the next mutating call.
func (b *Buffer) Bytes() []byte {
	return b.buf[:b.length]
}

// Len returns the number of bytes in use
func (b *Buffer) Len() int {
	return b.length
}

// Cap returns the number of bytes allocated
func (b *Buffer) Cap() int {
	return len(b.buf)
}

// Ceiling returns the configured maximum arena size
func (b *Buffer) Ceiling() int {
	return b.ceiling
}
