package store

import (
	"errors"
	"fmt"

	"github.com/ssargent/recstore/pkg/metrics"
	"go.uber.org/zap"
)

// DefaultCeiling is the largest arena a store may grow to (100 MiB)
const DefaultCeiling = 100 * 1024 * 1024

// GrowthPolicy decides how much an arena reallocates when it runs out of room
type GrowthPolicy int

const (
	// GrowExact reallocates to exactly the requested size on every append
	GrowExact GrowthPolicy = iota
	// GrowDoubling doubles capacity, clamped to the ceiling
	GrowDoubling
)

// ParseGrowthPolicy maps a configuration value to a GrowthPolicy
func ParseGrowthPolicy(s string) (GrowthPolicy, error) {
	switch s {
	case "", "exact":
		return GrowExact, nil
	case "doubling":
		return GrowDoubling, nil
	default:
		return GrowExact, fmt.Errorf("unknown growth policy %q", s)
	}
}

func (p GrowthPolicy) String() string {
	switch p {
	case GrowExact:
		return "exact"
	case GrowDoubling:
		return "doubling"
	default:
		return fmt.Sprintf("GrowthPolicy(%d)", int(p))
	}
}

// Options holds configuration shared by both record stores
type Options struct {
	Ceiling   int              // Maximum arena size in bytes (0 = DefaultCeiling)
	Growth    GrowthPolicy     // Reallocation policy
	Allocator Allocator        // Arena allocator (nil = heap)
	Logger    *zap.Logger      // Diagnostics (nil = no-op)
	Metrics   *metrics.Metrics // Prometheus collectors (nil = disabled)
}

func (o Options) withDefaults() Options {
	if o.Ceiling <= 0 {
		o.Ceiling = DefaultCeiling
	}
	if o.Allocator == nil {
		o.Allocator = HeapAllocator{}
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// RecordIterator provides streaming access to text records.
// Mutating the store invalidates any open iterator.
type RecordIterator interface {
	Next() bool
	Record() string
}

// Kind classifies a store failure
type Kind int

const (
	KindUnknown Kind = iota
	KindFileOpen
	KindAllocation
	KindResourceLimit
	KindIndexOutOfRange
	KindEmptyStore
	KindDivisionByZero
	KindInvalidRecord
)

func (k Kind) String() string {
	switch k {
	case KindFileOpen:
		return "file_open_error"
	case KindAllocation:
		return "allocation_failure"
	case KindResourceLimit:
		return "resource_limit_exceeded"
	case KindIndexOutOfRange:
		return "index_out_of_range"
	case KindEmptyStore:
		return "empty_store"
	case KindDivisionByZero:
		return "division_by_zero"
	case KindInvalidRecord:
		return "invalid_record"
	default:
		return "unknown"
	}
}

// Errors
var (
	ErrFileOpen              = &StoreError{Kind: KindFileOpen}
	ErrAllocationFailure     = &StoreError{Kind: KindAllocation}
	ErrResourceLimitExceeded = &StoreError{Kind: KindResourceLimit}
	ErrIndexOutOfRange       = &StoreError{Kind: KindIndexOutOfRange}
	ErrEmptyStore            = &StoreError{Kind: KindEmptyStore}
	ErrDivisionByZero        = &StoreError{Kind: KindDivisionByZero}
	ErrInvalidRecord         = &StoreError{Kind: KindInvalidRecord}
)

// StoreError represents a record store failure.
// errors.Is matches any two StoreErrors of the same Kind.
type StoreError struct {
	Kind    Kind
	Op      string // Operation that failed, e.g. "load"
	Path    string // File involved, if any
	Index   int    // Offending record index for IndexOutOfRange and DivisionByZero
	Size    int    // Requested arena size for Allocation and ResourceLimit
	Ceiling int    // Configured ceiling for ResourceLimit
	Err     error  // Underlying cause
}

func (e *StoreError) Error() string {
	var msg string
	switch e.Kind {
	case KindFileOpen:
		msg = fmt.Sprintf("could not open file %q", e.Path)
	case KindAllocation:
		msg = fmt.Sprintf("failed to allocate %d bytes", e.Size)
	case KindResourceLimit:
		msg = fmt.Sprintf("exceeded memory limit: %d bytes requested, limit is %d", e.Size, e.Ceiling)
	case KindIndexOutOfRange:
		msg = fmt.Sprintf("index %d is out of range", e.Index)
	case KindEmptyStore:
		msg = "no numbers available"
	case KindDivisionByZero:
		msg = fmt.Sprintf("division by zero: divisor at index %d is 0", e.Index)
	case KindInvalidRecord:
		msg = "invalid record"
	default:
		msg = "store error"
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a StoreError of the same Kind
func (e *StoreError) Is(target error) bool {
	t, ok := target.(*StoreError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the Kind of the first StoreError in err's chain
func KindOf(err error) Kind {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindUnknown
}
