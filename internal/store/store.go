// Package store declares the atomic collection primitives the frontier
// needs from its shared backing store. Every method is a single indivisible
// operation on the remote side; callers never compose read-modify-write
// sequences out of them, since that would race between workers.
package store

import (
	"context"
	"errors"
)

// ErrNoEntry signals that a pop found the named collection empty. It is the
// only "expected" store error; everything else is a connectivity or
// protocol failure and propagates untouched.
var ErrNoEntry = errors.New("no entry in collection")

// Store is the shared key-value/data-structure backend. Collections are
// created implicitly on first write and addressed by opaque key strings.
type Store interface {
	// SetAdd inserts member into the named set and reports whether this
	// call added it (false means it was already present). Add and
	// membership test happen in one atomic round trip.
	SetAdd(ctx context.Context, key string, member string) (added bool, err error)

	// ListPushTail appends value to the tail of the named list.
	ListPushTail(ctx context.Context, key string, value []byte) error
	// ListPopHead removes and returns the head of the named list, or
	// ErrNoEntry if the list is empty or absent.
	ListPopHead(ctx context.Context, key string) ([]byte, error)
	// ListPopTail removes and returns the tail of the named list, or
	// ErrNoEntry if the list is empty or absent.
	ListPopTail(ctx context.Context, key string) ([]byte, error)
	// ListLen returns the number of entries in the named list.
	ListLen(ctx context.Context, key string) (int64, error)

	// SortedAdd inserts member into the named sorted set under score.
	// Re-adding an identical member updates its score instead of growing
	// the set.
	SortedAdd(ctx context.Context, key string, score float64, member []byte) error
	// SortedPopMax removes and returns the member with the highest score,
	// or ErrNoEntry if the sorted set is empty or absent. Ordering among
	// equal scores is store-defined.
	SortedPopMax(ctx context.Context, key string) ([]byte, error)
	// SortedLen returns the number of members in the named sorted set.
	SortedLen(ctx context.Context, key string) (int64, error)

	// Delete removes the named collection entirely, whatever its type.
	Delete(ctx context.Context, key string) error
}
