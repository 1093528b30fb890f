// Package services holds the diary's state containers. Each container owns
// one collection, loads it once when constructed and writes the full
// collection back through storage.Store after every change.
//
// The containers are safe for concurrent use, although the CLI drives them
// from a single goroutine. Methods return copies; mutating a returned value
// never changes container state.
//
// Validation failures (blank text, blank names) return common.ErrEmptyInput
// and leave state untouched. Authorization-boundary violations return
// common.ErrForbidden or common.ErrSelfRemoval.
package services
