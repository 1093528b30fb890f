// Package storage is the typed persistence layer of the diary. Every state
// container keeps its whole collection as one JSON blob under a fixed key
// and rewrites that blob after each change.
//
// Reads never fail: Load returns the caller's fallback when a key is
// missing, holds the literal "undefined", or cannot be decoded, and logs
// why. Writes return their error to the caller.
package storage
