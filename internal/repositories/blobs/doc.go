// Package blobs stores opaque values under string keys in the local SQLite
// database. It knows nothing about the shape of the values; typed access
// lives in package storage.
//
// Contract: Get returns (nil, nil) when the key is absent, Set upserts, and
// Delete of a missing key is not an error.
package blobs
