// Package models holds the diary's persisted data shapes. JSON field names
// are the on-disk blob format and must stay stable: there is no migration
// scheme for stored blobs, and a renamed field silently falls back to the
// zero value on load.
package models
