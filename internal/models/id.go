package models

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// NewID returns a fresh, time-ordered identifier.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Millis converts t to the unix-millisecond timestamps stored on entities.
func Millis(t time.Time) int64 {
	return t.UnixMilli()
}

// AddID appends id unless it is already present.
func AddID(ids []string, id string) []string {
	if slices.Contains(ids, id) {
		return ids
	}
	return append(ids, id)
}

// RemoveID drops every occurrence of id.
func RemoveID(ids []string, id string) []string {
	return slices.DeleteFunc(ids, func(s string) bool { return s == id })
}
