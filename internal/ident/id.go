// Package ident generates opaque identifiers for new ingredients and recipes.
package ident

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// NewUUID returns a random (version 4) UUID string.
func NewUUID() string {
	return uuid.NewString()
}

// Sequence returns a deterministic generator yielding prefix-1, prefix-2, ...
// Used by tests and fixtures where stable ids matter.
func Sequence(prefix string) func() string {
	var n atomic.Int64
	return func() string {
		return fmt.Sprintf("%s-%d", prefix, n.Add(1))
	}
}
