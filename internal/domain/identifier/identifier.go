// Package identifier generates the opaque ids used by every catalog aggregate.
package identifier

import (
	"strings"

	"github.com/google/uuid"
)

// Generate returns a random lowercase identifier without dashes
func Generate() string {
	return strings.ToLower(strings.ReplaceAll(uuid.NewString(), "-", ""))
}

// Unique returns ids without duplicates, keeping the first occurrence order.
// The result is never nil.
func Unique[T comparable](ids []T) []T {
	out := make([]T, 0, len(ids))
	seen := make(map[T]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Map converts raw ids into a typed id set
func Map[T ~string](raw []string) []T {
	out := make([]T, 0, len(raw))
	for _, r := range raw {
		out = append(out, T(r))
	}
	return Unique(out)
}

// Strings converts typed ids back to plain strings
func Strings[T ~string](ids []T) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, string(id))
	}
	return out
}
