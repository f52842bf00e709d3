package board

import (
	"fmt"

	"github.com/google/uuid"
)

// IDFunc returns a fresh item id on every call.
type IDFunc func() string

// UUIDs issues ids of the form "tool_<uuid>".
func UUIDs() IDFunc {
	return func() string {
		return "tool_" + uuid.NewString()
	}
}

// Sequence issues prefix_1, prefix_2, ... and is meant for tests and
// reproducible demos.
func Sequence(prefix string) IDFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s_%d", prefix, n)
	}
}
