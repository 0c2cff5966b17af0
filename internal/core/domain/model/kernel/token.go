package kernel

import (
	"math/rand/v2"
	"strings"
)

const tokenAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewToken returns a human readable identifier such as "ORD-7K2QZ":
// the prefix, a dash and n random uppercase base36 characters.
// Uniqueness is the caller's concern.
func NewToken(prefix string, n int) string {
	var b strings.Builder
	b.Grow(len(prefix) + 1 + n)
	b.WriteString(prefix)
	b.WriteByte('-')
	for range n {
		b.WriteByte(tokenAlphabet[rand.IntN(len(tokenAlphabet))]) //nolint:gosec // ids are not secrets
	}
	return b.String()
}
