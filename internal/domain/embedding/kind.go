// Package embedding defines the closed set of embedding kinds the engine
// stores and searches.
package embedding

import "fmt"

// Kind selects which per-kind vector store an operation targets.
type Kind string

const (
	// Visual embeddings describe image/video content.
	Visual Kind = "visual"
	// Text embeddings describe textual content.
	Text Kind = "text"
)

// Parse converts a wire string into a Kind.
func Parse(s string) (Kind, error) {
	switch Kind(s) {
	case Visual, Text:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown embedding kind %q", s)
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == Visual || k == Text
}
