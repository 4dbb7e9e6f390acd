// Package argon implements the W3C Document Object Model, Core Level 2,
// for in-memory XML 1.1 documents.
//
// Consumers construct, mutate, traverse, and serialize XML trees through
// typed node kinds that mirror the DOM IDL. The package also ships a
// streaming-to-tree builder: Parse consumes a complete XML document and
// returns a fully populated *Document.
//
// The node graph is single-threaded and non-reentrant. Callers that share
// a document across goroutines must serialize access externally.
package argon

const Version = "0.1.0"

// Parse reads a complete XML document from buf and returns the resulting
// Document. It is shorthand for NewParser().Parse(buf).
func Parse(buf []byte) (*Document, error) {
	return NewParser().Parse(buf)
}

// ParseString is like Parse, but accepts a string.
func ParseString(s string) (*Document, error) {
	return NewParser().Parse([]byte(s))
}
