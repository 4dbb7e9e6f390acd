package argon

import "github.com/lestrrat-go/option"

// ProcessingOptions is the immutable per-document configuration record.
// It is attached to a Document at creation and propagates to every node
// through the owner-document link.
type ProcessingOptions struct {
	// HasDeclaration allows an XML declaration on the document.
	HasDeclaration bool
	// HasNamespaces enables namespace semantics. When false, names are
	// opaque and xmlns attributes carry no meaning.
	HasNamespaces bool
	// AddNamespaces synthesizes xmlns declaration attributes when
	// elements are created with a namespace URI.
	AddNamespaces bool
}

// DefaultOptions returns the options used by Implementation.CreateDocument:
// declarations and namespace semantics on, namespace synthesis off.
func DefaultOptions() ProcessingOptions {
	return ProcessingOptions{
		HasDeclaration: true,
		HasNamespaces:  true,
	}
}

type Option = option.Interface

type identOptions struct{}
type identEntityResolver struct{}
type identKeepBlanks struct{}

// ParseOption configures a Parser.
type ParseOption interface {
	Option
	parseOption()
}

type parseOption struct {
	Option
}

func (*parseOption) parseOption() {}

// WithOptions sets the processing options for documents produced by the
// parser.
func WithOptions(v ProcessingOptions) ParseOption {
	return &parseOption{option.New(identOptions{}, v)}
}

// WithEntityResolver installs the resolver consulted for general entity
// references that are neither predefined nor declared in the internal
// subset.
func WithEntityResolver(v EntityResolver) ParseOption {
	return &parseOption{option.New(identEntityResolver{}, v)}
}

// WithKeepBlanks controls whether whitespace-only text between elements
// is kept as Text nodes. The default is true.
func WithKeepBlanks(v bool) ParseOption {
	return &parseOption{option.New(identKeepBlanks{}, v)}
}
