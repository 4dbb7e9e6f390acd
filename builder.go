package argon

import (
	"errors"
	"io"

	pdebug "github.com/lestrrat-go/pdebug/v3"

	"github.com/lestrrat-go/argon/internal/stack"
)

// Parser builds Documents from XML text by feeding tokenizer events
// through the DOM factory and mutation engine.
type Parser struct {
	options    ProcessingOptions
	resolver   EntityResolver
	keepBlanks bool
}

// NewParser creates a parser. With no options it produces documents with
// DefaultOptions and keeps whitespace-only text nodes.
func NewParser(options ...ParseOption) *Parser {
	p := &Parser{
		options:    DefaultOptions(),
		keepBlanks: true,
	}
	for _, o := range options {
		switch o.Ident().(type) {
		case identOptions:
			p.options = o.Value().(ProcessingOptions)
		case identEntityResolver:
			p.resolver = o.Value().(EntityResolver)
		case identKeepBlanks:
			p.keepBlanks = o.Value().(bool)
		}
	}
	return p
}

// Parse consumes a complete XML document and returns the populated
// Document. The first fatal error aborts the parse.
func (p *Parser) Parse(buf []byte) (*Document, error) {
	return p.ParseTokens(NewLexer(buf))
}

// ParseTokens builds a Document from an arbitrary event source. The
// source must deliver events in document order, StartDocumentEvent first
// and EndDocumentEvent last; events in an illegal order fail with Syntax.
func (p *Parser) ParseTokens(tok Tokenizer) (*Document, error) {
	b := &treeBuilder{p: p}
	for {
		ev, err := tok.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, newError(SyntaxErr, "event stream ended before end-document")
			}
			return nil, err
		}
		if ev == nil {
			return nil, newError(SyntaxErr, "tokenizer returned no event")
		}
		done, err := b.handle(ev)
		if err != nil {
			return nil, err
		}
		if done {
			return b.doc, nil
		}
	}
}

type builderState int

const (
	psStart builderState = iota
	psDecl
	psProlog
	psContent
	psEpilogue
)

// treeBuilder is the event consumer: it maintains the stack of open
// elements and a small state machine that rejects out-of-order events.
type treeBuilder struct {
	p     *Parser
	doc   *Document
	open  stack.Stack[*Element]
	state builderState
}

func (b *treeBuilder) current() Node {
	if e, ok := b.open.Peek(); ok {
		return e
	}
	return b.doc
}

func (b *treeBuilder) handle(ev *Event) (bool, error) {
	if pdebug.Enabled {
		g := pdebug.FuncMarker()
		defer g.End()
		pdebug.Printf("event %s", ev.Type)
	}

	if b.state == psStart && ev.Type != StartDocumentEvent {
		return false, newError(SyntaxErr, "%s event before start-document", ev.Type)
	}

	switch ev.Type {
	case StartDocumentEvent:
		if b.state != psStart {
			return false, newError(SyntaxErr, "duplicate start-document")
		}
		b.doc = NewDocument(b.p.options)
		b.doc.resolver = b.p.resolver
		b.state = psDecl
		return false, nil

	case XMLDeclEvent:
		if b.state != psDecl {
			return false, newError(SyntaxErr, "xml declaration after content")
		}
		b.state = psProlog
		if !b.doc.opts.HasDeclaration {
			return false, nil
		}
		decl, err := NewXMLDeclaration(ev.Version, ev.Encoding, ev.Standalone)
		if err != nil {
			return false, err
		}
		return false, b.doc.SetXMLDeclaration(decl)

	case DoctypeEvent:
		if b.state != psDecl && b.state != psProlog {
			return false, newError(SyntaxErr, "doctype after the first element")
		}
		b.state = psProlog
		return false, b.doctype(ev)

	case StartElementEvent:
		if b.state == psEpilogue {
			return false, newError(SyntaxErr, "second root element <%s>", ev.Name)
		}
		b.state = psContent
		return false, b.startElement(ev)

	case EndElementEvent:
		if b.state != psContent {
			return false, newError(SyntaxErr, "unexpected end tag </%s>", ev.Name)
		}
		e, ok := b.open.Pop()
		if !ok {
			return false, newError(SyntaxErr, "unexpected end tag </%s>", ev.Name)
		}
		if e.TagName() != ev.Name {
			return false, newError(SyntaxErr, "end tag </%s> does not match <%s>", ev.Name, e.TagName())
		}
		if b.open.Len() == 0 {
			b.state = psEpilogue
		}
		return false, nil

	case TextEvent:
		if b.state != psContent || b.open.Len() == 0 {
			return false, newError(SyntaxErr, "character data outside the root element")
		}
		data := NormalizeEOL(ev.Data)
		if !b.p.keepBlanks && isAllBlank(data) {
			return false, nil
		}
		if data == "" {
			return false, nil
		}
		return false, b.current().AppendChild(b.doc.CreateTextNode(data))

	case CDATAEvent:
		if b.state != psContent || b.open.Len() == 0 {
			return false, newError(SyntaxErr, "CDATA section outside the root element")
		}
		cd, err := b.doc.CreateCDATASection(NormalizeEOL(ev.Data))
		if err != nil {
			return false, err
		}
		return false, b.current().AppendChild(cd)

	case CommentEvent:
		if b.state == psDecl {
			b.state = psProlog
		}
		c := b.doc.CreateComment(NormalizeEOL(ev.Data))
		return false, b.current().AppendChild(c)

	case PIEvent:
		if b.state == psDecl {
			b.state = psProlog
		}
		pi, err := b.doc.CreateProcessingInstruction(ev.Name, NormalizeEOL(ev.Data))
		if err != nil {
			return false, err
		}
		return false, b.current().AppendChild(pi)

	case EntityRefEvent:
		if b.state != psContent || b.open.Len() == 0 {
			return false, newError(SyntaxErr, "entity reference outside the root element")
		}
		ref, err := b.doc.CreateEntityReference(ev.Name)
		if err != nil {
			return false, err
		}
		return false, b.current().AppendChild(ref)

	case EndDocumentEvent:
		if b.open.Len() != 0 {
			e, _ := b.open.Peek()
			return false, newError(SyntaxErr, "element <%s> is never closed", e.TagName())
		}
		if b.doc == nil || b.doc.docElem == nil {
			return false, newError(SyntaxErr, "document has no root element")
		}
		return true, nil

	default:
		return false, newError(SyntaxErr, "unknown event type %d", ev.Type)
	}
}

func (b *treeBuilder) doctype(ev *Event) error {
	if b.doc.doctype != nil {
		return newError(SyntaxErr, "duplicate doctype declaration")
	}
	if err := checkQName(ev.Name); err != nil {
		return err
	}
	dt := newDocumentType(ev.Name, ev.PublicID, ev.SystemID)
	dt.internalSubset = ev.InternalSubset

	for _, decl := range ev.Entities {
		ent := newEntity(decl.Name, decl.PublicID, decl.SystemID, decl.NotationName)
		if decl.Value != "" {
			link(ent, newText(b.doc, NormalizeEOL(decl.Value)), nil)
		}
		if err := dt.addEntity(ent); err != nil {
			return err
		}
	}
	for _, decl := range ev.Notations {
		if err := dt.addNotation(newNotation(decl.Name, decl.PublicID, decl.SystemID)); err != nil {
			return err
		}
	}
	dt.seal()
	setOwnerDocument(dt, b.doc)
	return b.doc.AppendChild(dt)
}

func (b *treeBuilder) startElement(ev *Event) error {
	if pdebug.Enabled {
		pdebug.Printf("startElement %s", ev.Name)
	}

	e, err := b.doc.CreateElement(ev.Name)
	if err != nil {
		return err
	}

	ns := b.doc.opts.HasNamespaces
	var plain []*Attr
	for _, pa := range ev.Attrs {
		a, err := b.doc.CreateAttribute(pa.Name)
		if err != nil {
			return err
		}
		value, err := b.attrValue(pa.Value)
		if err != nil {
			return err
		}
		a.setCanonicalValue(value)

		if _, isDecl := namespaceDeclName(pa.Name); ns && isDecl {
			a.nsURI = XMLNSNamespace
			if _, err := e.SetAttributeNode(a); err != nil {
				return err
			}
			continue
		}
		plain = append(plain, a)
	}

	if err := b.current().AppendChild(e); err != nil {
		return err
	}

	if ns {
		if uri, ok := LookupNamespaceURI(e, e.prefix); ok {
			e.nsURI = uri
		} else if e.prefix != "" && e.prefix != "xml" {
			return newError(NamespaceErr, "prefix %q on <%s> is not declared", e.prefix, ev.Name)
		}
	}

	for _, a := range plain {
		if ns && a.prefix != "" {
			uri, ok := LookupNamespaceURI(e, a.prefix)
			if !ok {
				return newError(NamespaceErr, "prefix %q on attribute %s is not declared", a.prefix, a.Name())
			}
			a.nsURI = uri
		}
		if _, err := e.SetAttributeNode(a); err != nil {
			return err
		}
	}

	b.open.Push(e)
	return nil
}

// attrValue turns raw attribute text into the canonical stored form:
// end-of-line handling, whitespace normalization (CDATA flavor), and
// entity expansion through the document's resolver. An unresolvable
// entity is a Syntax error.
func (b *treeBuilder) attrValue(raw string) (string, error) {
	norm := NormalizeAttrValue(NormalizeEOL(raw), true)
	return Unescape(norm, b.doc.EntityResolver())
}

func isAllBlank(s string) bool {
	for _, c := range s {
		if !isBlankCh(c) {
			return false
		}
	}
	return true
}

// namespaceDeclName reports whether an attribute name in markup is an
// xmlns declaration, and the prefix it declares.
func namespaceDeclName(name string) (string, bool) {
	if name == "xmlns" {
		return "", true
	}
	const p = "xmlns:"
	if len(name) > len(p) && name[:len(p)] == p {
		return name[len(p):], true
	}
	return "", false
}
