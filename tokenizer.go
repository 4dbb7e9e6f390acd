package argon

import (
	"io"
	"strings"

	pdebug "github.com/lestrrat-go/pdebug/v3"
	"github.com/lestrrat-go/strcursor"

	"github.com/lestrrat-go/argon/encoding"
)

// EventType enumerates the typed events the tree builder consumes.
type EventType int

const (
	StartDocumentEvent EventType = iota + 1
	XMLDeclEvent
	DoctypeEvent
	StartElementEvent
	EndElementEvent
	TextEvent
	CDATAEvent
	CommentEvent
	PIEvent
	EntityRefEvent
	EndDocumentEvent
)

func (t EventType) String() string {
	switch t {
	case StartDocumentEvent:
		return "start-document"
	case XMLDeclEvent:
		return "xml-decl"
	case DoctypeEvent:
		return "doctype"
	case StartElementEvent:
		return "start-element"
	case EndElementEvent:
		return "end-element"
	case TextEvent:
		return "text"
	case CDATAEvent:
		return "cdata"
	case CommentEvent:
		return "comment"
	case PIEvent:
		return "pi"
	case EntityRefEvent:
		return "entity-ref"
	case EndDocumentEvent:
		return "end-document"
	default:
		return "unknown"
	}
}

// ParsedAttr is an attribute as it appeared in a start tag: the qualified
// name and the raw value text, neither normalized nor entity-expanded.
type ParsedAttr struct {
	Name  string
	Value string
}

// EntityDecl is a general entity declaration from the internal subset.
type EntityDecl struct {
	Name         string
	Value        string
	PublicID     string
	SystemID     string
	NotationName string
}

// NotationDecl is a notation declaration from the internal subset.
type NotationDecl struct {
	Name     string
	PublicID string
	SystemID string
}

// Event is one typed token from the input document. Which fields are
// populated depends on Type.
type Event struct {
	Type EventType

	// XMLDeclEvent
	Version    string
	Encoding   string
	Standalone Standalone

	// DoctypeEvent, StartElementEvent, EndElementEvent, PIEvent (target),
	// EntityRefEvent
	Name string

	// DoctypeEvent
	PublicID       string
	SystemID       string
	InternalSubset string
	Entities       []EntityDecl
	Notations      []NotationDecl

	// StartElementEvent
	Attrs []ParsedAttr

	// TextEvent, CDATAEvent, CommentEvent, PIEvent
	Data string
}

// Tokenizer is the black-box producer of typed events the builder runs
// on. Next returns io.EOF after the EndDocumentEvent has been delivered.
type Tokenizer interface {
	Next() (*Event, error)
}

type lexState int

const (
	lexStart lexState = iota
	lexProlog
	lexContent
	lexEpilogue
	lexDone
)

// Lexer is the default Tokenizer: a cursor-based XML 1.1 lexer. It
// detects the input encoding from a byte-order mark and again from the
// xml declaration, transcoding to UTF-8 through the encoding package: a
// BOM-detected encoding before any markup is examined, a declared one for
// the text that follows the declaration.
type Lexer struct {
	cursor  *strcursor.Cursor
	state   lexState
	depth   int
	pending []*Event
}

var _ Tokenizer = (*Lexer)(nil)

// NewLexer creates a Lexer over a complete document.
func NewLexer(buf []byte) *Lexer {
	if name, n := encoding.Detect(buf); name != "" {
		if name == "utf-8" {
			buf = buf[n:]
		} else if decoded, ok := encoding.Decode(name, buf[n:]); ok {
			buf = decoded
		}
	}
	return &Lexer{cursor: strcursor.New(buf)}
}

// syntaxError wraps err with the lexer's current position.
func (l *Lexer) syntaxError(err error) error {
	return &ParseError{
		Err:        err,
		Line:       l.cursor.CurrentLine(),
		LineNumber: l.cursor.LineNumber(),
		Column:     l.cursor.Column(),
	}
}

func (l *Lexer) errorf(format string, args ...interface{}) error {
	return l.syntaxError(newError(SyntaxErr, format, args...))
}

func (l *Lexer) skipBlanks() {
	for !l.cursor.Done() && isBlankCh(l.cursor.Peek(1)) {
		l.cursor.Advance(1)
	}
}

// parseName reads a Name at the cursor.
func (l *Lexer) parseName() (string, error) {
	if l.cursor.Done() || !isNameStartChar(l.cursor.Peek(1)) {
		return "", l.errorf("expected a name")
	}
	n := 1
	for isNameChar(l.cursor.Peek(n + 1)) {
		n++
	}
	return l.cursor.Consume(n), nil
}

// Next returns the next event in document order.
func (l *Lexer) Next() (*Event, error) {
	if pdebug.Enabled {
		g := pdebug.FuncMarker()
		defer g.End()
	}

	if len(l.pending) > 0 {
		ev := l.pending[0]
		l.pending = l.pending[1:]
		return ev, nil
	}

	switch l.state {
	case lexStart:
		l.state = lexProlog
		return &Event{Type: StartDocumentEvent}, nil
	case lexProlog:
		return l.nextProlog()
	case lexContent:
		return l.nextContent()
	case lexEpilogue:
		return l.nextEpilogue()
	default:
		return nil, io.EOF
	}
}

func (l *Lexer) nextProlog() (*Event, error) {
	if l.cursor.HasPrefix("<?xml") && isBlankCh(l.cursor.Peek(6)) {
		return l.parseXMLDecl()
	}

	l.skipBlanks()
	switch {
	case l.cursor.Done():
		return nil, l.errorf("document has no root element")
	case l.cursor.HasPrefix("<!--"):
		return l.parseComment()
	case l.cursor.HasPrefix("<!DOCTYPE"):
		return l.parseDoctype()
	case l.cursor.HasPrefix("<?"):
		return l.parsePI()
	case l.cursor.Peek(1) == '<':
		l.state = lexContent
		return l.nextContent()
	default:
		return nil, l.errorf("unexpected content before root element")
	}
}

func (l *Lexer) nextEpilogue() (*Event, error) {
	l.skipBlanks()
	switch {
	case l.cursor.Done():
		l.state = lexDone
		return &Event{Type: EndDocumentEvent}, nil
	case l.cursor.HasPrefix("<!--"):
		return l.parseComment()
	case l.cursor.HasPrefix("<?"):
		return l.parsePI()
	default:
		return nil, l.errorf("content after the root element")
	}
}

func (l *Lexer) nextContent() (*Event, error) {
	if l.cursor.Done() {
		return nil, l.errorf("unexpected end of input inside the root element")
	}
	switch {
	case l.cursor.HasPrefix("</"):
		return l.parseEndTag()
	case l.cursor.HasPrefix("<!--"):
		return l.parseComment()
	case l.cursor.HasPrefix("<![CDATA["):
		return l.parseCDATA()
	case l.cursor.HasPrefix("<?"):
		return l.parsePI()
	case l.cursor.Peek(1) == '<':
		return l.parseStartTag()
	default:
		return l.parseCharData()
	}
}

// parseXMLDecl reads <?xml version="…" encoding="…" standalone="…"?>.
func (l *Lexer) parseXMLDecl() (*Event, error) {
	l.cursor.Advance(5)
	ev := &Event{Type: XMLDeclEvent, Standalone: StandaloneUnspecified}

	seen := map[string]bool{}
	for {
		l.skipBlanks()
		if l.cursor.ConsumePrefix("?>") {
			break
		}
		name, err := l.parseName()
		if err != nil {
			return nil, err
		}
		if seen[name] {
			return nil, l.errorf("duplicate %s in xml declaration", name)
		}
		seen[name] = true
		value, err := l.parseEq()
		if err != nil {
			return nil, err
		}
		switch name {
		case "version":
			if value != "1.0" && value != "1.1" {
				return nil, l.errorf("unsupported XML version %q", value)
			}
			ev.Version = value
		case "encoding":
			ev.Encoding = value
		case "standalone":
			switch value {
			case "yes":
				ev.Standalone = StandaloneYes
			case "no":
				ev.Standalone = StandaloneNo
			default:
				return nil, l.errorf("standalone must be yes or no, got %q", value)
			}
		default:
			return nil, l.errorf("unexpected %q in xml declaration", name)
		}
	}
	if ev.Version == "" {
		return nil, l.errorf("xml declaration lacks a version")
	}

	// the declared encoding governs everything after the declaration
	if enc := ev.Encoding; enc != "" && !strings.EqualFold(enc, "utf-8") && !strings.EqualFold(enc, "utf8") {
		rest, ok := encoding.Decode(enc, l.cursor.Bytes())
		if !ok {
			return nil, l.errorf("unsupported encoding %q", enc)
		}
		l.cursor = strcursor.New(rest)
	}
	return ev, nil
}

// parseEq reads ="value" (or ='value') after a pseudo-attribute name.
func (l *Lexer) parseEq() (string, error) {
	l.skipBlanks()
	if !l.cursor.ConsumePrefix("=") {
		return "", l.errorf("expected '='")
	}
	l.skipBlanks()
	return l.parseQuoted()
}

func (l *Lexer) parseQuoted() (string, error) {
	q := l.cursor.Peek(1)
	if q != '"' && q != '\'' {
		return "", l.errorf("expected a quoted value")
	}
	l.cursor.Advance(1)
	n := 1
	for {
		if !l.cursor.HasChars(n) {
			return "", l.errorf("unterminated quoted value")
		}
		if l.cursor.Peek(n) == q {
			break
		}
		n++
	}
	value := l.cursor.Consume(n - 1)
	l.cursor.Advance(1)
	return value, nil
}

func (l *Lexer) parseComment() (*Event, error) {
	l.cursor.Advance(4)
	var b strings.Builder
	for {
		if l.cursor.Done() {
			return nil, l.errorf("unterminated comment")
		}
		if l.cursor.HasPrefix("--") {
			if !l.cursor.ConsumePrefix("-->") {
				return nil, l.errorf("'--' is not allowed inside a comment")
			}
			return &Event{Type: CommentEvent, Data: b.String()}, nil
		}
		b.WriteRune(l.cursor.Peek(1))
		l.cursor.Advance(1)
	}
}

func (l *Lexer) parsePI() (*Event, error) {
	l.cursor.Advance(2)
	target, err := l.parseName()
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(target, "xml") {
		return nil, l.errorf("the %q target is reserved", target)
	}
	l.skipBlanks()
	var b strings.Builder
	for {
		if l.cursor.Done() {
			return nil, l.errorf("unterminated processing instruction")
		}
		if l.cursor.ConsumePrefix("?>") {
			return &Event{Type: PIEvent, Name: target, Data: b.String()}, nil
		}
		b.WriteRune(l.cursor.Peek(1))
		l.cursor.Advance(1)
	}
}

func (l *Lexer) parseCDATA() (*Event, error) {
	l.cursor.Advance(9)
	var b strings.Builder
	for {
		if l.cursor.Done() {
			return nil, l.errorf("unterminated CDATA section")
		}
		if l.cursor.ConsumePrefix("]]>") {
			return &Event{Type: CDATAEvent, Data: b.String()}, nil
		}
		b.WriteRune(l.cursor.Peek(1))
		l.cursor.Advance(1)
	}
}

// parseDoctype reads <!DOCTYPE name externalID? [internal subset]? >.
// Both the standard PUBLIC "pub" "sys" form and the doubled
// PUBLIC "pub" SYSTEM "sys" form are accepted.
func (l *Lexer) parseDoctype() (*Event, error) {
	l.cursor.Advance(len("<!DOCTYPE"))
	l.skipBlanks()
	name, err := l.parseName()
	if err != nil {
		return nil, err
	}
	ev := &Event{Type: DoctypeEvent, Name: name}

	l.skipBlanks()
	switch {
	case l.cursor.ConsumePrefix("PUBLIC"):
		l.skipBlanks()
		if ev.PublicID, err = l.parseQuoted(); err != nil {
			return nil, err
		}
		l.skipBlanks()
		if l.cursor.ConsumePrefix("SYSTEM") {
			l.skipBlanks()
		}
		if c := l.cursor.Peek(1); c == '"' || c == '\'' {
			if ev.SystemID, err = l.parseQuoted(); err != nil {
				return nil, err
			}
		}
	case l.cursor.ConsumePrefix("SYSTEM"):
		l.skipBlanks()
		if ev.SystemID, err = l.parseQuoted(); err != nil {
			return nil, err
		}
	}

	l.skipBlanks()
	if l.cursor.ConsumePrefix("[") {
		raw, err := l.captureInternalSubset()
		if err != nil {
			return nil, err
		}
		ev.InternalSubset = raw
		if err := parseInternalSubset(raw, ev); err != nil {
			return nil, l.syntaxError(err)
		}
		l.skipBlanks()
	}
	if !l.cursor.ConsumePrefix(">") {
		return nil, l.errorf("malformed doctype declaration")
	}
	return ev, nil
}

// captureInternalSubset copies the subset text verbatim up to the closing
// bracket, honoring quoted literals and comments so a bracket inside them
// does not end the subset.
func (l *Lexer) captureInternalSubset() (string, error) {
	var b strings.Builder
	var quote rune
	for {
		if l.cursor.Done() {
			return "", l.errorf("unterminated internal subset")
		}
		if quote == 0 && l.cursor.HasPrefix("<!--") {
			for !l.cursor.ConsumePrefix("-->") {
				if l.cursor.Done() {
					return "", l.errorf("unterminated comment in internal subset")
				}
				b.WriteRune(l.cursor.Peek(1))
				l.cursor.Advance(1)
			}
			b.WriteString("-->")
			continue
		}
		c := l.cursor.Peek(1)
		switch {
		case quote == 0 && c == ']':
			l.cursor.Advance(1)
			return b.String(), nil
		case quote == 0 && (c == '"' || c == '\''):
			quote = c
		case c == quote:
			quote = 0
		}
		b.WriteRune(c)
		l.cursor.Advance(1)
	}
}

// parseInternalSubset extracts ENTITY and NOTATION declarations from the
// captured subset text. ELEMENT and ATTLIST declarations, comments, PIs,
// and parameter-entity machinery are skipped: content models are not
// modeled here.
func parseInternalSubset(raw string, ev *Event) error {
	sub := &Lexer{cursor: strcursor.New([]byte(raw))}
	cur := sub.cursor
	for {
		sub.skipBlanks()
		if cur.Done() {
			return nil
		}
		switch {
		case cur.ConsumePrefix("<!ENTITY"):
			sub.skipBlanks()
			if cur.Peek(1) == '%' {
				// parameter entity, not part of the document's entity map
				skipToGt(cur)
				continue
			}
			name, err := sub.parseName()
			if err != nil {
				return err
			}
			decl := EntityDecl{Name: name}
			sub.skipBlanks()
			if c := cur.Peek(1); c == '"' || c == '\'' {
				if decl.Value, err = sub.parseQuoted(); err != nil {
					return err
				}
			} else {
				if cur.ConsumePrefix("PUBLIC") {
					sub.skipBlanks()
					if decl.PublicID, err = sub.parseQuoted(); err != nil {
						return err
					}
					sub.skipBlanks()
				} else if cur.ConsumePrefix("SYSTEM") {
					sub.skipBlanks()
				}
				if c := cur.Peek(1); c == '"' || c == '\'' {
					if decl.SystemID, err = sub.parseQuoted(); err != nil {
						return err
					}
				}
				sub.skipBlanks()
				if cur.ConsumePrefix("NDATA") {
					sub.skipBlanks()
					if decl.NotationName, err = sub.parseName(); err != nil {
						return err
					}
				}
			}
			ev.Entities = append(ev.Entities, decl)
			skipToGt(cur)
		case cur.ConsumePrefix("<!NOTATION"):
			sub.skipBlanks()
			name, err := sub.parseName()
			if err != nil {
				return err
			}
			decl := NotationDecl{Name: name}
			sub.skipBlanks()
			if cur.ConsumePrefix("PUBLIC") {
				sub.skipBlanks()
				if decl.PublicID, err = sub.parseQuoted(); err != nil {
					return err
				}
				sub.skipBlanks()
				if c := cur.Peek(1); c == '"' || c == '\'' {
					if decl.SystemID, err = sub.parseQuoted(); err != nil {
						return err
					}
				}
			} else if cur.ConsumePrefix("SYSTEM") {
				sub.skipBlanks()
				if decl.SystemID, err = sub.parseQuoted(); err != nil {
					return err
				}
			}
			ev.Notations = append(ev.Notations, decl)
			skipToGt(cur)
		case cur.HasPrefix("<!--"):
			cur.Advance(4)
			for !cur.Done() && !cur.ConsumePrefix("-->") {
				cur.Advance(1)
			}
		default:
			// <!ELEMENT, <!ATTLIST, PIs, parameter-entity references
			skipToGt(cur)
		}
	}
}

func skipToGt(cur *strcursor.Cursor) {
	for !cur.Done() {
		if cur.ConsumePrefix(">") {
			return
		}
		cur.Advance(1)
	}
}

func (l *Lexer) parseStartTag() (*Event, error) {
	l.cursor.Advance(1)
	name, err := l.parseName()
	if err != nil {
		return nil, err
	}
	ev := &Event{Type: StartElementEvent, Name: name}

	for {
		l.skipBlanks()
		switch {
		case l.cursor.Done():
			return nil, l.errorf("unterminated start tag <%s", name)
		case l.cursor.ConsumePrefix("/>"):
			l.pending = append(l.pending, &Event{Type: EndElementEvent, Name: name})
			if l.depth == 0 {
				l.state = lexEpilogue
			}
			return ev, nil
		case l.cursor.ConsumePrefix(">"):
			l.depth++
			return ev, nil
		default:
			aname, err := l.parseName()
			if err != nil {
				return nil, err
			}
			value, err := l.parseEq()
			if err != nil {
				return nil, err
			}
			for _, prev := range ev.Attrs {
				if prev.Name == aname {
					return nil, l.errorf("duplicate attribute %q on <%s>", aname, name)
				}
			}
			ev.Attrs = append(ev.Attrs, ParsedAttr{Name: aname, Value: value})
		}
	}
}

func (l *Lexer) parseEndTag() (*Event, error) {
	l.cursor.Advance(2)
	name, err := l.parseName()
	if err != nil {
		return nil, err
	}
	l.skipBlanks()
	if !l.cursor.ConsumePrefix(">") {
		return nil, l.errorf("malformed end tag </%s", name)
	}
	l.depth--
	if l.depth < 0 {
		return nil, l.errorf("unexpected end tag </%s>", name)
	}
	if l.depth == 0 {
		l.state = lexEpilogue
	}
	return &Event{Type: EndElementEvent, Name: name}, nil
}

// parseCharData reads a run of character data, decoding predefined and
// numeric character references in place. A general entity reference
// interrupts the run: the text so far is emitted first and the reference
// follows as its own event.
func (l *Lexer) parseCharData() (*Event, error) {
	var b strings.Builder
	for {
		if l.cursor.Done() {
			break
		}
		c := l.cursor.Peek(1)
		if c == '<' {
			break
		}
		if c != '&' {
			b.WriteRune(c)
			l.cursor.Advance(1)
			continue
		}

		l.cursor.Advance(1)
		if l.cursor.ConsumePrefix("#") {
			n := 1
			for {
				cc := l.cursor.Peek(n)
				if cc == ';' {
					break
				}
				if !l.cursor.HasChars(n) {
					return nil, l.errorf("unterminated character reference")
				}
				n++
			}
			body := l.cursor.Consume(n - 1)
			l.cursor.Advance(1)
			r, err := decodeCharRef("#" + body)
			if err != nil {
				return nil, l.syntaxError(err)
			}
			b.WriteRune(r)
			continue
		}

		name, err := l.parseName()
		if err != nil {
			return nil, err
		}
		if !l.cursor.ConsumePrefix(";") {
			return nil, l.errorf("unterminated entity reference &%s", name)
		}
		if repl, ok := predefEntities[name]; ok {
			b.WriteByte(repl)
			continue
		}
		ref := &Event{Type: EntityRefEvent, Name: name}
		if b.Len() == 0 {
			return ref, nil
		}
		l.pending = append(l.pending, ref)
		break
	}
	return &Event{Type: TextEvent, Data: b.String()}, nil
}
