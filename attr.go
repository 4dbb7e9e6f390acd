package argon

// Attr is an attribute node. Attributes are never children in the
// child-list sense: Parent is always nil, and the host element is reached
// through OwnerElement. The canonical value, unescaped and end-of-line
// normalized, is stored as Text (and EntityRef) children.
type Attr struct {
	treeNode
	specified bool
	owner     *Element
}

func newAttr(doc *Document, name string) *Attr {
	a := &Attr{specified: true}
	if doc != nil && doc.opts.HasNamespaces {
		a.prefix, a.name = SplitQName(name)
	} else {
		a.name = name
	}
	a.doc = doc
	return a
}

func (a *Attr) Type() NodeType { return AttributeNode }

func (a *Attr) Name() string { return a.qualifiedName() }

// Value returns the attribute value in its serialized form: the stored
// canonical text re-escaped for emission between double quotes.
func (a *Attr) Value() (string, bool) {
	return EscapeAttr(a.CanonicalValue()), true
}

// CanonicalValue returns the stored value: unescaped, end-of-line
// normalized text.
func (a *Attr) CanonicalValue() string {
	return string(a.Content(nil))
}

// SetValue replaces the attribute's content with the given raw text. The
// text is end-of-line normalized and entity references are expanded
// through the document's resolver; the result is stored as a single Text
// child and the attribute is marked specified.
func (a *Attr) SetValue(raw string) error {
	if a.readOnly {
		return newError(NoModificationAllowedErr, "attribute is read-only")
	}
	var resolver EntityResolver
	if a.doc != nil {
		resolver = a.doc.EntityResolver()
	}
	value, err := unescapeText(NormalizeEOL(raw), resolver, true)
	if err != nil {
		return err
	}
	a.setCanonicalValue(value)
	return nil
}

// setCanonicalValue stores an already-normalized, already-unescaped value
// without running the SetValue pipeline again. The builder uses this for
// parsed attributes.
func (a *Attr) setCanonicalValue(value string) {
	for c := a.firstChild; c != nil; c = a.firstChild {
		detach(c)
	}
	link(a, newText(a.doc, value), nil)
	a.specified = true
}

// Specified reports whether the value came from explicit assignment
// rather than a DTD default.
func (a *Attr) Specified() bool { return a.specified }

// OwnerElement returns the element the attribute is attached to, or nil.
func (a *Attr) OwnerElement() *Element { return a.owner }

func (a *Attr) AppendChild(newChild Node) error {
	return appendChild(a, newChild)
}

func (a *Attr) InsertBefore(newChild, refChild Node) error {
	return insertBefore(a, newChild, refChild)
}

func (a *Attr) ReplaceChild(newChild, oldChild Node) (Node, error) {
	return replaceChild(a, newChild, oldChild)
}

func (a *Attr) RemoveChild(oldChild Node) (Node, error) {
	return removeChild(a, oldChild)
}

func (a *Attr) CloneNode(deep bool) Node { return cloneNode(a, deep) }

func (a *Attr) Normalize() { normalizeNode(a) }
