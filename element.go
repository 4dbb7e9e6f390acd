package argon

import (
	"strings"

	"github.com/lestrrat-go/argon/internal/orderedmap"
)

// expandedName is the attribute map key: namespace URI plus local name.
type expandedName struct {
	uri   string
	local string
}

// Element is a named node carrying an unordered attribute map (insertion
// order is preserved for serialization determinism) and arbitrary content
// children.
type Element struct {
	treeNode
	attrs *orderedmap.Map[expandedName, *Attr]
}

func newElement(doc *Document, name string) *Element {
	e := &Element{
		attrs: orderedmap.New[expandedName, *Attr](),
	}
	if doc != nil && doc.opts.HasNamespaces {
		e.prefix, e.name = SplitQName(name)
	} else {
		e.name = name
	}
	e.doc = doc
	return e
}

func (e *Element) Type() NodeType { return ElementNode }

func (e *Element) Name() string { return e.qualifiedName() }

func (e *Element) Value() (string, bool) { return "", false }

// TagName returns the element's qualified name.
func (e *Element) TagName() string { return e.qualifiedName() }

// Attributes returns the element's attributes as a snapshot slice in
// storage order.
func (e *Element) Attributes() []*Attr {
	return e.attrs.Values()
}

// HasAttributes reports whether the element carries any attributes.
func (e *Element) HasAttributes() bool { return e.attrs.Len() > 0 }

// attrByName finds an attribute by its qualified node name.
func (e *Element) attrByName(name string) *Attr {
	for _, a := range e.attrs.Values() {
		if a.Name() == name {
			return a
		}
	}
	return nil
}

// GetAttribute returns the attribute value in its serialized, re-escaped
// form, or the empty string when the attribute is absent.
func (e *Element) GetAttribute(name string) string {
	if a := e.attrByName(name); a != nil {
		v, _ := a.Value()
		return v
	}
	return ""
}

// GetAttributeNS is GetAttribute keyed by expanded name.
func (e *Element) GetAttributeNS(uri, local string) string {
	if a, ok := e.attrs.Get(expandedName{uri: uri, local: local}); ok {
		v, _ := a.Value()
		return v
	}
	return ""
}

// HasAttribute reports whether an attribute with the given qualified name
// is present.
func (e *Element) HasAttribute(name string) bool {
	return e.attrByName(name) != nil
}

// HasAttributeNS reports presence by expanded name.
func (e *Element) HasAttributeNS(uri, local string) bool {
	return e.attrs.Has(expandedName{uri: uri, local: local})
}

// GetAttributeNode returns the attribute node with the given qualified
// name, or nil.
func (e *Element) GetAttributeNode(name string) *Attr {
	return e.attrByName(name)
}

// GetAttributeNodeNS returns the attribute node by expanded name, or nil.
func (e *Element) GetAttributeNodeNS(uri, local string) *Attr {
	a, _ := e.attrs.Get(expandedName{uri: uri, local: local})
	return a
}

// SetAttribute sets an attribute from its raw text value. The value is
// end-of-line normalized and unescaped through the document's entity
// resolver before storage; the attribute is marked specified.
func (e *Element) SetAttribute(name, value string) error {
	if e.readOnly {
		return newError(NoModificationAllowedErr, "element is read-only")
	}
	if a := e.attrByName(name); a != nil {
		return a.SetValue(value)
	}
	if e.doc == nil {
		return newError(InvalidStateErr, "element has no owner document")
	}
	a, err := e.doc.CreateAttribute(name)
	if err != nil {
		return err
	}
	if err := a.SetValue(value); err != nil {
		return err
	}
	_, err = e.SetAttributeNode(a)
	return err
}

// SetAttributeNS sets a namespace-bound attribute from its raw value,
// creating it through CreateAttributeNS when absent.
func (e *Element) SetAttributeNS(uri, qname, value string) error {
	if e.readOnly {
		return newError(NoModificationAllowedErr, "element is read-only")
	}
	if e.doc == nil {
		return newError(InvalidStateErr, "element has no owner document")
	}
	prefix, local := SplitQName(qname)
	if a, ok := e.attrs.Get(expandedName{uri: uri, local: local}); ok {
		a.prefix = prefix
		return a.SetValue(value)
	}
	a, err := e.doc.CreateAttributeNS(uri, qname)
	if err != nil {
		return err
	}
	if err := a.SetValue(value); err != nil {
		return err
	}
	_, err = e.SetAttributeNodeNS(a)
	return err
}

// SetAttributeNode attaches an attribute node, replacing and returning
// any previous attribute with the same name (nil if none). The node must
// belong to this document and to no other element.
func (e *Element) SetAttributeNode(a *Attr) (*Attr, error) {
	return e.setAttributeNode(a, expandedName{uri: a.nsURI, local: a.name})
}

// SetAttributeNodeNS is SetAttributeNode keyed by expanded name.
func (e *Element) SetAttributeNodeNS(a *Attr) (*Attr, error) {
	return e.setAttributeNode(a, expandedName{uri: a.nsURI, local: a.name})
}

func (e *Element) setAttributeNode(a *Attr, key expandedName) (*Attr, error) {
	if e.readOnly {
		return nil, newError(NoModificationAllowedErr, "element is read-only")
	}
	if a == nil {
		return nil, newError(InvalidAccessErr, "nil attribute")
	}
	if a.owner != nil && a.owner != e {
		return nil, newError(InUseAttributeErr, "attribute %s belongs to another element", a.Name())
	}
	if a.doc != nil && e.doc != nil && a.doc != e.doc {
		return nil, newError(WrongDocumentErr, "attribute %s belongs to another document", a.Name())
	}

	var old *Attr
	if prev, ok := e.attrs.Get(key); ok && prev != a {
		prev.owner = nil
		old = prev
		e.attrs.Delete(key)
	}
	e.attrs.Set(key, a)
	a.owner = e
	return old, nil
}

// RemoveAttribute removes the attribute with the given qualified name.
// Removing an absent attribute is not an error.
func (e *Element) RemoveAttribute(name string) error {
	if e.readOnly {
		return newError(NoModificationAllowedErr, "element is read-only")
	}
	if a := e.attrByName(name); a != nil {
		e.attrs.Delete(expandedName{uri: a.nsURI, local: a.name})
		a.owner = nil
	}
	return nil
}

// RemoveAttributeNS removes the attribute with the given expanded name.
func (e *Element) RemoveAttributeNS(uri, local string) error {
	if e.readOnly {
		return newError(NoModificationAllowedErr, "element is read-only")
	}
	if a, ok := e.attrs.Get(expandedName{uri: uri, local: local}); ok {
		e.attrs.Delete(expandedName{uri: uri, local: local})
		a.owner = nil
	}
	return nil
}

// RemoveAttributeNode detaches the given attribute node and returns it.
func (e *Element) RemoveAttributeNode(a *Attr) (*Attr, error) {
	if e.readOnly {
		return nil, newError(NoModificationAllowedErr, "element is read-only")
	}
	if a == nil || a.owner != e {
		return nil, newError(NotFoundErr, "attribute is not attached to this element")
	}
	e.attrs.Delete(expandedName{uri: a.nsURI, local: a.name})
	a.owner = nil
	return a, nil
}

// GetElementsByTagName returns a snapshot of descendant elements whose
// node name matches name ("*" matches all).
func (e *Element) GetElementsByTagName(name string) []*Element {
	return elementsByTagName(e, name)
}

// GetElementsByTagNameNS returns a snapshot of descendant elements
// matching namespace URI and local name, either of which may be "*".
func (e *Element) GetElementsByTagNameNS(uri, local string) []*Element {
	return elementsByTagNameNS(e, uri, local)
}

// declareNamespace adds the xmlns declaration attribute binding prefix to
// uri on this element.
func (e *Element) declareNamespace(prefix, uri string) error {
	name := "xmlns"
	if prefix != "" {
		name = "xmlns:" + prefix
	}
	return e.SetAttributeNS(XMLNSNamespace, name, uri)
}

// isNamespaceDecl reports whether a is an xmlns or xmlns:* declaration,
// and the prefix it declares.
func isNamespaceDecl(a *Attr) (string, bool) {
	name := a.Name()
	if name == "xmlns" {
		return "", true
	}
	if strings.HasPrefix(name, "xmlns:") {
		return name[len("xmlns:"):], true
	}
	return "", false
}

func (e *Element) AppendChild(newChild Node) error {
	return appendChild(e, newChild)
}

func (e *Element) InsertBefore(newChild, refChild Node) error {
	return insertBefore(e, newChild, refChild)
}

func (e *Element) ReplaceChild(newChild, oldChild Node) (Node, error) {
	return replaceChild(e, newChild, oldChild)
}

func (e *Element) RemoveChild(oldChild Node) (Node, error) {
	return removeChild(e, oldChild)
}

func (e *Element) CloneNode(deep bool) Node { return cloneNode(e, deep) }

func (e *Element) Normalize() { normalizeNode(e) }
