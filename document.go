package argon

// Document is the root of an XML tree and the factory for every node that
// lives in it. A Document's owner document is itself.
type Document struct {
	treeNode
	opts     ProcessingOptions
	resolver EntityResolver
	docElem  *Element
	doctype  *DocumentType
	decl     *XMLDeclaration
}

// NewDocument creates an empty document with the given processing options.
// Most callers want Implementation().CreateDocument instead, which can
// create the root element and attach a doctype in one step.
func NewDocument(opts ProcessingOptions) *Document {
	doc := &Document{opts: opts}
	doc.treeNode.doc = doc
	return doc
}

func (d *Document) Type() NodeType { return DocumentNode }

func (d *Document) Name() string { return "#document" }

func (d *Document) Value() (string, bool) { return "", false }

func (d *Document) LocalName() string { return "#document" }

// Options returns the processing options the document was created with.
func (d *Document) Options() ProcessingOptions { return d.opts }

// DocumentElement returns the root element, or nil if none is attached.
func (d *Document) DocumentElement() *Element { return d.docElem }

// Doctype returns the document type node, or nil.
func (d *Document) Doctype() *DocumentType { return d.doctype }

// Implementation returns the factory that produced this document.
func (d *Document) Implementation() *DOMImplementation { return Implementation() }

// XMLDeclaration returns the xml declaration, or nil.
func (d *Document) XMLDeclaration() *XMLDeclaration { return d.decl }

// SetXMLDeclaration attaches an xml declaration to the document. It fails
// with NotSupported when the document's options disallow declarations.
func (d *Document) SetXMLDeclaration(decl *XMLDeclaration) error {
	if !d.opts.HasDeclaration {
		return newError(NotSupportedErr, "document does not allow an xml declaration")
	}
	if decl != nil {
		decl.getTreeNode().doc = d
	}
	d.decl = decl
	return nil
}

// SetEntityResolver installs the resolver used for entities that are not
// declared in the document's internal subset.
func (d *Document) SetEntityResolver(r EntityResolver) { d.resolver = r }

// EntityResolver returns the resolver in effect for this document: the
// internal subset first, then any caller-supplied resolver.
func (d *Document) EntityResolver() EntityResolver { return docResolver{doc: d} }

// Entity returns the entity declared under name in the doctype, or nil.
func (d *Document) Entity(name string) *Entity {
	if d.doctype == nil {
		return nil
	}
	ent, _ := d.doctype.entities.Get(name)
	return ent
}

// Notation returns the notation declared under name in the doctype, or nil.
func (d *Document) Notation(name string) *Notation {
	if d.doctype == nil {
		return nil
	}
	not, _ := d.doctype.notations.Get(name)
	return not
}

// refreshCaches rescans the child list for the document element and
// doctype after a mutation.
func (d *Document) refreshCaches() {
	d.docElem = nil
	d.doctype = nil
	for c := d.firstChild; c != nil; c = c.NextSibling() {
		switch cur := c.(type) {
		case *Element:
			if d.docElem == nil {
				d.docElem = cur
			}
		case *DocumentType:
			if d.doctype == nil {
				d.doctype = cur
			}
		}
	}
}

// CreateElement creates an unattached element. The name is validated
// against the Name production (QName when namespace semantics are on).
func (d *Document) CreateElement(name string) (*Element, error) {
	if d.opts.HasNamespaces {
		if err := checkQName(name); err != nil {
			return nil, err
		}
	} else if err := checkName(name); err != nil {
		return nil, err
	}
	e := newElement(d, name)
	return e, nil
}

// CreateElementNS creates an unattached element bound to the given
// namespace. The qualified name must be a valid QName and agree with the
// URI: the xml prefix only with the XML namespace, no prefix with an
// empty URI.
func (d *Document) CreateElementNS(uri, qname string) (*Element, error) {
	prefix, local, err := d.checkNamespaceName(uri, qname)
	if err != nil {
		return nil, err
	}
	e := newElement(d, local)
	e.prefix = prefix
	e.nsURI = uri
	if d.opts.AddNamespaces && uri != "" {
		if err := e.declareNamespace(prefix, uri); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// CreateAttribute creates an unattached attribute with no value.
func (d *Document) CreateAttribute(name string) (*Attr, error) {
	if d.opts.HasNamespaces {
		if err := checkQName(name); err != nil {
			return nil, err
		}
	} else if err := checkName(name); err != nil {
		return nil, err
	}
	return newAttr(d, name), nil
}

// CreateAttributeNS creates an unattached namespace-bound attribute.
func (d *Document) CreateAttributeNS(uri, qname string) (*Attr, error) {
	prefix, local, err := d.checkNamespaceName(uri, qname)
	if err != nil {
		return nil, err
	}
	a := newAttr(d, local)
	a.prefix = prefix
	a.nsURI = uri
	return a, nil
}

// checkNamespaceName validates a (uri, qname) pair for the *NS factories.
func (d *Document) checkNamespaceName(uri, qname string) (prefix, local string, err error) {
	if err := checkQName(qname); err != nil {
		return "", "", err
	}
	prefix, local = SplitQName(qname)
	if !d.opts.HasNamespaces {
		return prefix, local, nil
	}
	if prefix != "" && uri == "" {
		return "", "", newError(NamespaceErr, "prefix %q requires a namespace URI", prefix)
	}
	if prefix == "xml" && uri != XMLNamespace {
		return "", "", newError(NamespaceErr, "the xml prefix is bound to %q", XMLNamespace)
	}
	if (prefix == "xmlns" || (prefix == "" && local == "xmlns")) && uri != XMLNSNamespace {
		return "", "", newError(NamespaceErr, "the xmlns prefix is bound to %q", XMLNSNamespace)
	}
	if uri == XMLNSNamespace && prefix != "xmlns" && local != "xmlns" {
		return "", "", newError(NamespaceErr, "%q is reserved for xmlns", XMLNSNamespace)
	}
	return prefix, local, nil
}

// CreateTextNode creates an unattached text node.
func (d *Document) CreateTextNode(data string) *Text {
	return newText(d, data)
}

// CreateCDATASection creates an unattached CDATA section.
func (d *Document) CreateCDATASection(data string) (*CDATASection, error) {
	return newCDATA(d, data), nil
}

// CreateComment creates an unattached comment.
func (d *Document) CreateComment(data string) *Comment {
	return newComment(d, data)
}

// CreateProcessingInstruction creates an unattached processing
// instruction. The target is validated against the Name production.
func (d *Document) CreateProcessingInstruction(target, data string) (*ProcessingInstruction, error) {
	if err := checkName(target); err != nil {
		return nil, err
	}
	return newPI(d, target, data), nil
}

// CreateEntityReference creates an unattached entity reference. If the
// entity is declared in the doctype, the reference's children are a
// read-only copy of the entity's replacement children.
func (d *Document) CreateEntityReference(name string) (*EntityRef, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	ref := newEntityRef(d, name)
	if ent := d.Entity(name); ent != nil {
		for c := ent.FirstChild(); c != nil; c = c.NextSibling() {
			clone := cloneNode(c, true)
			if clone == nil {
				continue
			}
			link(ref, clone, nil)
		}
		markReadOnly(ref)
		ref.readOnly = false // the reference itself can still be moved
	}
	return ref, nil
}

// CreateDocumentFragment creates an empty fragment.
func (d *Document) CreateDocumentFragment() *DocumentFragment {
	f := &DocumentFragment{}
	f.name = "#document-fragment"
	f.doc = d
	return f
}

// GetElementsByTagName returns a snapshot, in document order, of all
// descendant elements whose node name matches name ("*" matches every
// element).
func (d *Document) GetElementsByTagName(name string) []*Element {
	return elementsByTagName(d, name)
}

// GetElementsByTagNameNS returns a snapshot of all descendant elements
// matching the namespace URI and local name; "*" wildcards either.
func (d *Document) GetElementsByTagNameNS(uri, local string) []*Element {
	return elementsByTagNameNS(d, uri, local)
}

// GetElementByID returns nil: without schema awareness the document
// cannot know which attributes are IDs.
func (d *Document) GetElementByID(string) *Element { return nil }

// ImportNode copies a node from another document, with this document as
// the owner of the copy. Document and DocumentType nodes cannot be
// imported.
func (d *Document) ImportNode(source Node, deep bool) (Node, error) {
	if source == nil {
		return nil, newError(InvalidAccessErr, "nil node")
	}
	switch source.Type() {
	case DocumentNode, DocumentTypeNode:
		return nil, newError(NotSupportedErr, "%s nodes cannot be imported", source.Type())
	}
	clone := cloneNode(source, deep)
	if clone == nil {
		return nil, newError(NotSupportedErr, "%s nodes cannot be imported", source.Type())
	}
	setOwnerDocument(clone, d)
	return clone, nil
}

func (d *Document) AppendChild(newChild Node) error {
	return appendChild(d, newChild)
}

func (d *Document) InsertBefore(newChild, refChild Node) error {
	return insertBefore(d, newChild, refChild)
}

func (d *Document) ReplaceChild(newChild, oldChild Node) (Node, error) {
	return replaceChild(d, newChild, oldChild)
}

func (d *Document) RemoveChild(oldChild Node) (Node, error) {
	return removeChild(d, oldChild)
}

// CloneNode is not supported for documents and returns nil.
func (d *Document) CloneNode(bool) Node { return nil }

func (d *Document) Normalize() { normalizeNode(d) }

// elementsByTagName collects matching descendant elements of root.
func elementsByTagName(root Node, name string) []*Element {
	var out []*Element
	_ = Walk(root, func(n Node) error {
		if e, ok := n.(*Element); ok && n != root {
			if name == "*" || e.TagName() == name {
				out = append(out, e)
			}
		}
		return nil
	})
	return out
}

func elementsByTagNameNS(root Node, uri, local string) []*Element {
	var out []*Element
	_ = Walk(root, func(n Node) error {
		if e, ok := n.(*Element); ok && n != root {
			if (uri == "*" || e.nsURI == uri) && (local == "*" || e.name == local) {
				out = append(out, e)
			}
		}
		return nil
	})
	return out
}
