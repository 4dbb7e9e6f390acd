package argon

// cloneNode copies a node under the same owner document. Shallow clones
// copy local state but not children; deep clones recurse. Clones are
// always mutable and start detached. Document and DocumentType nodes are
// not cloneable and yield nil.
func cloneNode(n Node, deep bool) Node {
	var clone Node
	switch src := n.(type) {
	case *Element:
		e := newElement(nil, "")
		e.name = src.name
		e.prefix = src.prefix
		e.nsURI = src.nsURI
		e.doc = src.doc
		// attributes are copied for both shallow and deep clones
		for key, a := range src.attrs.Range() {
			ac := cloneNode(a, true).(*Attr)
			ac.owner = e
			e.attrs.Set(key, ac)
		}
		clone = e
	case *Attr:
		a := &Attr{specified: true}
		a.name = src.name
		a.prefix = src.prefix
		a.nsURI = src.nsURI
		a.doc = src.doc
		// an attribute's value children always travel with it
		for c := src.firstChild; c != nil; c = c.NextSibling() {
			if cc := cloneNode(c, true); cc != nil {
				link(a, cc, nil)
			}
		}
		return a
	case *Text:
		clone = newText(src.doc, string(src.data))
	case *CDATASection:
		clone = newCDATA(src.doc, string(src.data))
	case *Comment:
		clone = newComment(src.doc, string(src.data))
	case *ProcessingInstruction:
		clone = newPI(src.doc, src.name, src.data)
	case *EntityRef:
		clone = newEntityRef(src.doc, src.name)
	case *Entity:
		ent := newEntity(src.name, src.publicID, src.systemID, src.notationName)
		ent.doc = src.doc
		clone = ent
	case *Notation:
		not := newNotation(src.name, src.publicID, src.systemID)
		not.doc = src.doc
		clone = not
	case *XMLDeclaration:
		decl := &XMLDeclaration{
			version:    src.version,
			encoding:   src.encoding,
			standalone: src.standalone,
		}
		decl.name = "xml"
		decl.doc = src.doc
		clone = decl
	case *DocumentFragment:
		f := &DocumentFragment{}
		f.name = "#document-fragment"
		f.doc = src.doc
		clone = f
	default:
		return nil
	}

	if deep {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			if cc := cloneNode(c, true); cc != nil {
				link(clone, cc, nil)
			}
		}
	}
	return clone
}
