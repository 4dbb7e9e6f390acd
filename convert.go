package argon

// Total down-casts from the opaque Node handle to the typed kinds. Each
// checks the kind tag and fails with HierarchyRequest when it disagrees,
// so callers get a typed error rather than a panic or a silent nil.

func castErr(want string, n Node) error {
	if n == nil {
		return newError(HierarchyRequestErr, "nil node is not a %s", want)
	}
	return newError(HierarchyRequestErr, "%s node is not a %s", n.Type(), want)
}

func AsDocument(n Node) (*Document, error) {
	if d, ok := n.(*Document); ok {
		return d, nil
	}
	return nil, castErr("document", n)
}

func AsElement(n Node) (*Element, error) {
	if e, ok := n.(*Element); ok {
		return e, nil
	}
	return nil, castErr("element", n)
}

func AsAttr(n Node) (*Attr, error) {
	if a, ok := n.(*Attr); ok {
		return a, nil
	}
	return nil, castErr("attribute", n)
}

func AsText(n Node) (*Text, error) {
	if t, ok := n.(*Text); ok {
		return t, nil
	}
	return nil, castErr("text", n)
}

func AsCDATASection(n Node) (*CDATASection, error) {
	if c, ok := n.(*CDATASection); ok {
		return c, nil
	}
	return nil, castErr("cdata-section", n)
}

func AsComment(n Node) (*Comment, error) {
	if c, ok := n.(*Comment); ok {
		return c, nil
	}
	return nil, castErr("comment", n)
}

// AsCharacterData accepts any of the textual kinds: Text, CDATASection,
// or Comment.
func AsCharacterData(n Node) (CharacterData, error) {
	if cd, ok := n.(CharacterData); ok {
		return cd, nil
	}
	return nil, castErr("character-data", n)
}

func AsProcessingInstruction(n Node) (*ProcessingInstruction, error) {
	if pi, ok := n.(*ProcessingInstruction); ok {
		return pi, nil
	}
	return nil, castErr("processing-instruction", n)
}

func AsDocumentType(n Node) (*DocumentType, error) {
	if dt, ok := n.(*DocumentType); ok {
		return dt, nil
	}
	return nil, castErr("document-type", n)
}

func AsEntity(n Node) (*Entity, error) {
	if ent, ok := n.(*Entity); ok {
		return ent, nil
	}
	return nil, castErr("entity", n)
}

func AsEntityRef(n Node) (*EntityRef, error) {
	if ref, ok := n.(*EntityRef); ok {
		return ref, nil
	}
	return nil, castErr("entity-reference", n)
}

func AsNotation(n Node) (*Notation, error) {
	if not, ok := n.(*Notation); ok {
		return not, nil
	}
	return nil, castErr("notation", n)
}

func AsDocumentFragment(n Node) (*DocumentFragment, error) {
	if f, ok := n.(*DocumentFragment); ok {
		return f, nil
	}
	return nil, castErr("document-fragment", n)
}

func AsXMLDeclaration(n Node) (*XMLDeclaration, error) {
	if decl, ok := n.(*XMLDeclaration); ok {
		return decl, nil
	}
	return nil, castErr("xml-declaration", n)
}
