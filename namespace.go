package argon

// Namespace URIs with fixed, non-redeclarable prefixes.
const (
	XMLNamespace   = "http://www.w3.org/XML/1998/namespace"
	XMLNSNamespace = "http://www.w3.org/2000/xmlns/"
)

// nearestElement returns the element whose scope governs n: the node
// itself for elements, the owner element for attributes, and otherwise
// the closest element ancestor.
func nearestElement(n Node) *Element {
	if a, ok := n.(*Attr); ok {
		return a.owner
	}
	for cur := n; cur != nil; cur = cur.Parent() {
		if e, ok := cur.(*Element); ok {
			return e
		}
	}
	return nil
}

// LookupNamespaceURI resolves prefix to a namespace URI by walking from n
// up through its element ancestors, examining xmlns and xmlns:* attribute
// declarations. The empty prefix resolves the default namespace. The xml
// and xmlns prefixes always resolve to their fixed URIs. Resolution
// reports false when the prefix is undeclared, or when namespace
// semantics are disabled by the document's options.
func LookupNamespaceURI(n Node, prefix string) (string, bool) {
	switch prefix {
	case "xml":
		return XMLNamespace, true
	case "xmlns":
		return XMLNSNamespace, true
	}
	if n == nil || !n.getTreeNode().options().HasNamespaces {
		return "", false
	}

	target := "xmlns"
	if prefix != "" {
		target = "xmlns:" + prefix
	}
	for e := nearestElement(n); e != nil; e = nearestElement(e.Parent()) {
		for _, a := range e.attrs.Values() {
			if a.Name() != target {
				continue
			}
			uri := a.CanonicalValue()
			if uri == "" {
				// an empty declaration un-declares the prefix
				return "", false
			}
			return uri, true
		}
	}
	return "", false
}

// LookupPrefix finds a prefix bound to uri and in effect at n, preferring
// the closest declaration; the empty prefix denotes the default
// namespace. A candidate binding shadowed by a closer redeclaration of
// the same prefix is skipped.
func LookupPrefix(n Node, uri string) (string, bool) {
	if uri == "" {
		return "", false
	}
	switch uri {
	case XMLNamespace:
		return "xml", true
	case XMLNSNamespace:
		return "xmlns", true
	}
	if n == nil || !n.getTreeNode().options().HasNamespaces {
		return "", false
	}

	start := nearestElement(n)
	for e := start; e != nil; e = nearestElement(e.Parent()) {
		for _, a := range e.attrs.Values() {
			prefix, ok := isNamespaceDecl(a)
			if !ok || a.CanonicalValue() != uri {
				continue
			}
			if effective, ok := LookupNamespaceURI(start, prefix); ok && effective == uri {
				return prefix, true
			}
		}
	}
	return "", false
}

// LookupNamespaceURI resolves prefix in the scope of this element.
func (e *Element) LookupNamespaceURI(prefix string) (string, bool) {
	return LookupNamespaceURI(e, prefix)
}

// LookupPrefix finds a prefix for uri in the scope of this element.
func (e *Element) LookupPrefix(uri string) (string, bool) {
	return LookupPrefix(e, uri)
}

// NormalizeMappings rewrites the xmlns declarations in the subtree rooted
// at e so that every descendant's effective prefix and namespace URI is
// declared on an ancestor within the subtree, removing declarations made
// redundant by an identical one in scope. Conflicting declarations keep
// the closest one.
func (e *Element) NormalizeMappings() error {
	if e.doc != nil && !e.doc.opts.HasNamespaces {
		return nil
	}
	return normalizeMappings(e, map[string]string{})
}

func normalizeMappings(e *Element, scope map[string]string) error {
	// copy-on-write scope for this subtree
	local := make(map[string]string, len(scope))
	for k, v := range scope {
		local[k] = v
	}

	// drop redundant declarations, record the rest
	for _, a := range e.Attributes() {
		prefix, ok := isNamespaceDecl(a)
		if !ok {
			continue
		}
		uri := a.CanonicalValue()
		if bound, ok := local[prefix]; ok && bound == uri {
			if _, err := e.RemoveAttributeNode(a); err != nil {
				return err
			}
			continue
		}
		local[prefix] = uri
	}

	// the element's own binding must be declared in the subtree
	if e.nsURI != "" && local[e.prefix] != e.nsURI {
		if err := e.declareNamespace(e.prefix, e.nsURI); err != nil {
			return err
		}
		local[e.prefix] = e.nsURI
	}

	// prefixed attributes need their bindings too
	for _, a := range e.Attributes() {
		if _, ok := isNamespaceDecl(a); ok {
			continue
		}
		if a.nsURI == "" || a.prefix == "" || a.nsURI == XMLNamespace {
			continue
		}
		if local[a.prefix] != a.nsURI {
			if err := e.declareNamespace(a.prefix, a.nsURI); err != nil {
				return err
			}
			local[a.prefix] = a.nsURI
		}
	}

	for c := e.FirstChild(); c != nil; c = c.NextSibling() {
		if child, ok := c.(*Element); ok {
			if err := normalizeMappings(child, local); err != nil {
				return err
			}
		}
	}
	return nil
}
