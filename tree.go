package argon

// The tree mutation engine. All child-list surgery goes through the
// package functions below; the per-kind AppendChild/InsertBefore/
// ReplaceChild/RemoveChild methods are thin wrappers so that the functions
// always receive the containing node, not an embedded treeNode.

// allowedChild is the kind-compatibility table for child-list insertion.
func allowedChild(parent, child NodeType) bool {
	switch parent {
	case DocumentNode:
		switch child {
		case ElementNode, ProcessingInstructionNode, CommentNode, DocumentTypeNode:
			return true
		}
	case DocumentFragmentNode, ElementNode, EntityRefNode, EntityNode:
		switch child {
		case ElementNode, TextNode, CDATASectionNode, CommentNode,
			ProcessingInstructionNode, EntityRefNode:
			return true
		}
	case AttributeNode:
		switch child {
		case TextNode, EntityRefNode:
			return true
		}
	}
	return false
}

// isSelfOrAncestor reports whether candidate is n or an ancestor of n.
func isSelfOrAncestor(candidate, n Node) bool {
	for cur := n; cur != nil; cur = cur.Parent() {
		if cur == candidate {
			return true
		}
	}
	return false
}

// precedes reports whether a comes before b in the sibling order of their
// shared parent.
func precedes(a, b Node) bool {
	for cur := a.NextSibling(); cur != nil; cur = cur.NextSibling() {
		if cur == b {
			return true
		}
	}
	return false
}

// checkInsert validates the cross-cutting preconditions for placing
// newChild under parent, before ref (ref may be nil for append).
func checkInsert(parent, newChild, ref Node) error {
	if newChild == nil {
		return newError(InvalidAccessErr, "nil child")
	}
	if parent.IsReadOnly() {
		return newError(NoModificationAllowedErr, "%s node is read-only", parent.Type())
	}
	if isSelfOrAncestor(newChild, parent) {
		return newError(InvalidModificationErr, "inserting %s would create a cycle", newChild.Name())
	}
	if cdoc := newChild.OwnerDocument(); cdoc != nil && cdoc != parent.OwnerDocument() {
		return newError(WrongDocumentErr, "%s belongs to another document", newChild.Name())
	}

	incoming := []Node{newChild}
	if newChild.Type() == DocumentFragmentNode {
		// a fragment splices its children; the fragment itself never
		// enters a child list
		incoming = incoming[:0]
		for c := newChild.FirstChild(); c != nil; c = c.NextSibling() {
			incoming = append(incoming, c)
		}
	}

	doc, isDoc := parent.(*Document)
	var pendingElem, pendingDoctype int
	for _, c := range incoming {
		k := c.Type()
		if !allowedChild(parent.Type(), k) {
			return newError(HierarchyRequestErr, "%s node cannot contain %s child", parent.Type(), k)
		}
		if !isDoc {
			continue
		}
		switch k {
		case ElementNode:
			if (doc.docElem != nil && Node(doc.docElem) != c) || pendingElem > 0 {
				return newError(HierarchyRequestErr, "document already has a document element")
			}
			if doc.doctype != nil {
				// the new element must land after the doctype
				if ref != nil && (ref == doc.doctype || precedes(ref, doc.doctype)) {
					return newError(HierarchyRequestErr, "document element must follow the document type")
				}
			}
			pendingElem++
		case DocumentTypeNode:
			if (doc.doctype != nil && Node(doc.doctype) != c) || pendingDoctype > 0 {
				return newError(HierarchyRequestErr, "document already has a document type")
			}
			if doc.docElem != nil {
				// the doctype must land before the document element
				if ref == nil || (ref != doc.docElem && !precedes(ref, doc.docElem)) {
					return newError(HierarchyRequestErr, "document type must precede the document element")
				}
			}
			pendingDoctype++
		}
	}
	return nil
}

// detach unlinks n from its parent's child list. The owner document is
// unchanged; only the parent back-reference and sibling links are cleared.
func detach(n Node) {
	tn := n.getTreeNode()
	parent := tn.parent
	if parent == nil {
		return
	}
	pt := parent.getTreeNode()
	if pt.firstChild == n {
		pt.firstChild = tn.next
	}
	if pt.lastChild == n {
		pt.lastChild = tn.prev
	}
	if tn.prev != nil {
		tn.prev.getTreeNode().next = tn.next
	}
	if tn.next != nil {
		tn.next.getTreeNode().prev = tn.prev
	}
	tn.parent = nil
	tn.next = nil
	tn.prev = nil

	if doc, ok := parent.(*Document); ok {
		doc.refreshCaches()
	}
}

// link wires newChild into parent's child list immediately before ref
// (append when ref is nil). Precondition checks have already passed.
func link(parent, newChild, ref Node) {
	pt := parent.getTreeNode()
	ct := newChild.getTreeNode()
	ct.parent = parent

	if ref == nil {
		if last := pt.lastChild; last != nil {
			last.getTreeNode().next = newChild
			ct.prev = last
		} else {
			pt.firstChild = newChild
		}
		pt.lastChild = newChild
	} else {
		rt := ref.getTreeNode()
		ct.next = ref
		ct.prev = rt.prev
		if rt.prev != nil {
			rt.prev.getTreeNode().next = newChild
		} else {
			pt.firstChild = newChild
		}
		rt.prev = newChild
	}

	if ct.doc == nil {
		setOwnerDocument(newChild, parent.OwnerDocument())
	}
	if doc, ok := parent.(*Document); ok {
		doc.refreshCaches()
	}
}

// setOwnerDocument sets the owner document of n and its whole subtree.
func setOwnerDocument(n Node, doc *Document) {
	_ = Walk(n, func(cur Node) error {
		cur.getTreeNode().doc = doc
		return nil
	})
	if dt, ok := n.(*DocumentType); ok {
		for _, ent := range dt.entities.Values() {
			setOwnerDocument(ent, doc)
		}
		for _, not := range dt.notations.Values() {
			setOwnerDocument(not, doc)
		}
	}
}

func insertBefore(parent, newChild, ref Node) error {
	if ref != nil && ref.Parent() != parent {
		return newError(NotFoundErr, "reference node is not a child of %s", parent.Name())
	}
	if newChild == ref {
		return nil
	}
	if err := checkInsert(parent, newChild, ref); err != nil {
		return err
	}

	if newChild.Type() == DocumentFragmentNode {
		for c := newChild.FirstChild(); c != nil; c = newChild.FirstChild() {
			detach(c)
			link(parent, c, ref)
		}
		return nil
	}

	detach(newChild)
	link(parent, newChild, ref)
	return nil
}

func appendChild(parent, newChild Node) error {
	return insertBefore(parent, newChild, nil)
}

func removeChild(parent, oldChild Node) (Node, error) {
	if oldChild == nil {
		return nil, newError(InvalidAccessErr, "nil child")
	}
	if parent.IsReadOnly() {
		return nil, newError(NoModificationAllowedErr, "%s node is read-only", parent.Type())
	}
	if oldChild.Parent() != parent {
		return nil, newError(NotFoundErr, "%s is not a child of %s", oldChild.Name(), parent.Name())
	}
	detach(oldChild)
	return oldChild, nil
}

func replaceChild(parent, newChild, oldChild Node) (Node, error) {
	if oldChild == nil || newChild == nil {
		return nil, newError(InvalidAccessErr, "nil child")
	}
	if oldChild.Parent() != parent {
		return nil, newError(NotFoundErr, "%s is not a child of %s", oldChild.Name(), parent.Name())
	}
	if newChild == oldChild {
		return oldChild, nil
	}

	next := oldChild.NextSibling()
	if _, err := removeChild(parent, oldChild); err != nil {
		return nil, err
	}
	if err := insertBefore(parent, newChild, next); err != nil {
		// restore the original child so the failure leaves the tree intact
		link(parent, oldChild, next)
		return nil, err
	}
	return oldChild, nil
}

// normalizeNode merges adjacent Text children of n into single Text nodes,
// removes empty Text children, and recurses through element descendants.
func normalizeNode(n Node) {
	var prevText *Text
	c := n.FirstChild()
	for c != nil {
		next := c.NextSibling()
		switch cur := c.(type) {
		case *Text:
			if len(cur.data) == 0 {
				detach(cur)
			} else if prevText != nil {
				prevText.data = append(prevText.data, cur.data...)
				detach(cur)
			} else {
				prevText = cur
			}
		case *Element:
			prevText = nil
			normalizeNode(cur)
		default:
			prevText = nil
		}
		c = next
	}
}
