package argon

// DocumentFragment is a lightweight container. Inserting a fragment into
// a parent splices the fragment's children in order and leaves the
// fragment empty; the fragment itself never enters a child list.
type DocumentFragment struct {
	treeNode
}

func (f *DocumentFragment) Type() NodeType { return DocumentFragmentNode }

func (f *DocumentFragment) Name() string { return "#document-fragment" }

func (f *DocumentFragment) Value() (string, bool) { return "", false }

func (f *DocumentFragment) AppendChild(newChild Node) error {
	return appendChild(f, newChild)
}

func (f *DocumentFragment) InsertBefore(newChild, refChild Node) error {
	return insertBefore(f, newChild, refChild)
}

func (f *DocumentFragment) ReplaceChild(newChild, oldChild Node) (Node, error) {
	return replaceChild(f, newChild, oldChild)
}

func (f *DocumentFragment) RemoveChild(oldChild Node) (Node, error) {
	return removeChild(f, oldChild)
}

func (f *DocumentFragment) CloneNode(deep bool) Node { return cloneNode(f, deep) }

func (f *DocumentFragment) Normalize() { normalizeNode(f) }
