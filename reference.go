package argon

// EntityRef is a reference to a general entity. When the entity is
// declared in the doctype at creation time, the reference holds a
// read-only copy of the replacement children; otherwise it is empty and
// may be expanded lazily at serialization through the entity resolver.
type EntityRef struct {
	treeNode
}

func newEntityRef(doc *Document, name string) *EntityRef {
	ref := &EntityRef{}
	ref.name = name
	ref.doc = doc
	return ref
}

func (ref *EntityRef) Type() NodeType { return EntityRefNode }

func (ref *EntityRef) Name() string { return ref.name }

func (ref *EntityRef) Value() (string, bool) { return "", false }

func (ref *EntityRef) AppendChild(newChild Node) error {
	return appendChild(ref, newChild)
}

func (ref *EntityRef) InsertBefore(newChild, refChild Node) error {
	return insertBefore(ref, newChild, refChild)
}

func (ref *EntityRef) ReplaceChild(newChild, oldChild Node) (Node, error) {
	return replaceChild(ref, newChild, oldChild)
}

func (ref *EntityRef) RemoveChild(oldChild Node) (Node, error) {
	return removeChild(ref, oldChild)
}

func (ref *EntityRef) CloneNode(deep bool) Node { return cloneNode(ref, deep) }

func (ref *EntityRef) Normalize() {}
