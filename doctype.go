package argon

import "github.com/lestrrat-go/argon/internal/orderedmap"

// DocumentType models the <!DOCTYPE …> declaration: the document type
// name, external identifiers, the raw internal subset text, and the
// entities and notations the subset declares. The node and everything
// reachable from it are read-only once construction completes.
type DocumentType struct {
	treeNode
	publicID       string
	systemID       string
	internalSubset string
	entities       *orderedmap.Map[string, *Entity]
	notations      *orderedmap.Map[string, *Notation]
}

func newDocumentType(qname, publicID, systemID string) *DocumentType {
	dt := &DocumentType{
		publicID:  publicID,
		systemID:  systemID,
		entities:  orderedmap.New[string, *Entity](),
		notations: orderedmap.New[string, *Notation](),
	}
	dt.name = qname
	return dt
}

func (dt *DocumentType) Type() NodeType { return DocumentTypeNode }

func (dt *DocumentType) Name() string { return dt.name }

func (dt *DocumentType) Value() (string, bool) { return "", false }

func (dt *DocumentType) PublicID() string { return dt.publicID }

func (dt *DocumentType) SystemID() string { return dt.systemID }

// InternalSubset returns the internal subset as a string, without the
// enclosing brackets.
func (dt *DocumentType) InternalSubset() string { return dt.internalSubset }

// Entities returns the declared general entities in declaration order.
func (dt *DocumentType) Entities() []*Entity { return dt.entities.Values() }

// Notations returns the declared notations in declaration order.
func (dt *DocumentType) Notations() []*Notation { return dt.notations.Values() }

// Entity returns the entity declared under name, or nil.
func (dt *DocumentType) Entity(name string) *Entity {
	ent, _ := dt.entities.Get(name)
	return ent
}

// Notation returns the notation declared under name, or nil.
func (dt *DocumentType) Notation(name string) *Notation {
	not, _ := dt.notations.Get(name)
	return not
}

// addEntity registers an entity during construction. The first
// declaration of a name wins, matching XML entity-declaration precedence.
func (dt *DocumentType) addEntity(ent *Entity) error {
	if dt.readOnly {
		return newError(NoModificationAllowedErr, "document type is read-only")
	}
	if dt.entities.Has(ent.name) {
		return nil
	}
	dt.entities.Set(ent.name, ent)
	return nil
}

func (dt *DocumentType) addNotation(not *Notation) error {
	if dt.readOnly {
		return newError(NoModificationAllowedErr, "document type is read-only")
	}
	if dt.notations.Has(not.name) {
		return nil
	}
	dt.notations.Set(not.name, not)
	return nil
}

// seal marks the doctype and everything reachable from it read-only.
func (dt *DocumentType) seal() {
	markReadOnly(dt)
	for _, ent := range dt.entities.Values() {
		markReadOnly(ent)
	}
	for _, not := range dt.notations.Values() {
		markReadOnly(not)
	}
}

func (dt *DocumentType) AppendChild(newChild Node) error {
	return appendChild(dt, newChild)
}

func (dt *DocumentType) InsertBefore(newChild, refChild Node) error {
	return insertBefore(dt, newChild, refChild)
}

func (dt *DocumentType) ReplaceChild(newChild, oldChild Node) (Node, error) {
	return replaceChild(dt, newChild, oldChild)
}

func (dt *DocumentType) RemoveChild(oldChild Node) (Node, error) {
	return removeChild(dt, oldChild)
}

// CloneNode is not supported for document types and returns nil.
func (dt *DocumentType) CloneNode(bool) Node { return nil }

func (dt *DocumentType) Normalize() {}

// markReadOnly flags n and its subtree as rejecting mutation.
func markReadOnly(n Node) {
	_ = Walk(n, func(cur Node) error {
		cur.getTreeNode().readOnly = true
		return nil
	})
}

// Entity models a parsed or unparsed general entity declaration. The
// replacement children of a parsed entity are read-only.
type Entity struct {
	treeNode
	publicID     string
	systemID     string
	notationName string
}

func newEntity(name, publicID, systemID, notationName string) *Entity {
	ent := &Entity{
		publicID:     publicID,
		systemID:     systemID,
		notationName: notationName,
	}
	ent.name = name
	return ent
}

func (ent *Entity) Type() NodeType { return EntityNode }

func (ent *Entity) Name() string { return ent.name }

func (ent *Entity) Value() (string, bool) { return "", false }

func (ent *Entity) PublicID() string { return ent.publicID }

func (ent *Entity) SystemID() string { return ent.systemID }

// NotationName returns the notation named by an unparsed entity
// declaration, or the empty string for parsed entities.
func (ent *Entity) NotationName() string { return ent.notationName }

// ReplacementText returns the concatenated text of the entity's
// replacement children.
func (ent *Entity) ReplacementText() string {
	return string(ent.Content(nil))
}

func (ent *Entity) AppendChild(newChild Node) error {
	return appendChild(ent, newChild)
}

func (ent *Entity) InsertBefore(newChild, refChild Node) error {
	return insertBefore(ent, newChild, refChild)
}

func (ent *Entity) ReplaceChild(newChild, oldChild Node) (Node, error) {
	return replaceChild(ent, newChild, oldChild)
}

func (ent *Entity) RemoveChild(oldChild Node) (Node, error) {
	return removeChild(ent, oldChild)
}

func (ent *Entity) CloneNode(deep bool) Node { return cloneNode(ent, deep) }

func (ent *Entity) Normalize() {}

// Notation models a <!NOTATION …> declaration.
type Notation struct {
	treeNode
	publicID string
	systemID string
}

func newNotation(name, publicID, systemID string) *Notation {
	not := &Notation{
		publicID: publicID,
		systemID: systemID,
	}
	not.name = name
	return not
}

func (not *Notation) Type() NodeType { return NotationNode }

func (not *Notation) Name() string { return not.name }

func (not *Notation) Value() (string, bool) { return "", false }

func (not *Notation) PublicID() string { return not.publicID }

func (not *Notation) SystemID() string { return not.systemID }

func (not *Notation) AppendChild(newChild Node) error {
	return appendChild(not, newChild)
}

func (not *Notation) InsertBefore(newChild, refChild Node) error {
	return insertBefore(not, newChild, refChild)
}

func (not *Notation) ReplaceChild(newChild, oldChild Node) (Node, error) {
	return replaceChild(not, newChild, oldChild)
}

func (not *Notation) RemoveChild(oldChild Node) (Node, error) {
	return removeChild(not, oldChild)
}

func (not *Notation) CloneNode(deep bool) Node { return cloneNode(not, deep) }

func (not *Notation) Normalize() {}
