package argon

// CharacterData is the operation surface shared by the textual node
// kinds: Text, CDATASection, and Comment.
type CharacterData interface {
	Node
	Data() string
	SetData(string) error
	Length() int
	SubstringData(offset, count int) (string, error)
	AppendData(data string) error
	InsertData(offset int, data string) error
	DeleteData(offset, count int) error
	ReplaceData(offset, count int, data string) error
}

// charData is the shared state and operation surface of the textual node
// kinds. All indices are in Unicode code points, not bytes; out-of-range
// indices fail with IndexSize.
type charData struct {
	treeNode
	data []byte
}

// Data returns the node's text.
func (n *charData) Data() string { return string(n.data) }

// SetData replaces the node's text.
func (n *charData) SetData(data string) error {
	if n.readOnly {
		return newError(NoModificationAllowedErr, "node is read-only")
	}
	n.data = []byte(data)
	return nil
}

// Length returns the number of code points in the data.
func (n *charData) Length() int { return len([]rune(string(n.data))) }

// SubstringData returns count code points starting at offset. An offset
// past the end, or a negative offset or count, fails with IndexSize.
func (n *charData) SubstringData(offset, count int) (string, error) {
	runes := []rune(string(n.data))
	if offset < 0 || count < 0 || offset > len(runes) {
		return "", newError(IndexSizeErr, "offset %d, count %d out of range for length %d", offset, count, len(runes))
	}
	end := offset + count
	if end > len(runes) {
		end = len(runes)
	}
	return string(runes[offset:end]), nil
}

// AppendData appends text to the node.
func (n *charData) AppendData(data string) error {
	if n.readOnly {
		return newError(NoModificationAllowedErr, "node is read-only")
	}
	n.data = append(n.data, data...)
	return nil
}

// InsertData inserts text at the given code-point offset.
func (n *charData) InsertData(offset int, data string) error {
	if n.readOnly {
		return newError(NoModificationAllowedErr, "node is read-only")
	}
	runes := []rune(string(n.data))
	if offset < 0 || offset > len(runes) {
		return newError(IndexSizeErr, "offset %d out of range for length %d", offset, len(runes))
	}
	out := make([]rune, 0, len(runes)+len(data))
	out = append(out, runes[:offset]...)
	out = append(out, []rune(data)...)
	out = append(out, runes[offset:]...)
	n.data = []byte(string(out))
	return nil
}

// DeleteData removes count code points starting at offset. A count
// reaching past the end deletes through the end.
func (n *charData) DeleteData(offset, count int) error {
	if n.readOnly {
		return newError(NoModificationAllowedErr, "node is read-only")
	}
	runes := []rune(string(n.data))
	if offset < 0 || count < 0 || offset > len(runes) {
		return newError(IndexSizeErr, "offset %d, count %d out of range for length %d", offset, count, len(runes))
	}
	end := offset + count
	if end > len(runes) {
		end = len(runes)
	}
	n.data = []byte(string(append(runes[:offset:offset], runes[end:]...)))
	return nil
}

// ReplaceData replaces count code points starting at offset with data.
func (n *charData) ReplaceData(offset, count int, data string) error {
	if err := n.DeleteData(offset, count); err != nil {
		return err
	}
	return n.InsertData(offset, data)
}

func (n *charData) Content(dst []byte) []byte {
	return append(dst, n.data...)
}

// Text is a text node.
type Text struct {
	charData
}

func newText(doc *Document, data string) *Text {
	t := &Text{}
	t.name = "#text"
	t.data = []byte(data)
	t.doc = doc
	return t
}

func (t *Text) Type() NodeType { return TextNode }

func (t *Text) Name() string { return "#text" }

func (t *Text) Value() (string, bool) { return string(t.data), true }

// SplitText splits the node at the given code-point offset, keeping the
// first part in place and returning a new node holding the remainder. If
// the node is attached, the new node is inserted as the next sibling.
func (t *Text) SplitText(offset int) (*Text, error) {
	if t.readOnly {
		return nil, newError(NoModificationAllowedErr, "node is read-only")
	}
	runes := []rune(string(t.data))
	if offset < 0 || offset > len(runes) {
		return nil, newError(IndexSizeErr, "offset %d out of range for length %d", offset, len(runes))
	}
	rest := newText(t.doc, string(runes[offset:]))
	t.data = []byte(string(runes[:offset]))
	if parent := t.parent; parent != nil {
		if err := insertBefore(parent, rest, t.next); err != nil {
			return nil, err
		}
	}
	return rest, nil
}

func (t *Text) AppendChild(newChild Node) error { return appendChild(t, newChild) }
func (t *Text) InsertBefore(newChild, refChild Node) error {
	return insertBefore(t, newChild, refChild)
}
func (t *Text) ReplaceChild(newChild, oldChild Node) (Node, error) {
	return replaceChild(t, newChild, oldChild)
}
func (t *Text) RemoveChild(oldChild Node) (Node, error) { return removeChild(t, oldChild) }
func (t *Text) CloneNode(deep bool) Node                { return cloneNode(t, deep) }
func (t *Text) Normalize()                              {}

// CDATASection is a CDATA section node.
type CDATASection struct {
	charData
}

func newCDATA(doc *Document, data string) *CDATASection {
	c := &CDATASection{}
	c.name = "#cdata-section"
	c.data = []byte(data)
	c.doc = doc
	return c
}

func (c *CDATASection) Type() NodeType { return CDATASectionNode }

func (c *CDATASection) Name() string { return "#cdata-section" }

func (c *CDATASection) Value() (string, bool) { return string(c.data), true }

func (c *CDATASection) AppendChild(newChild Node) error { return appendChild(c, newChild) }
func (c *CDATASection) InsertBefore(newChild, refChild Node) error {
	return insertBefore(c, newChild, refChild)
}
func (c *CDATASection) ReplaceChild(newChild, oldChild Node) (Node, error) {
	return replaceChild(c, newChild, oldChild)
}
func (c *CDATASection) RemoveChild(oldChild Node) (Node, error) { return removeChild(c, oldChild) }
func (c *CDATASection) CloneNode(deep bool) Node                { return cloneNode(c, deep) }
func (c *CDATASection) Normalize()                              {}

// Comment is a comment node.
type Comment struct {
	charData
}

func newComment(doc *Document, data string) *Comment {
	c := &Comment{}
	c.name = "#comment"
	c.data = []byte(data)
	c.doc = doc
	return c
}

func (c *Comment) Type() NodeType { return CommentNode }

func (c *Comment) Name() string { return "#comment" }

func (c *Comment) Value() (string, bool) { return string(c.data), true }

func (c *Comment) AppendChild(newChild Node) error { return appendChild(c, newChild) }
func (c *Comment) InsertBefore(newChild, refChild Node) error {
	return insertBefore(c, newChild, refChild)
}
func (c *Comment) ReplaceChild(newChild, oldChild Node) (Node, error) {
	return replaceChild(c, newChild, oldChild)
}
func (c *Comment) RemoveChild(oldChild Node) (Node, error) { return removeChild(c, oldChild) }
func (c *Comment) CloneNode(deep bool) Node                { return cloneNode(c, deep) }
func (c *Comment) Normalize()                              {}
