package argon

// ProcessingInstruction carries a target name and an uninterpreted data
// string.
type ProcessingInstruction struct {
	treeNode
	data string
}

func newPI(doc *Document, target, data string) *ProcessingInstruction {
	pi := &ProcessingInstruction{data: data}
	pi.name = target
	pi.doc = doc
	return pi
}

func (pi *ProcessingInstruction) Type() NodeType { return ProcessingInstructionNode }

func (pi *ProcessingInstruction) Name() string { return pi.name }

func (pi *ProcessingInstruction) Value() (string, bool) { return pi.data, true }

// Target returns the instruction's target name.
func (pi *ProcessingInstruction) Target() string { return pi.name }

// Data returns the instruction's data string.
func (pi *ProcessingInstruction) Data() string { return pi.data }

// SetData replaces the instruction's data string.
func (pi *ProcessingInstruction) SetData(data string) error {
	if pi.readOnly {
		return newError(NoModificationAllowedErr, "node is read-only")
	}
	pi.data = data
	return nil
}

func (pi *ProcessingInstruction) Content(dst []byte) []byte {
	return append(dst, pi.data...)
}

func (pi *ProcessingInstruction) AppendChild(newChild Node) error {
	return appendChild(pi, newChild)
}

func (pi *ProcessingInstruction) InsertBefore(newChild, refChild Node) error {
	return insertBefore(pi, newChild, refChild)
}

func (pi *ProcessingInstruction) ReplaceChild(newChild, oldChild Node) (Node, error) {
	return replaceChild(pi, newChild, oldChild)
}

func (pi *ProcessingInstruction) RemoveChild(oldChild Node) (Node, error) {
	return removeChild(pi, oldChild)
}

func (pi *ProcessingInstruction) CloneNode(deep bool) Node { return cloneNode(pi, deep) }

func (pi *ProcessingInstruction) Normalize() {}
