package argon

// Standalone is the tristate standalone pseudo-attribute of the xml
// declaration.
type Standalone int

const (
	StandaloneUnspecified Standalone = iota
	StandaloneYes
	StandaloneNo
)

func (s Standalone) String() string {
	switch s {
	case StandaloneYes:
		return "yes"
	case StandaloneNo:
		return "no"
	default:
		return ""
	}
}

// XMLDeclaration models the <?xml …?> declaration. It is a node kind of
// its own but never appears in a child list: documents hold at most one
// through SetXMLDeclaration.
type XMLDeclaration struct {
	treeNode
	version    string
	encoding   string
	standalone Standalone
}

// NewXMLDeclaration creates a declaration. The version must be "1.0" or
// "1.1".
func NewXMLDeclaration(version, encoding string, standalone Standalone) (*XMLDeclaration, error) {
	if version != "1.0" && version != "1.1" {
		return nil, newError(NotSupportedErr, "unsupported XML version %q", version)
	}
	decl := &XMLDeclaration{
		version:    version,
		encoding:   encoding,
		standalone: standalone,
	}
	decl.name = "xml"
	return decl, nil
}

func (decl *XMLDeclaration) Type() NodeType { return XMLDeclNode }

func (decl *XMLDeclaration) Name() string { return "xml" }

func (decl *XMLDeclaration) Value() (string, bool) { return "", false }

func (decl *XMLDeclaration) XMLVersion() string { return decl.version }

func (decl *XMLDeclaration) Encoding() string { return decl.encoding }

func (decl *XMLDeclaration) Standalone() Standalone { return decl.standalone }

func (decl *XMLDeclaration) AppendChild(newChild Node) error {
	return appendChild(decl, newChild)
}

func (decl *XMLDeclaration) InsertBefore(newChild, refChild Node) error {
	return insertBefore(decl, newChild, refChild)
}

func (decl *XMLDeclaration) ReplaceChild(newChild, oldChild Node) (Node, error) {
	return replaceChild(decl, newChild, oldChild)
}

func (decl *XMLDeclaration) RemoveChild(oldChild Node) (Node, error) {
	return removeChild(decl, oldChild)
}

func (decl *XMLDeclaration) CloneNode(deep bool) Node { return cloneNode(decl, deep) }

func (decl *XMLDeclaration) Normalize() {}
