package argon

import "strings"

// DOMImplementation is the factory for documents and document types. It
// carries no state; Implementation returns the process-wide instance.
type DOMImplementation struct{}

var implementation DOMImplementation

// Implementation returns the DOMImplementation singleton.
func Implementation() *DOMImplementation {
	return &implementation
}

// HasFeature reports support for a named feature: "XML" and "Core" at
// version "2.0", or with no version.
func (*DOMImplementation) HasFeature(name, version string) bool {
	switch strings.ToLower(name) {
	case "xml", "core":
	default:
		return false
	}
	return version == "" || version == "2.0"
}

// CreateDocumentType creates an unattached document type node. The
// qualified name is validated; the entity and notation maps start empty
// and the node is sealed read-only.
func (*DOMImplementation) CreateDocumentType(qname, publicID, systemID string) (*DocumentType, error) {
	if err := checkQName(qname); err != nil {
		return nil, err
	}
	dt := newDocumentType(qname, publicID, systemID)
	dt.seal()
	return dt, nil
}

// CreateDocument creates a document with DefaultOptions. When qname is
// non-empty a root element is created with the given namespace binding
// and attached; when doctype is non-nil it is attached before the root.
// A doctype that already belongs to a document fails with WrongDocument;
// a qname/URI mismatch fails with Namespace.
func (impl *DOMImplementation) CreateDocument(uri, qname string, doctype *DocumentType) (*Document, error) {
	return impl.CreateDocumentWithOptions(uri, qname, doctype, DefaultOptions())
}

// CreateDocumentWithOptions is CreateDocument carrying an explicit
// processing-options record.
func (*DOMImplementation) CreateDocumentWithOptions(uri, qname string, doctype *DocumentType, opts ProcessingOptions) (*Document, error) {
	doc := NewDocument(opts)

	if doctype != nil {
		if doctype.OwnerDocument() != nil || doctype.Parent() != nil {
			return nil, newError(WrongDocumentErr, "document type already belongs to a document")
		}
		setOwnerDocument(doctype, doc)
		if err := appendChild(doc, doctype); err != nil {
			return nil, err
		}
	}

	if qname == "" && uri != "" {
		return nil, newError(NamespaceErr, "a namespace URI requires a qualified name")
	}
	if qname != "" {
		root, err := doc.CreateElementNS(uri, qname)
		if err != nil {
			return nil, err
		}
		if err := appendChild(doc, root); err != nil {
			return nil, err
		}
	}
	return doc, nil
}
