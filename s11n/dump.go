// Package s11n serializes argon documents back to XML 1.1 text.
//
// The output grammar is deterministic: attributes are emitted in storage
// order separated by single spaces and quoted with double quotes,
// elements without children use the self-closing form, and no
// pretty-printing whitespace is inserted.
package s11n

import (
	"bytes"
	"io"

	"github.com/lestrrat-go/argon"
)

type Dumper struct{}

// DumpDoc writes the document: the xml declaration if present, then the
// children (doctype, root element, top-level comments and PIs) in order.
func (d *Dumper) DumpDoc(out io.Writer, doc *argon.Document) error {
	if decl := doc.XMLDeclaration(); decl != nil {
		if err := d.dumpXMLDecl(out, decl); err != nil {
			return err
		}
	}
	for c := doc.FirstChild(); c != nil; c = c.NextSibling() {
		if err := d.DumpNode(out, c); err != nil {
			return err
		}
	}
	return nil
}

// DumpDocString renders the document to a string.
func (d *Dumper) DumpDocString(doc *argon.Document) (string, error) {
	var buf bytes.Buffer
	if err := d.DumpDoc(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// DumpNode writes a single node and its subtree.
func (d *Dumper) DumpNode(out io.Writer, n argon.Node) error {
	switch n.Type() {
	case argon.DocumentNode:
		doc, err := argon.AsDocument(n)
		if err != nil {
			return err
		}
		return d.DumpDoc(out, doc)
	case argon.ElementNode:
		e, err := argon.AsElement(n)
		if err != nil {
			return err
		}
		return d.dumpElement(out, e)
	case argon.TextNode:
		data, _ := n.Value()
		return writeString(out, argon.EscapeText(data))
	case argon.CDATASectionNode:
		data, _ := n.Value()
		if err := writeString(out, "<![CDATA["); err != nil {
			return err
		}
		if err := writeString(out, data); err != nil {
			return err
		}
		return writeString(out, "]]>")
	case argon.CommentNode:
		data, _ := n.Value()
		if err := writeString(out, "<!--"); err != nil {
			return err
		}
		if err := writeString(out, data); err != nil {
			return err
		}
		return writeString(out, "-->")
	case argon.ProcessingInstructionNode:
		pi, err := argon.AsProcessingInstruction(n)
		if err != nil {
			return err
		}
		return d.dumpPI(out, pi)
	case argon.DocumentTypeNode:
		dt, err := argon.AsDocumentType(n)
		if err != nil {
			return err
		}
		return d.dumpDoctype(out, dt)
	case argon.AttributeNode:
		a, err := argon.AsAttr(n)
		if err != nil {
			return err
		}
		return d.dumpAttr(out, a)
	case argon.EntityRefNode:
		return d.dumpEntityRef(out, n)
	case argon.DocumentFragmentNode:
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			if err := d.DumpNode(out, c); err != nil {
				return err
			}
		}
		return nil
	case argon.XMLDeclNode:
		decl, err := argon.AsXMLDeclaration(n)
		if err != nil {
			return err
		}
		return d.dumpXMLDecl(out, decl)
	default:
		return nil
	}
}

func (d *Dumper) dumpElement(out io.Writer, e *argon.Element) error {
	if err := writeString(out, "<"+e.TagName()); err != nil {
		return err
	}
	for _, a := range e.Attributes() {
		if err := writeString(out, " "); err != nil {
			return err
		}
		if err := d.dumpAttr(out, a); err != nil {
			return err
		}
	}

	if !e.HasChildNodes() {
		return writeString(out, "/>")
	}
	if err := writeString(out, ">"); err != nil {
		return err
	}
	for c := e.FirstChild(); c != nil; c = c.NextSibling() {
		if err := d.DumpNode(out, c); err != nil {
			return err
		}
	}
	return writeString(out, "</"+e.TagName()+">")
}

func (d *Dumper) dumpAttr(out io.Writer, a *argon.Attr) error {
	value, _ := a.Value()
	return writeString(out, a.Name()+`="`+value+`"`)
}

func (d *Dumper) dumpPI(out io.Writer, pi *argon.ProcessingInstruction) error {
	if err := writeString(out, "<?"+pi.Target()); err != nil {
		return err
	}
	if data := pi.Data(); data != "" {
		if err := writeString(out, " "+data); err != nil {
			return err
		}
	}
	return writeString(out, "?>")
}

func (d *Dumper) dumpXMLDecl(out io.Writer, decl *argon.XMLDeclaration) error {
	if err := writeString(out, `<?xml version="`+decl.XMLVersion()+`"`); err != nil {
		return err
	}
	if enc := decl.Encoding(); enc != "" {
		if err := writeString(out, ` encoding="`+enc+`"`); err != nil {
			return err
		}
	}
	if sa := decl.Standalone(); sa != argon.StandaloneUnspecified {
		if err := writeString(out, ` standalone="`+sa.String()+`"`); err != nil {
			return err
		}
	}
	return writeString(out, "?>")
}

func (d *Dumper) dumpDoctype(out io.Writer, dt *argon.DocumentType) error {
	if err := writeString(out, "<!DOCTYPE "+dt.Name()); err != nil {
		return err
	}
	if pub := dt.PublicID(); pub != "" {
		if err := writeString(out, " PUBLIC "); err != nil {
			return err
		}
		if err := writeQuoted(out, pub); err != nil {
			return err
		}
	}
	if sys := dt.SystemID(); sys != "" {
		if err := writeString(out, " SYSTEM "); err != nil {
			return err
		}
		if err := writeQuoted(out, sys); err != nil {
			return err
		}
	}
	if subset := dt.InternalSubset(); subset != "" {
		if err := writeString(out, " ["+subset+"]"); err != nil {
			return err
		}
	}
	return writeString(out, ">")
}

// dumpEntityRef expands an entity reference lazily: the document's
// resolver is asked for replacement text, then any replacement children
// copied at creation are used, and an unresolvable reference is written
// back literally.
func (d *Dumper) dumpEntityRef(out io.Writer, n argon.Node) error {
	name := n.Name()
	if doc := n.OwnerDocument(); doc != nil {
		if repl, ok := doc.EntityResolver().Resolve(name); ok {
			return writeString(out, argon.EscapeText(repl))
		}
	}
	if n.HasChildNodes() {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			if err := d.DumpNode(out, c); err != nil {
				return err
			}
		}
		return nil
	}
	return writeString(out, "&"+name+";")
}
