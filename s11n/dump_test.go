package s11n_test

import (
	"testing"

	"github.com/lestrrat-go/argon"
	"github.com/lestrrat-go/argon/s11n"
	"github.com/stretchr/testify/require"
)

func dump(t *testing.T, doc *argon.Document) string {
	t.Helper()
	d := s11n.Dumper{}
	out, err := d.DumpDocString(doc)
	require.NoError(t, err)
	return out
}

func TestDumpDoc(t *testing.T) {
	t.Run("Element", func(t *testing.T) {
		doc, err := argon.Implementation().CreateDocument("", "root", nil)
		require.NoError(t, err)
		require.Equal(t, `<root/>`, dump(t, doc))

		child, err := doc.CreateElement("child")
		require.NoError(t, err)
		require.NoError(t, doc.DocumentElement().AppendChild(child))
		require.Equal(t, `<root><child/></root>`, dump(t, doc))
	})

	t.Run("AttributeOrderAndEscaping", func(t *testing.T) {
		doc, err := argon.Implementation().CreateDocument("", "r", nil)
		require.NoError(t, err)
		root := doc.DocumentElement()
		require.NoError(t, root.SetAttribute("b", `2 & "two"`))
		require.NoError(t, root.SetAttribute("a", "1"))

		require.Equal(t, `<r b="2 &amp; &quot;two&quot;" a="1"/>`, dump(t, doc))
	})

	t.Run("TextEscaping", func(t *testing.T) {
		doc, err := argon.Implementation().CreateDocument("", "r", nil)
		require.NoError(t, err)
		root := doc.DocumentElement()
		require.NoError(t, root.AppendChild(doc.CreateTextNode(`a & b < c > d`)))

		require.Equal(t, `<r>a &amp; b &lt; c &gt; d</r>`, dump(t, doc))
	})

	t.Run("CDATACommentPI", func(t *testing.T) {
		doc, err := argon.Implementation().CreateDocument("", "r", nil)
		require.NoError(t, err)
		root := doc.DocumentElement()

		cd, err := doc.CreateCDATASection("a < b")
		require.NoError(t, err)
		require.NoError(t, root.AppendChild(cd))
		require.NoError(t, root.AppendChild(doc.CreateComment("note")))
		pi, err := doc.CreateProcessingInstruction("target", "data")
		require.NoError(t, err)
		require.NoError(t, root.AppendChild(pi))

		require.Equal(t, `<r><![CDATA[a < b]]><!--note--><?target data?></r>`, dump(t, doc))
	})

	t.Run("XMLDeclaration", func(t *testing.T) {
		doc, err := argon.Implementation().CreateDocument("", "r", nil)
		require.NoError(t, err)
		decl, err := argon.NewXMLDeclaration("1.1", "utf-8", argon.StandaloneYes)
		require.NoError(t, err)
		require.NoError(t, doc.SetXMLDeclaration(decl))

		require.Equal(t, `<?xml version="1.1" encoding="utf-8" standalone="yes"?><r/>`, dump(t, doc))
	})

	t.Run("DeclarationDisallowed", func(t *testing.T) {
		opts := argon.DefaultOptions()
		opts.HasDeclaration = false
		doc, err := argon.Implementation().CreateDocumentWithOptions("", "r", nil, opts)
		require.NoError(t, err)

		decl, err := argon.NewXMLDeclaration("1.0", "", argon.StandaloneUnspecified)
		require.NoError(t, err)
		err = doc.SetXMLDeclaration(decl)
		require.ErrorIs(t, err, argon.ErrNotSupported)
	})

	t.Run("DoctypeForms", func(t *testing.T) {
		impl := argon.Implementation()

		dt, err := impl.CreateDocumentType("r", "", "sys-only")
		require.NoError(t, err)
		doc, err := impl.CreateDocument("", "r", dt)
		require.NoError(t, err)
		require.Equal(t, `<!DOCTYPE r SYSTEM "sys-only"><r/>`, dump(t, doc))

		dt, err = impl.CreateDocumentType("r", "pub-only", "")
		require.NoError(t, err)
		doc, err = impl.CreateDocument("", "r", dt)
		require.NoError(t, err)
		require.Equal(t, `<!DOCTYPE r PUBLIC "pub-only"><r/>`, dump(t, doc))
	})

	t.Run("UnknownEntityRefStaysLiteral", func(t *testing.T) {
		doc, err := argon.Implementation().CreateDocument("", "r", nil)
		require.NoError(t, err)
		ref, err := doc.CreateEntityReference("mystery")
		require.NoError(t, err)
		require.NoError(t, doc.DocumentElement().AppendChild(ref))

		require.Equal(t, `<r>&mystery;</r>`, dump(t, doc))
	})

	t.Run("ResolverExpandsEntityRef", func(t *testing.T) {
		doc, err := argon.Implementation().CreateDocument("", "r", nil)
		require.NoError(t, err)
		doc.SetEntityResolver(argon.EntityResolverFunc(func(name string) (string, bool) {
			if name == "mystery" {
				return "a < b", true
			}
			return "", false
		}))
		ref, err := doc.CreateEntityReference("mystery")
		require.NoError(t, err)
		require.NoError(t, doc.DocumentElement().AppendChild(ref))

		require.Equal(t, `<r>a &lt; b</r>`, dump(t, doc))
	})
}
