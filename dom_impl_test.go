package argon_test

import (
	"testing"

	"github.com/lestrrat-go/argon"
	"github.com/lestrrat-go/argon/s11n"
	"github.com/stretchr/testify/require"
)

func TestImplementation(t *testing.T) {
	impl := argon.Implementation()

	t.Run("Singleton", func(t *testing.T) {
		require.Same(t, impl, argon.Implementation())
	})

	t.Run("HasFeature", func(t *testing.T) {
		require.True(t, impl.HasFeature("XML", "2.0"))
		require.True(t, impl.HasFeature("Core", "2.0"))
		require.True(t, impl.HasFeature("xml", ""))
		require.True(t, impl.HasFeature("core", ""))
		require.False(t, impl.HasFeature("XML", "3.0"))
		require.False(t, impl.HasFeature("HTML", "2.0"))
	})

	t.Run("CreateDocumentType", func(t *testing.T) {
		dt, err := impl.CreateDocumentType("root", "pub", "sys")
		require.NoError(t, err)
		require.Equal(t, "root", dt.Name())
		require.Equal(t, "pub", dt.PublicID())
		require.Equal(t, "sys", dt.SystemID())
		require.Nil(t, dt.Parent())
		require.True(t, dt.IsReadOnly())

		_, err = impl.CreateDocumentType("not a name", "", "")
		require.ErrorIs(t, err, argon.ErrInvalidCharacter)
	})

	t.Run("CreateDocumentWithRoot", func(t *testing.T) {
		doc, err := impl.CreateDocument("urn:u", "p:root", nil)
		require.NoError(t, err)
		root := doc.DocumentElement()
		require.NotNil(t, root)
		require.Equal(t, "p:root", root.TagName())
		require.Equal(t, "urn:u", root.NamespaceURI())
		require.Equal(t, doc, root.OwnerDocument())
	})

	t.Run("DoctypeInAnotherDocument", func(t *testing.T) {
		dt, err := impl.CreateDocumentType("root", "", "")
		require.NoError(t, err)
		_, err = impl.CreateDocument("", "root", dt)
		require.NoError(t, err)

		// the doctype now belongs to the first document
		_, err = impl.CreateDocument("", "root", dt)
		require.ErrorIs(t, err, argon.ErrWrongDocument)
	})

	t.Run("NamespaceMismatch", func(t *testing.T) {
		_, err := impl.CreateDocument("urn:not-xml", "xml:root", nil)
		require.ErrorIs(t, err, argon.ErrNamespace)

		_, err = impl.CreateDocument("urn:u", "", nil)
		require.ErrorIs(t, err, argon.ErrNamespace)
	})
}

func TestBuildXHTMLSkeleton(t *testing.T) {
	impl := argon.Implementation()

	dt, err := impl.CreateDocumentType(
		"html",
		"-//W3C//DTD XHTML 1.0 Transitional//EN",
		"http://www.w3.org/TR/xhtml1/DTD/xhtml1-transitional.dtd",
	)
	require.NoError(t, err)

	doc, err := impl.CreateDocument("http://www.w3.org/1999/xhtml", "html", dt)
	require.NoError(t, err)

	root := doc.DocumentElement()
	require.NoError(t, root.SetAttribute("lang", "en"))

	head, err := doc.CreateElement("head")
	require.NoError(t, err)
	require.NoError(t, root.AppendChild(head))

	body, err := doc.CreateElement("body")
	require.NoError(t, err)
	require.NoError(t, root.AppendChild(body))

	d := s11n.Dumper{}
	got, err := d.DumpDocString(doc)
	require.NoError(t, err)
	require.Equal(t,
		`<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Transitional//EN" SYSTEM "http://www.w3.org/TR/xhtml1/DTD/xhtml1-transitional.dtd"><html lang="en"><head/><body/></html>`,
		got,
	)
}
