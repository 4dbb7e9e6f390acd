package argon_test

import (
	"testing"

	"github.com/lestrrat-go/argon"
	"github.com/stretchr/testify/require"
)

func TestElementAttributes(t *testing.T) {
	t.Run("SetGet", func(t *testing.T) {
		doc := newDoc(t)
		e, _ := doc.CreateElement("e")

		require.NoError(t, e.SetAttribute("k", "v"))
		require.True(t, e.HasAttribute("k"))
		require.Equal(t, "v", e.GetAttribute("k"))
		require.False(t, e.HasAttribute("missing"))
		require.Equal(t, "", e.GetAttribute("missing"))
	})

	t.Run("EscapeOnRead", func(t *testing.T) {
		doc := newDoc(t)
		e, _ := doc.CreateElement("e")
		require.NoError(t, e.SetAttribute("q", `a & b < c > "d"`))

		a := e.GetAttributeNode("q")
		require.NotNil(t, a)
		require.Equal(t, `a & b < c > "d"`, a.CanonicalValue())

		serialized, ok := a.Value()
		require.True(t, ok)
		require.Equal(t, `a &amp; b &lt; c > &quot;d&quot;`, serialized)
	})

	t.Run("OverwriteKeepsOrder", func(t *testing.T) {
		doc := newDoc(t)
		e, _ := doc.CreateElement("e")
		require.NoError(t, e.SetAttribute("a", "1"))
		require.NoError(t, e.SetAttribute("b", "2"))
		require.NoError(t, e.SetAttribute("a", "3"))

		attrs := e.Attributes()
		require.Len(t, attrs, 2)
		require.Equal(t, "a", attrs[0].Name())
		require.Equal(t, "3", attrs[0].CanonicalValue())
		require.Equal(t, "b", attrs[1].Name())
	})

	t.Run("Remove", func(t *testing.T) {
		doc := newDoc(t)
		e, _ := doc.CreateElement("e")
		require.NoError(t, e.SetAttribute("k", "v"))
		require.NoError(t, e.RemoveAttribute("k"))
		require.False(t, e.HasAttribute("k"))
		// absent removal is not an error
		require.NoError(t, e.RemoveAttribute("k"))
	})

	t.Run("AttributeNodes", func(t *testing.T) {
		doc := newDoc(t)
		e1, _ := doc.CreateElement("e1")
		e2, _ := doc.CreateElement("e2")

		a, err := doc.CreateAttribute("k")
		require.NoError(t, err)
		require.NoError(t, a.SetValue("v"))

		old, err := e1.SetAttributeNode(a)
		require.NoError(t, err)
		require.Nil(t, old)
		require.Equal(t, e1, a.OwnerElement())
		require.Nil(t, a.Parent())

		// an attribute in use elsewhere is rejected
		_, err = e2.SetAttributeNode(a)
		require.ErrorIs(t, err, argon.ErrInUseAttribute)

		removed, err := e1.RemoveAttributeNode(a)
		require.NoError(t, err)
		require.Equal(t, a, removed)
		require.Nil(t, a.OwnerElement())

		_, err = e1.RemoveAttributeNode(a)
		require.ErrorIs(t, err, argon.ErrNotFound)

		// now it can move to the other element
		_, err = e2.SetAttributeNode(a)
		require.NoError(t, err)
	})

	t.Run("NSFamily", func(t *testing.T) {
		doc := newDoc(t)
		e, _ := doc.CreateElement("e")
		require.NoError(t, e.SetAttributeNS("urn:u", "p:k", "v"))

		require.True(t, e.HasAttributeNS("urn:u", "k"))
		require.Equal(t, "v", e.GetAttributeNS("urn:u", "k"))

		a := e.GetAttributeNodeNS("urn:u", "k")
		require.NotNil(t, a)
		require.Equal(t, "p:k", a.Name())
		require.Equal(t, "k", a.LocalName())
		require.Equal(t, "p", a.Prefix())
		require.Equal(t, "urn:u", a.NamespaceURI())

		require.NoError(t, e.RemoveAttributeNS("urn:u", "k"))
		require.False(t, e.HasAttributeNS("urn:u", "k"))
	})

	t.Run("ExpandedNameCollision", func(t *testing.T) {
		doc := newDoc(t)
		e, _ := doc.CreateElement("e")
		require.NoError(t, e.SetAttributeNS("urn:u", "p:k", "1"))
		require.NoError(t, e.SetAttributeNS("urn:u", "q:k", "2"))

		// same expanded name, so a single attribute remains
		require.Len(t, e.Attributes(), 1)
		require.Equal(t, "2", e.GetAttributeNS("urn:u", "k"))
	})
}

func TestGetElementsByTagName(t *testing.T) {
	doc, err := argon.Parse([]byte(`<r><a/><b><a/></b><c/></r>`))
	require.NoError(t, err)

	t.Run("Named", func(t *testing.T) {
		require.Len(t, doc.GetElementsByTagName("a"), 2)
		require.Len(t, doc.GetElementsByTagName("c"), 1)
		require.Len(t, doc.GetElementsByTagName("zzz"), 0)
	})

	t.Run("Wildcard", func(t *testing.T) {
		// r, a, b, a, c
		require.Len(t, doc.GetElementsByTagName("*"), 5)
	})

	t.Run("ScopedToElement", func(t *testing.T) {
		root := doc.DocumentElement()
		bs := root.GetElementsByTagName("b")
		require.Len(t, bs, 1)
		require.Len(t, bs[0].GetElementsByTagName("a"), 1)
	})

	t.Run("SnapshotNotLive", func(t *testing.T) {
		root := doc.DocumentElement()
		snapshot := root.GetElementsByTagName("a")
		extra, err := doc.CreateElement("a")
		require.NoError(t, err)
		require.NoError(t, root.AppendChild(extra))
		require.Len(t, snapshot, 2)
		require.Len(t, root.GetElementsByTagName("a"), 3)
	})
}

func TestDowncasts(t *testing.T) {
	doc := newDoc(t)
	e, _ := doc.CreateElement("e")

	got, err := argon.AsElement(e)
	require.NoError(t, err)
	require.Equal(t, e, got)

	_, err = argon.AsText(e)
	require.ErrorIs(t, err, argon.ErrHierarchyRequest)

	_, err = argon.AsDocument(nil)
	require.ErrorIs(t, err, argon.ErrHierarchyRequest)

	cd, err := argon.AsCharacterData(doc.CreateTextNode("x"))
	require.NoError(t, err)
	require.Equal(t, 1, cd.Length())
}
