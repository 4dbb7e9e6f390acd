package argon_test

import (
	"testing"

	"github.com/lestrrat-go/argon"
	"github.com/lestrrat-go/argon/s11n"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("SimpleDocument", func(t *testing.T) {
		doc, err := argon.Parse([]byte(`<r><c k='v'/></r>`))
		require.NoError(t, err)

		root := doc.DocumentElement()
		require.Equal(t, "r", root.TagName())

		children := root.ChildNodes()
		require.Len(t, children, 1)
		c, err := argon.AsElement(children[0])
		require.NoError(t, err)
		require.Equal(t, "c", c.TagName())
		require.Equal(t, "v", c.GetAttribute("k"))
		require.False(t, c.HasChildNodes())
	})

	t.Run("XMLDecl", func(t *testing.T) {
		doc, err := argon.Parse([]byte(`<?xml version="1.1" encoding="utf-8" standalone="yes"?><r/>`))
		require.NoError(t, err)

		decl := doc.XMLDeclaration()
		require.NotNil(t, decl)
		require.Equal(t, "1.1", decl.XMLVersion())
		require.Equal(t, "utf-8", decl.Encoding())
		require.Equal(t, argon.StandaloneYes, decl.Standalone())
	})

	t.Run("DoctypeAndSubset", func(t *testing.T) {
		in := `<!DOCTYPE r PUBLIC "pub" "sys" [<!ENTITY greet "hi"><!NOTATION gif PUBLIC "gif-pub">]><r/>`
		doc, err := argon.Parse([]byte(in))
		require.NoError(t, err)

		dt := doc.Doctype()
		require.NotNil(t, dt)
		require.Equal(t, "r", dt.Name())
		require.Equal(t, "pub", dt.PublicID())
		require.Equal(t, "sys", dt.SystemID())

		ent := doc.Entity("greet")
		require.NotNil(t, ent)
		require.Equal(t, "hi", ent.ReplacementText())

		not := doc.Notation("gif")
		require.NotNil(t, not)
		require.Equal(t, "gif-pub", not.PublicID())

		require.True(t, dt.IsReadOnly())
	})

	t.Run("EntityInAttribute", func(t *testing.T) {
		in := `<!DOCTYPE r [<!ENTITY who "world">]><r greet="hello &who;!"/>`
		doc, err := argon.Parse([]byte(in))
		require.NoError(t, err)
		require.Equal(t, "hello world!", doc.DocumentElement().GetAttribute("greet"))
	})

	t.Run("UnknownEntityInAttribute", func(t *testing.T) {
		_, err := argon.Parse([]byte(`<r a="&nope;"/>`))
		require.ErrorIs(t, err, argon.ErrSyntax)
	})

	t.Run("ResolverSuppliesEntities", func(t *testing.T) {
		p := argon.NewParser(argon.WithEntityResolver(
			argon.EntityResolverFunc(func(name string) (string, bool) {
				if name == "nope" {
					return "fine", true
				}
				return "", false
			}),
		))
		doc, err := p.Parse([]byte(`<r a="&nope;"/>`))
		require.NoError(t, err)
		require.Equal(t, "fine", doc.DocumentElement().GetAttribute("a"))
	})

	t.Run("EntityRefInContent", func(t *testing.T) {
		in := `<!DOCTYPE r [<!ENTITY who "world">]><r>hello &who;</r>`
		doc, err := argon.Parse([]byte(in))
		require.NoError(t, err)

		root := doc.DocumentElement()
		children := root.ChildNodes()
		require.Len(t, children, 2)
		require.Equal(t, argon.TextNode, children[0].Type())
		require.Equal(t, argon.EntityRefNode, children[1].Type())
		require.Equal(t, "who", children[1].Name())

		// lazy expansion happens at serialization
		d := s11n.Dumper{}
		got, err := d.DumpDocString(doc)
		require.NoError(t, err)
		require.Equal(t, `<!DOCTYPE r [<!ENTITY who "world">]><r>hello world</r>`, got)
	})

	t.Run("MixedContent", func(t *testing.T) {
		doc, err := argon.Parse([]byte(`<r>one<c/>two<![CDATA[<raw>]]><!--note--><?pi data?></r>`))
		require.NoError(t, err)

		kinds := []argon.NodeType{}
		for _, c := range doc.DocumentElement().ChildNodes() {
			kinds = append(kinds, c.Type())
		}
		require.Equal(t, []argon.NodeType{
			argon.TextNode,
			argon.ElementNode,
			argon.TextNode,
			argon.CDATASectionNode,
			argon.CommentNode,
			argon.ProcessingInstructionNode,
		}, kinds)
	})

	t.Run("CharRefsDecoded", func(t *testing.T) {
		doc, err := argon.Parse([]byte(`<r>&#65;&lt;&#x42;</r>`))
		require.NoError(t, err)
		require.Equal(t, []byte("A<B"), doc.DocumentElement().Content(nil))
	})

	t.Run("SyntaxErrors", func(t *testing.T) {
		for name, in := range map[string]string{
			"MismatchedEndTag":  `<a></b>`,
			"UnclosedElement":   `<a><b></a>`,
			"SecondRoot":        `<a/><b/>`,
			"NoRoot":            `   `,
			"DuplicateAttr":     `<a k="1" k="2"/>`,
			"TextAfterRoot":     `<a/>text`,
			"BadComment":        `<a><!-- -- --></a>`,
			"UnterminatedCDATA": `<a><![CDATA[x</a>`,
		} {
			t.Run(name, func(t *testing.T) {
				_, err := argon.Parse([]byte(in))
				require.ErrorIs(t, err, argon.ErrSyntax, "input %q", in)
			})
		}
	})

	t.Run("RoundTrip", func(t *testing.T) {
		in := `<?xml version="1.0"?><!DOCTYPE r SYSTEM "sys"><r a="1" b="two"><c>text &amp; more</c><!--note--><?pi data?><d/></r>`
		doc, err := argon.Parse([]byte(in))
		require.NoError(t, err)

		d := s11n.Dumper{}
		out, err := d.DumpDocString(doc)
		require.NoError(t, err)
		require.Equal(t, in, out)

		// and the output parses back to the same output
		doc2, err := argon.Parse([]byte(out))
		require.NoError(t, err)
		out2, err := d.DumpDocString(doc2)
		require.NoError(t, err)
		require.Equal(t, out, out2)
	})
}

// sliceTokenizer feeds a fixed event sequence to the builder, standing in
// for an external tokenizer.
type sliceTokenizer struct {
	events []*argon.Event
	pos    int
}

func (s *sliceTokenizer) Next() (*argon.Event, error) {
	if s.pos >= len(s.events) {
		return nil, errEOF{}
	}
	ev := s.events[s.pos]
	s.pos++
	return ev, nil
}

type errEOF struct{}

func (errEOF) Error() string { return "EOF" }

func TestParseTokens(t *testing.T) {
	t.Run("ExternalTokenizer", func(t *testing.T) {
		tok := &sliceTokenizer{events: []*argon.Event{
			{Type: argon.StartDocumentEvent},
			{Type: argon.StartElementEvent, Name: "r", Attrs: []argon.ParsedAttr{{Name: "k", Value: "v"}}},
			{Type: argon.TextEvent, Data: "hi"},
			{Type: argon.EndElementEvent, Name: "r"},
			{Type: argon.EndDocumentEvent},
		}}
		doc, err := argon.NewParser().ParseTokens(tok)
		require.NoError(t, err)
		require.Equal(t, "r", doc.DocumentElement().TagName())
		require.Equal(t, "v", doc.DocumentElement().GetAttribute("k"))
	})

	t.Run("DoctypeAfterElement", func(t *testing.T) {
		tok := &sliceTokenizer{events: []*argon.Event{
			{Type: argon.StartDocumentEvent},
			{Type: argon.StartElementEvent, Name: "r"},
			{Type: argon.EndElementEvent, Name: "r"},
			{Type: argon.DoctypeEvent, Name: "r"},
			{Type: argon.EndDocumentEvent},
		}}
		_, err := argon.NewParser().ParseTokens(tok)
		require.ErrorIs(t, err, argon.ErrSyntax)
	})

	t.Run("MissingStartDocument", func(t *testing.T) {
		tok := &sliceTokenizer{events: []*argon.Event{
			{Type: argon.StartElementEvent, Name: "r"},
		}}
		_, err := argon.NewParser().ParseTokens(tok)
		require.ErrorIs(t, err, argon.ErrSyntax)
	})

	t.Run("MismatchedEndEvent", func(t *testing.T) {
		tok := &sliceTokenizer{events: []*argon.Event{
			{Type: argon.StartDocumentEvent},
			{Type: argon.StartElementEvent, Name: "a"},
			{Type: argon.EndElementEvent, Name: "b"},
		}}
		_, err := argon.NewParser().ParseTokens(tok)
		require.ErrorIs(t, err, argon.ErrSyntax)
	})
}

func TestKeepBlanks(t *testing.T) {
	in := []byte("<r>\n  <c/>\n</r>")

	doc, err := argon.Parse(in)
	require.NoError(t, err)
	require.Len(t, doc.DocumentElement().ChildNodes(), 3)

	p := argon.NewParser(argon.WithKeepBlanks(false))
	doc, err = p.Parse(in)
	require.NoError(t, err)
	require.Len(t, doc.DocumentElement().ChildNodes(), 1)
}
