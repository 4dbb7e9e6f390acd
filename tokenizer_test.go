package argon_test

import (
	"io"
	"testing"

	"github.com/lestrrat-go/argon"
	"github.com/stretchr/testify/require"
)

func collectEvents(t *testing.T, in string) []*argon.Event {
	t.Helper()
	lex := argon.NewLexer([]byte(in))
	var events []*argon.Event
	for {
		ev, err := lex.Next()
		require.NoError(t, err)
		events = append(events, ev)
		if ev.Type == argon.EndDocumentEvent {
			break
		}
	}
	// past the end the lexer reports EOF
	_, err := lex.Next()
	require.ErrorIs(t, err, io.EOF)
	return events
}

func eventTypes(events []*argon.Event) []argon.EventType {
	types := make([]argon.EventType, 0, len(events))
	for _, ev := range events {
		types = append(types, ev.Type)
	}
	return types
}

func TestLexer(t *testing.T) {
	t.Run("EventSequence", func(t *testing.T) {
		events := collectEvents(t, `<?xml version="1.0"?><!DOCTYPE r><r a="1">x<c/></r><!--done-->`)
		require.Equal(t, []argon.EventType{
			argon.StartDocumentEvent,
			argon.XMLDeclEvent,
			argon.DoctypeEvent,
			argon.StartElementEvent,
			argon.TextEvent,
			argon.StartElementEvent,
			argon.EndElementEvent,
			argon.EndElementEvent,
			argon.CommentEvent,
			argon.EndDocumentEvent,
		}, eventTypes(events))
	})

	t.Run("XMLDeclFields", func(t *testing.T) {
		events := collectEvents(t, `<?xml version="1.1" encoding="UTF-8" standalone="no"?><r/>`)
		decl := events[1]
		require.Equal(t, argon.XMLDeclEvent, decl.Type)
		require.Equal(t, "1.1", decl.Version)
		require.Equal(t, "UTF-8", decl.Encoding)
		require.Equal(t, argon.StandaloneNo, decl.Standalone)
	})

	t.Run("DoctypeExternalID", func(t *testing.T) {
		for _, in := range []string{
			`<!DOCTYPE r PUBLIC "pub" "sys"><r/>`,
			`<!DOCTYPE r PUBLIC "pub" SYSTEM "sys"><r/>`,
		} {
			events := collectEvents(t, in)
			dt := events[1]
			require.Equal(t, argon.DoctypeEvent, dt.Type)
			require.Equal(t, "r", dt.Name)
			require.Equal(t, "pub", dt.PublicID)
			require.Equal(t, "sys", dt.SystemID)
		}
	})

	t.Run("InternalSubset", func(t *testing.T) {
		in := `<!DOCTYPE r [
			<!ENTITY a "alpha">
			<!ENTITY pic SYSTEM "pic.gif" NDATA gif>
			<!NOTATION gif PUBLIC "gif-pub" "gif-sys">
			<!ELEMENT r (#PCDATA)>
		]><r/>`
		events := collectEvents(t, in)
		dt := events[1]

		require.Len(t, dt.Entities, 2)
		require.Equal(t, "a", dt.Entities[0].Name)
		require.Equal(t, "alpha", dt.Entities[0].Value)
		require.Equal(t, "pic", dt.Entities[1].Name)
		require.Equal(t, "pic.gif", dt.Entities[1].SystemID)
		require.Equal(t, "gif", dt.Entities[1].NotationName)

		require.Len(t, dt.Notations, 1)
		require.Equal(t, "gif", dt.Notations[0].Name)
		require.Equal(t, "gif-pub", dt.Notations[0].PublicID)
		require.Equal(t, "gif-sys", dt.Notations[0].SystemID)

		require.Contains(t, dt.InternalSubset, `<!ENTITY a "alpha">`)
	})

	t.Run("Attributes", func(t *testing.T) {
		events := collectEvents(t, `<r one="1" two='2'/>`)
		start := events[1]
		require.Equal(t, argon.StartElementEvent, start.Type)
		require.Equal(t, []argon.ParsedAttr{
			{Name: "one", Value: "1"},
			{Name: "two", Value: "2"},
		}, start.Attrs)
	})

	t.Run("PredefinedRefsDecodedInText", func(t *testing.T) {
		events := collectEvents(t, `<r>a&lt;b&#33;</r>`)
		require.Equal(t, argon.TextEvent, events[2].Type)
		require.Equal(t, "a<b!", events[2].Data)
	})

	t.Run("GeneralEntityBecomesEvent", func(t *testing.T) {
		events := collectEvents(t, `<r>a&foo;b</r>`)
		require.Equal(t, []argon.EventType{
			argon.StartDocumentEvent,
			argon.StartElementEvent,
			argon.TextEvent,
			argon.EntityRefEvent,
			argon.TextEvent,
			argon.EndElementEvent,
			argon.EndDocumentEvent,
		}, eventTypes(events))
		require.Equal(t, "a", events[2].Data)
		require.Equal(t, "foo", events[3].Name)
		require.Equal(t, "b", events[4].Data)
	})

	t.Run("CDATA", func(t *testing.T) {
		events := collectEvents(t, `<r><![CDATA[<not & markup>]]></r>`)
		require.Equal(t, argon.CDATAEvent, events[2].Type)
		require.Equal(t, "<not & markup>", events[2].Data)
	})

	t.Run("PITarget", func(t *testing.T) {
		events := collectEvents(t, `<?xml-stylesheet href="a.css"?><r/>`)
		require.Equal(t, argon.PIEvent, events[1].Type)
		require.Equal(t, "xml-stylesheet", events[1].Name)
		require.Equal(t, `href="a.css"`, events[1].Data)
	})

	t.Run("Errors", func(t *testing.T) {
		for name, in := range map[string]string{
			"EmptyInput":        ``,
			"UnterminatedTag":   `<r `,
			"UnterminatedQuote": `<r a="1/>`,
			"BadName":           `<1r/>`,
			"StrayEndTag":       `</r>`,
			"ReservedPITarget":  `<r><?XML bad?></r>`,
		} {
			t.Run(name, func(t *testing.T) {
				lex := argon.NewLexer([]byte(in))
				for {
					ev, err := lex.Next()
					if err != nil {
						require.ErrorIs(t, err, argon.ErrSyntax, "input %q", in)
						var perr *argon.ParseError
						require.ErrorAs(t, err, &perr)
						break
					}
					require.NotEqual(t, argon.EndDocumentEvent, ev.Type, "input %q should not lex cleanly", in)
				}
			})
		}
	})
}
