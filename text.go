package argon

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// NormalizeEOL performs XML 1.1 §2.11 end-of-line handling: CR LF, CR NEL,
// and lone CR become LF, as do NEL (U+0085) and LINE SEPARATOR (U+2028).
func NormalizeEOL(s string) string {
	if !strings.ContainsAny(s, "\r\u0085\u2028") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		c, w := utf8.DecodeRuneInString(s[i:])
		switch c {
		case '\r':
			b.WriteByte('\n')
			i += w
			// swallow a following LF or NEL
			if next, nw := utf8.DecodeRuneInString(s[i:]); next == '\n' || next == 0x85 {
				i += nw
			}
		case 0x85, 0x2028:
			b.WriteByte('\n')
			i += w
		default:
			b.WriteRune(c)
			i += w
		}
	}
	return b.String()
}

// NormalizeAttrValue applies XML 1.1 §3.3.3 attribute-value normalization
// to text whose line ends have already been normalized: each whitespace
// character becomes a single space. When cdata is false the value is
// additionally trimmed and runs of spaces are collapsed, which is the
// treatment for attributes declared with a non-CDATA type. Attributes with
// no declaration are treated as CDATA.
func NormalizeAttrValue(s string, cdata bool) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, c := range s {
		if isBlankCh(c) {
			b.WriteByte(' ')
		} else {
			b.WriteRune(c)
		}
	}
	if cdata {
		return b.String()
	}

	fields := strings.Split(b.String(), " ")
	nonEmpty := fields[:0]
	for _, f := range fields {
		if f != "" {
			nonEmpty = append(nonEmpty, f)
		}
	}
	return strings.Join(nonEmpty, " ")
}

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	`"`, "&quot;",
)

// EscapeText escapes character data for element content: & < >.
func EscapeText(s string) string {
	return textEscaper.Replace(s)
}

// EscapeAttr escapes an attribute value for emission between double
// quotes: & < and the double quote itself.
func EscapeAttr(s string) string {
	return attrEscaper.Replace(s)
}

// Unescape resolves the predefined entities, numeric character
// references, and user-defined general entities in s. User entities are
// resolved through resolver, recursively, so an entity whose replacement
// text itself contains references works. A reference that is neither
// predefined, numeric, nor known to the resolver fails with a Syntax
// error. A nil resolver knows no user entities.
func Unescape(s string, resolver EntityResolver) (string, error) {
	return unescapeText(s, resolver, false)
}

// unescapeText is the scanner behind Unescape. In lenient mode, used for
// values supplied through the API rather than parsed from markup, an
// ampersand that does not introduce a well-formed, resolvable reference
// stays literal instead of failing.
func unescapeText(s string, resolver EntityResolver, lenient bool) (string, error) {
	if strings.IndexByte(s, '&') < 0 {
		return s, nil
	}

	var b strings.Builder
	b.Grow(len(s))
	for {
		i := strings.IndexByte(s, '&')
		if i < 0 {
			b.WriteString(s)
			return b.String(), nil
		}
		b.WriteString(s[:i])
		s = s[i:]

		end := refEnd(s)
		if end < 0 {
			if lenient {
				b.WriteByte('&')
				s = s[1:]
				continue
			}
			return "", newError(SyntaxErr, "unterminated entity reference %q", s)
		}
		ref := s[1:end]
		rest := s[end+1:]

		if strings.HasPrefix(ref, "#") {
			c, err := decodeCharRef(ref)
			if err != nil {
				if lenient {
					b.WriteByte('&')
					s = s[1:]
					continue
				}
				return "", err
			}
			b.WriteRune(c)
			s = rest
			continue
		}

		if repl, ok := predefEntities[ref]; ok {
			b.WriteByte(repl)
			s = rest
			continue
		}

		if resolver != nil {
			if repl, ok := resolver.Resolve(ref); ok {
				expanded, err := unescapeText(repl, resolver, lenient)
				if err != nil {
					return "", err
				}
				b.WriteString(expanded)
				s = rest
				continue
			}
		}
		if lenient {
			// keep the reference literally
			b.WriteString(s[:end+1])
			s = rest
			continue
		}
		return "", newError(SyntaxErr, "unknown entity &%s;", ref)
	}
}

// refEnd returns the index of the terminating semicolon when s, which
// starts with '&', opens a lexically plausible reference, or -1.
func refEnd(s string) int {
	for i := 1; i < len(s); i++ {
		c := s[i]
		if c == ';' {
			if i == 1 {
				return -1
			}
			return i
		}
		if c == '&' || c == '<' || isBlankCh(rune(c)) {
			return -1
		}
	}
	return -1
}

var predefEntities = map[string]byte{
	"lt":   '<',
	"gt":   '>',
	"amp":  '&',
	"apos": '\'',
	"quot": '"',
}

// decodeCharRef decodes the body of a numeric character reference, ref
// being the text between '&' and ';' (so "#NNN" or "#xHHH").
func decodeCharRef(ref string) (rune, error) {
	digits := ref[1:]
	base := 10
	if strings.HasPrefix(digits, "x") || strings.HasPrefix(digits, "X") {
		digits = digits[1:]
		base = 16
	}
	n, err := strconv.ParseUint(digits, base, 32)
	if err != nil {
		return 0, newError(SyntaxErr, "malformed character reference &%s;", ref)
	}
	c := rune(n)
	if !isChar(c) {
		return 0, newError(SyntaxErr, "character reference &%s; outside XML character range", ref)
	}
	return c, nil
}

// isChar reports whether c is in the XML 1.1 Char production.
func isChar(c rune) bool {
	return (c >= 0x1 && c <= 0xD7FF) ||
		(c >= 0xE000 && c <= 0xFFFD) ||
		(c >= 0x10000 && c <= 0x10FFFF)
}
