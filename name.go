package argon

import "strings"

// Character classes from XML 1.1 §2.3 and Namespaces in XML 1.1.

func isNameStartChar(c rune) bool {
	return c == ':' ||
		(c >= 'A' && c <= 'Z') ||
		c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 0xC0 && c <= 0xD6) ||
		(c >= 0xD8 && c <= 0xF6) ||
		(c >= 0xF8 && c <= 0x2FF) ||
		(c >= 0x370 && c <= 0x37D) ||
		(c >= 0x37F && c <= 0x1FFF) ||
		(c >= 0x200C && c <= 0x200D) ||
		(c >= 0x2070 && c <= 0x218F) ||
		(c >= 0x2C00 && c <= 0x2FEF) ||
		(c >= 0x3001 && c <= 0xD7FF) ||
		(c >= 0xF900 && c <= 0xFDCF) ||
		(c >= 0xFDF0 && c <= 0xFFFD) ||
		(c >= 0x10000 && c <= 0xEFFFF)
}

func isNameChar(c rune) bool {
	return isNameStartChar(c) ||
		c == '-' || c == '.' ||
		(c >= '0' && c <= '9') ||
		c == 0xB7 ||
		(c >= 0x300 && c <= 0x36F) ||
		(c >= 0x203F && c <= 0x2040)
}

func isBlankCh(c rune) bool {
	return c == 0x20 || c == 0x9 || c == 0xa || c == 0xd
}

// IsXMLName reports whether s matches the XML Name production.
func IsXMLName(s string) bool {
	for i, c := range s {
		if i == 0 {
			if !isNameStartChar(c) {
				return false
			}
			continue
		}
		if !isNameChar(c) {
			return false
		}
	}
	return len(s) > 0
}

// IsXMLNCName reports whether s matches the NCName production, that is,
// an XML Name with no colon.
func IsXMLNCName(s string) bool {
	if strings.IndexByte(s, ':') >= 0 {
		return false
	}
	return IsXMLName(s)
}

// SplitQName splits a qualified name into its prefix and local parts.
// A name with no colon has an empty prefix. The name is not validated;
// use checkQName for that.
func SplitQName(qname string) (prefix, local string) {
	i := strings.IndexByte(qname, ':')
	if i < 0 {
		return "", qname
	}
	return qname[:i], qname[i+1:]
}

// checkName validates a plain Name.
func checkName(name string) error {
	if !IsXMLName(name) {
		return newError(InvalidCharacterErr, "invalid XML name %q", name)
	}
	return nil
}

// checkQName validates a QName: either an NCName, or NCName ":" NCName.
func checkQName(qname string) error {
	prefix, local := SplitQName(qname)
	if prefix == "" {
		if strings.IndexByte(qname, ':') >= 0 {
			// leading colon, e.g. ":foo"
			return newError(InvalidCharacterErr, "invalid QName %q", qname)
		}
		if !IsXMLNCName(local) {
			return newError(InvalidCharacterErr, "invalid QName %q", qname)
		}
		return nil
	}
	if !IsXMLNCName(prefix) || !IsXMLNCName(local) {
		return newError(InvalidCharacterErr, "invalid QName %q", qname)
	}
	return nil
}
