// Package encoding wraps the charset machinery in golang.org/x/text so
// that the rest of argon never has to deal with package names like
// "unicode" clashing with the stdlib.
package encoding

import (
	"bytes"
	"strings"

	enc "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
)

// Load returns the Encoding for an encoding name as it appears in an XML
// declaration, or nil when the name is not supported.
func Load(name string) enc.Encoding {
	switch strings.ToLower(name) {
	case "utf8", "utf-8":
		return unicode.UTF8
	case "utf-16", "utf16":
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	case "utf-16le":
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	case "utf-16be":
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	case "euc-jp":
		return japanese.EUCJP
	case "shift_jis", "shift-jis", "shiftjis", "cp932":
		return japanese.ShiftJIS
	case "iso-2022-jp":
		return japanese.ISO2022JP
	case "iso-8859-1", "latin1", "windows-1252":
		return charmap.Windows1252
	case "iso-8859-2":
		return charmap.ISO8859_2
	case "iso-8859-5":
		return charmap.ISO8859_5
	case "iso-8859-15":
		return charmap.ISO8859_15
	case "koi8-r":
		return charmap.KOI8R
	case "macintosh":
		return charmap.Macintosh
	}
	return nil
}

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF16LE = []byte{0xFF, 0xFE}
)

// Detect sniffs the byte-order mark at the start of b. It returns the
// detected encoding name and the BOM length, or ("", 0) when no BOM is
// present (the XML default, UTF-8, applies until a declaration says
// otherwise).
func Detect(b []byte) (string, int) {
	switch {
	case bytes.HasPrefix(b, bomUTF8):
		return "utf-8", len(bomUTF8)
	case bytes.HasPrefix(b, bomUTF16BE):
		return "utf-16be", len(bomUTF16BE)
	case bytes.HasPrefix(b, bomUTF16LE):
		return "utf-16le", len(bomUTF16LE)
	}
	return "", 0
}

// Decode transcodes b from the named encoding to UTF-8.
func Decode(name string, b []byte) ([]byte, bool) {
	e := Load(name)
	if e == nil {
		return nil, false
	}
	out, err := e.NewDecoder().Bytes(b)
	if err != nil {
		return nil, false
	}
	return out, true
}
