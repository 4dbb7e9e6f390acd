package s11n

import (
	"io"
	"strings"
)

func writeString(out io.Writer, s string) error {
	_, err := io.WriteString(out, s)
	return err
}

// writeQuoted writes s as a quoted literal for doctype identifiers,
// preferring double quotes and falling back to single quotes when the
// value itself contains a double quote.
func writeQuoted(out io.Writer, s string) error {
	q := `"`
	if strings.Contains(s, `"`) {
		q = `'`
	}
	return writeString(out, q+s+q)
}
