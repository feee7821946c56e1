package envfile

import (
	"bytes"
	"io"
	"strings"
)

// WriteTo renders the surface as `export NAME=value` lines in declaration
// order. Parsing the output yields the same ordered mapping.
func (s *Surface) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, v := range s.vars {
		n, err := io.WriteString(w, "export "+v.Name+"="+quoteValue(v.Value, v.Quote)+"\n")
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func (s *Surface) String() string {
	var buf bytes.Buffer
	s.WriteTo(&buf)
	return buf.String()
}

// quoteValue prefers the quoting the value was read with, falling back to
// double quotes when the value could not otherwise be read back unchanged.
func quoteValue(value string, q Quote) string {
	switch q {
	case QuoteSingle:
		if !strings.ContainsAny(value, "'\n\r") {
			return "'" + value + "'"
		}
	case QuoteDouble:
		return doubleQuote(value)
	}

	if value == "" || !strings.ContainsAny(value, " \t\n\r#\"'\\") {
		return value
	}
	return doubleQuote(value)
}

var doubleQuoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`)

// doubleQuote keeps every value on a single line so that no value can
// introduce a declaration of its own.
func doubleQuote(value string) string {
	return `"` + doubleQuoteEscaper.Replace(value) + `"`
}
