package envfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

func ParseFile(path string) (*Surface, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open env file: %w", err)
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return s, nil
}

func ParseString(src string) (*Surface, error) {
	return Parse(strings.NewReader(src))
}

// Parse reads `export NAME=value` (or `NAME=value`) declarations. Comments and
// blank lines are skipped. Values are never expanded. Inside double quotes
// \" \\ \n and \r are escapes; any other backslash is literal.
func Parse(r io.Reader) (*Surface, error) {
	s := NewSurface()

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		v, ok, err := parseLine(scanner.Text(), lineNo)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if err := s.add(v); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read env: %w", err)
	}

	return s, nil
}

func parseLine(line string, lineNo int) (Variable, bool, error) {
	rest := strings.TrimLeft(line, " \t")
	rest = strings.TrimSuffix(rest, "\r")
	if rest == "" || rest[0] == '#' {
		return Variable{}, false, nil
	}

	if after, ok := strings.CutPrefix(rest, "export"); ok && after != "" && (after[0] == ' ' || after[0] == '\t') {
		rest = strings.TrimLeft(after, " \t")
	}

	n := 0
	for n < len(rest) && isNameByte(rest[n], n == 0) {
		n++
	}
	if n == 0 {
		return Variable{}, false, &SyntaxError{Line: lineNo, Msg: "expected a variable name"}
	}
	name := rest[:n]
	rest = rest[n:]
	if rest == "" || rest[0] != '=' {
		return Variable{}, false, &SyntaxError{Line: lineNo, Msg: fmt.Sprintf("expected '=' after %s", name)}
	}
	rest = rest[1:]

	value, quote, tail, err := parseValue(rest)
	if err != nil {
		return Variable{}, false, &SyntaxError{Line: lineNo, Msg: fmt.Sprintf("%s: %v", name, err)}
	}

	tail = strings.TrimLeft(tail, " \t")
	if tail != "" && tail[0] != '#' {
		return Variable{}, false, &SyntaxError{Line: lineNo, Msg: fmt.Sprintf("%s: unexpected text after value: %q", name, tail)}
	}

	return Variable{Name: name, Value: value, Quote: quote, Line: lineNo}, true, nil
}

// parseValue returns the literal value, its quoting, and whatever follows it.
func parseValue(rest string) (string, Quote, string, error) {
	if rest == "" {
		return "", QuoteNone, "", nil
	}

	switch rest[0] {
	case '\'':
		end := strings.IndexByte(rest[1:], '\'')
		if end < 0 {
			return "", QuoteSingle, "", fmt.Errorf("unterminated single quote")
		}
		return rest[1 : end+1], QuoteSingle, rest[end+2:], nil

	case '"':
		var b strings.Builder
		for i := 1; i < len(rest); i++ {
			c := rest[i]
			switch {
			case c == '\\' && i+1 < len(rest) && (rest[i+1] == '"' || rest[i+1] == '\\'):
				b.WriteByte(rest[i+1])
				i++
			case c == '\\' && i+1 < len(rest) && rest[i+1] == 'n':
				b.WriteByte('\n')
				i++
			case c == '\\' && i+1 < len(rest) && rest[i+1] == 'r':
				b.WriteByte('\r')
				i++
			case c == '"':
				return b.String(), QuoteDouble, rest[i+1:], nil
			default:
				b.WriteByte(c)
			}
		}
		return "", QuoteDouble, "", fmt.Errorf("unterminated double quote")
	}

	end := strings.IndexAny(rest, " \t")
	if end < 0 {
		return rest, QuoteNone, "", nil
	}
	return rest[:end], QuoteNone, rest[end:], nil
}
