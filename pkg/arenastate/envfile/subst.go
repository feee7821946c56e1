package envfile

import (
	"fmt"
	"strings"
)

// Policy decides what happens to a placeholder with no external binding.
type Policy int

const (
	// PolicyKeep leaves the token untouched and reports it.
	PolicyKeep Policy = iota
	// PolicyStrict fails with an *UnresolvedError.
	PolicyStrict
	// PolicyEmpty replaces the token with the empty string, as envsubst does.
	PolicyEmpty
)

func (p Policy) String() string {
	switch p {
	case PolicyStrict:
		return "strict"
	case PolicyEmpty:
		return "empty"
	}
	return "keep"
}

func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(s) {
	case "", "keep":
		return PolicyKeep, nil
	case "strict":
		return PolicyStrict, nil
	case "empty":
		return PolicyEmpty, nil
	}
	return PolicyKeep, fmt.Errorf("unknown substitution policy %q", s)
}

type SubstReport struct {
	Resolved   []string
	Unresolved []string
}

// IsPlaceholder reports whether value is exactly one $NAME or ${NAME} token.
func IsPlaceholder(value string) (string, bool) {
	if len(value) < 2 || value[0] != '$' {
		return "", false
	}
	name := value[1:]
	if strings.HasPrefix(name, "{") {
		if !strings.HasSuffix(name, "}") {
			return "", false
		}
		name = name[1 : len(name)-1]
	}
	if !validName(name) {
		return "", false
	}
	return name, true
}

// IsIdentityPlaceholder reports whether v is bound to a placeholder of its own
// name. The pipeline fills these from its secret store.
func IsIdentityPlaceholder(v Variable) bool {
	name, ok := IsPlaceholder(v.Value)
	return ok && name == v.Name
}

// Placeholders lists, in declaration order and without repeats, every name
// referenced by a $NAME or ${NAME} token in any value.
func (s *Surface) Placeholders() []string {
	var names []string
	seen := make(map[string]bool)
	for _, v := range s.vars {
		for _, ref := range references(v.Value) {
			if !seen[ref] {
				seen[ref] = true
				names = append(names, ref)
			}
		}
	}
	return names
}

// Substitute returns a copy of the surface with each placeholder token
// replaced by its binding. Tokens are replaced once: substituted text is not
// scanned again. The receiver is left unchanged.
func (s *Surface) Substitute(bindings Source, policy Policy) (*Surface, *SubstReport, error) {
	out := s.Clone()
	report := &SubstReport{}
	resolved := make(map[string]bool)
	unresolved := make(map[string]bool)

	for i := range out.vars {
		out.vars[i].Value = expand(out.vars[i].Value, func(name string) (string, bool) {
			val, ok := bindings.Lookup(name)
			if ok {
				if !resolved[name] {
					resolved[name] = true
					report.Resolved = append(report.Resolved, name)
				}
				return val, true
			}
			if !unresolved[name] {
				unresolved[name] = true
				report.Unresolved = append(report.Unresolved, name)
			}
			if policy == PolicyEmpty {
				return "", true
			}
			return "", false
		})
	}

	if policy == PolicyStrict && len(report.Unresolved) > 0 {
		return nil, report, &UnresolvedError{Names: report.Unresolved}
	}
	return out, report, nil
}

// expand scans value once. mapping returns false to keep the original token.
func expand(value string, mapping func(name string) (string, bool)) string {
	if !strings.Contains(value, "$") {
		return value
	}

	var b strings.Builder
	for i := 0; i < len(value); {
		name, width := scanToken(value[i:])
		if width == 0 {
			b.WriteByte(value[i])
			i++
			continue
		}
		if repl, ok := mapping(name); ok {
			b.WriteString(repl)
		} else {
			b.WriteString(value[i : i+width])
		}
		i += width
	}
	return b.String()
}

func references(value string) []string {
	var names []string
	for i := 0; i < len(value); {
		name, width := scanToken(value[i:])
		if width == 0 {
			i++
			continue
		}
		names = append(names, name)
		i += width
	}
	return names
}

// scanToken recognises a token at the start of s, returning its name and
// byte width. A width of 0 means s does not start with a token.
func scanToken(s string) (string, int) {
	if len(s) < 2 || s[0] != '$' {
		return "", 0
	}
	if s[1] == '{' {
		end := strings.IndexByte(s, '}')
		if end < 0 || !validName(s[2:end]) {
			return "", 0
		}
		return s[2:end], end + 1
	}
	n := 1
	for n < len(s) && isNameByte(s[n], n == 1) {
		n++
	}
	if n == 1 {
		return "", 0
	}
	return s[1:n], n
}
