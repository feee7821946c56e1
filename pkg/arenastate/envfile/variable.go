// Package envfile reads and writes the ARENASTATE_ dotenv template used by the
// deployment pipeline. Values are kept literally: placeholders such as
// $ARENASTATE_OPENAI_API_KEY stay in place until Substitute is called.
package envfile

import (
	"fmt"
	"sort"
)

// Prefix is the conventional prefix of every variable in the surface.
const Prefix = "ARENASTATE_"

type Quote int

const (
	QuoteNone Quote = iota
	QuoteDouble
	QuoteSingle
)

type Variable struct {
	Name  string
	Value string
	Quote Quote
	// Line is the 1 based source line, 0 for variables added with Set.
	Line int
}

// Surface is an ordered set of uniquely named variables.
type Surface struct {
	vars  []Variable
	index map[string]int
}

func NewSurface() *Surface {
	return &Surface{index: make(map[string]int)}
}

// Lookup reports the value bound to name. The boolean is false only when the
// name is not declared; a name declared with an empty value returns ("", true).
func (s *Surface) Lookup(name string) (string, bool) {
	i, ok := s.index[name]
	if !ok {
		return "", false
	}
	return s.vars[i].Value, true
}

func (s *Surface) Get(name string) string {
	v, _ := s.Lookup(name)
	return v
}

func (s *Surface) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

func (s *Surface) Variable(name string) (Variable, bool) {
	i, ok := s.index[name]
	if !ok {
		return Variable{}, false
	}
	return s.vars[i], true
}

func (s *Surface) Len() int {
	return len(s.vars)
}

func (s *Surface) Names() []string {
	names := make([]string, len(s.vars))
	for i, v := range s.vars {
		names[i] = v.Name
	}
	return names
}

func (s *Surface) Variables() []Variable {
	out := make([]Variable, len(s.vars))
	copy(out, s.vars)
	return out
}

func (s *Surface) Map() map[string]string {
	m := make(map[string]string, len(s.vars))
	for _, v := range s.vars {
		m[v.Name] = v.Value
	}
	return m
}

// Set binds name to value. An existing name keeps its position and quoting.
func (s *Surface) Set(name, value string) error {
	if !validName(name) {
		return fmt.Errorf("invalid variable name %q", name)
	}
	if i, ok := s.index[name]; ok {
		s.vars[i].Value = value
		return nil
	}
	s.index[name] = len(s.vars)
	s.vars = append(s.vars, Variable{Name: name, Value: value})
	return nil
}

func (s *Surface) Unset(name string) {
	i, ok := s.index[name]
	if !ok {
		return
	}
	s.vars = append(s.vars[:i], s.vars[i+1:]...)
	delete(s.index, name)
	for j := i; j < len(s.vars); j++ {
		s.index[s.vars[j].Name] = j
	}
}

func (s *Surface) Clone() *Surface {
	c := &Surface{
		vars:  s.Variables(),
		index: make(map[string]int, len(s.index)),
	}
	for k, v := range s.index {
		c.index[k] = v
	}
	return c
}

// add appends a parsed variable, rejecting duplicates.
func (s *Surface) add(v Variable) error {
	if i, ok := s.index[v.Name]; ok {
		return &DuplicateError{Name: v.Name, First: s.vars[i].Line, Second: v.Line}
	}
	s.index[v.Name] = len(s.vars)
	s.vars = append(s.vars, v)
	return nil
}

// FromMap builds a surface with the names sorted, for callers that only have
// an unordered mapping.
func FromMap(m map[string]string) (*Surface, error) {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)

	s := NewSurface()
	for _, name := range names {
		if err := s.Set(name, m[name]); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func validName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		if !isNameByte(name[i], i == 0) {
			return false
		}
	}
	return true
}

func isNameByte(c byte, first bool) bool {
	switch {
	case c == '_', c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z':
		return true
	case c >= '0' && c <= '9':
		return !first
	}
	return false
}
