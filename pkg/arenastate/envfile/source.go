package envfile

import "os"

// Source looks up a binding by name. ok is false when the name is unset.
type Source interface {
	Lookup(name string) (string, bool)
}

type MapSource map[string]string

func (m MapSource) Lookup(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

// OSEnv reads the process environment. It should only be consulted once, at
// start up, to build the explicit configuration.
type OSEnv struct{}

func (OSEnv) Lookup(name string) (string, bool) {
	return os.LookupEnv(name)
}

// Layered consults each source in turn; the first one that has the name wins.
type Layered []Source

func (l Layered) Lookup(name string) (string, bool) {
	for _, src := range l {
		if src == nil {
			continue
		}
		if v, ok := src.Lookup(name); ok {
			return v, true
		}
	}
	return "", false
}
