package envfile

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDuplicateName = errors.New("duplicate variable name")
	ErrUnresolved    = errors.New("unresolved placeholder")
)

type DuplicateError struct {
	Name   string
	First  int
	Second int
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s declared on line %d and again on line %d", e.Name, e.First, e.Second)
}

func (e *DuplicateError) Unwrap() error {
	return ErrDuplicateName
}

type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

type UnresolvedError struct {
	Names []string
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("no binding for %s", strings.Join(e.Names, ", "))
}

func (e *UnresolvedError) Unwrap() error {
	return ErrUnresolved
}
