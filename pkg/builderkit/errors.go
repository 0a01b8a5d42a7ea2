package builderkit

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNilArgument is the cause of panics raised when a mutator is given nil
	// where the property does not admit it.
	ErrNilArgument = errors.New("nil argument")
	// ErrDuplicateValue is the cause of panics raised when a bimap value is
	// already bound to another key.
	ErrDuplicateValue = errors.New("value already bound to another key")
	// ErrIncompleteBuild is returned by Build when required properties are unset.
	ErrIncompleteBuild = errors.New("required properties not set")
	// ErrNotSet is the cause of panics raised when a partial value is asked for a
	// required property that was never set.
	ErrNotSet = errors.New("property not set")
)

// ArgumentError reports a nil argument passed to a builder method.
type ArgumentError struct {
	Method   string
	Argument string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: %s is nil", e.Method, e.Argument)
}

func (e *ArgumentError) Unwrap() error { return ErrNilArgument }

// NilArgument returns the error a generated method panics with when argument is nil.
func NilArgument(method, argument string) error {
	return &ArgumentError{Method: method, Argument: argument}
}

// DuplicateValueError reports a bimap value bound to a different key.
type DuplicateValueError struct {
	Method string
	Key    any // key the value was being bound to
	Value  any
	Bound  any // key the value is already bound to
}

func (e *DuplicateValueError) Error() string {
	return fmt.Sprintf("%s: cannot bind %v to %v: already bound to %v", e.Method, e.Value, e.Key, e.Bound)
}

func (e *DuplicateValueError) Unwrap() error { return ErrDuplicateValue }

// DuplicateValue returns the error a generated bimap Put panics with.
func DuplicateValue(method string, key, value, bound any) error {
	return &DuplicateValueError{Method: method, Key: key, Value: value, Bound: bound}
}

// IncompleteError lists the required properties missing from a Build.
type IncompleteError struct {
	Type    string
	Missing []string // declaration order
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("%s: %v: %s", e.Type, ErrIncompleteBuild, strings.Join(e.Missing, ", "))
}

func (e *IncompleteError) Unwrap() error { return ErrIncompleteBuild }

// Incomplete returns the error Build reports for the missing properties.
func Incomplete(typeName string, missing ...string) error {
	return &IncompleteError{Type: typeName, Missing: missing}
}

// NotSetError reports access to an unset required property of a partial value.
type NotSetError struct {
	Type     string
	Property string
}

func (e *NotSetError) Error() string {
	return fmt.Sprintf("partial %s: %s not set", e.Type, e.Property)
}

func (e *NotSetError) Unwrap() error { return ErrNotSet }

// NotSet returns the error a partial accessor panics with.
func NotSet(typeName, property string) error {
	return &NotSetError{Type: typeName, Property: property}
}
