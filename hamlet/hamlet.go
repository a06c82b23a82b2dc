// Package hamlet is the tiny assertion helper used by tests in this
// repository. Usage pattern:
//
//	must_be, wont_be := hamlet.Specifications(t)
//	must_be.Equal(4, 2+2)
//	wont_be.Nil(result)
package hamlet

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"testing"
)

type Hamlet struct {
	testing *testing.T
	loud    string
	flip    bool
}

// Specifications gives the two assertion sides for one test: the first
// demands that conditions hold, the second demands that they do not.
func Specifications(t *testing.T) (*Hamlet, *Hamlet) {
	return &Hamlet{t, "Must be", false}, &Hamlet{t, "Wont be", true}
}

func (it *Hamlet) fatal(form string, details ...interface{}) {
	it.testing.Helper()
	it.testing.Fatalf("%s %s", it.loud, fmt.Sprintf(form, details...))
}

func (it *Hamlet) verify(condition bool, form string, details ...interface{}) {
	it.testing.Helper()
	if condition == it.flip {
		it.fatal(form, details...)
	}
}

func (it *Hamlet) True(value bool) {
	it.testing.Helper()
	it.verify(value, "true, but got %v!", value)
}

func (it *Hamlet) Nil(value interface{}) {
	it.testing.Helper()
	defended := reflect.ValueOf(value)
	nilly := value == nil
	switch defended.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		nilly = nilly || defended.IsNil()
	}
	it.verify(nilly, "nil, but got %#v!", value)
}

func (it *Hamlet) Equal(expected, actual interface{}) {
	it.testing.Helper()
	it.verify(reflect.DeepEqual(expected, actual), "equal, expected %#v with actual %#v!", expected, actual)
}

// Text compares the fmt.Sprintf("%v") rendering of actual against expected.
func (it *Hamlet) Text(expected string, actual interface{}) {
	it.testing.Helper()
	it.verify(expected == fmt.Sprintf("%v", actual), "text %q, but got %q!", expected, fmt.Sprintf("%v", actual))
}

// Contain checks substring membership in the "%v" rendering of actual.
func (it *Hamlet) Contain(fragment string, actual interface{}) {
	it.testing.Helper()
	body := fmt.Sprintf("%v", actual)
	it.verify(strings.Contains(body, fragment), "containing %q, but got %q!", fragment, body)
}

// Match checks the "%v" rendering of actual against a regular expression.
func (it *Hamlet) Match(pattern string, actual interface{}) {
	it.testing.Helper()
	matcher, err := regexp.Compile(pattern)
	if err != nil {
		it.fatal("valid pattern, but %q failed to compile: %v", pattern, err)
	}
	body := fmt.Sprintf("%v", actual)
	it.verify(matcher.MatchString(body), "matching %q, but got %q!", pattern, body)
}

func (it *Hamlet) Panic(task func()) {
	it.testing.Helper()
	defer func() {
		it.testing.Helper()
		caught := recover()
		it.verify(caught != nil, "panicing, but got %#v!", caught)
	}()
	task()
}
