// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package typeutil

import (
	"errors"
	"fmt"
	"strings"

	"github.com/benbjohnson/immutable"
	"github.com/hashicorp/go-multierror"

	"github.com/wdamron/bidi/types"
)

// ErrElementNotFound is returned when a context operation is given an element which is not in the context.
var ErrElementNotFound = errors.New("context element not found")

type ElementKind uint8

const (
	// Rigid type-variable in scope
	RigidElem ElementKind = iota
	// Unsolved existential
	ExistElem
	// Solved existential
	SolvedElem
	// Scope marker
	MarkerElem
	// Typed value binding
	BindingElem
)

func (k ElementKind) String() string {
	switch k {
	case RigidElem:
		return "rigid"
	case ExistElem:
		return "existential"
	case SolvedElem:
		return "solved"
	case MarkerElem:
		return "marker"
	case BindingElem:
		return "binding"
	}
	return "unknown"
}

// Element is an entry in a Context.
//
// Elements are identified by Kind and Id: existentials and markers by their existential/marker id, rigid
// type-variables and bindings by a scope id allocated when they enter the context. Names never identify an element.
type Element struct {
	Kind ElementKind
	Id   int
	Name string     // rigid type-variable or binding name
	Type types.Type // solution or binding type
}

func RigidVar(scope int, name string) Element { return Element{Kind: RigidElem, Id: scope, Name: name} }
func ExistVar(id int) Element                 { return Element{Kind: ExistElem, Id: id} }
func Solved(id int, t types.Type) Element     { return Element{Kind: SolvedElem, Id: id, Type: t} }
func Marker(id int) Element                   { return Element{Kind: MarkerElem, Id: id} }
func Binding(scope int, name string, t types.Type) Element {
	return Element{Kind: BindingElem, Id: scope, Name: name, Type: t}
}

// Same reports whether e and o denote the same context entry.
func (e Element) Same(o Element) bool { return e.Kind == o.Kind && e.Id == o.Id }

func (e Element) String() string {
	switch e.Kind {
	case RigidElem:
		return e.Name
	case ExistElem:
		return types.ExistName(e.Id)
	case SolvedElem:
		return types.ExistName(e.Id) + " = " + types.TypeString(e.Type)
	case MarkerElem:
		return "|>" + types.ExistName(e.Id)
	case BindingElem:
		return e.Name + " : " + types.TypeString(e.Type)
	}
	return "?"
}

var emptyList = immutable.NewList()

// Context is an ordered, persistent ledger of typing facts. Every operation returns a new Context;
// existing contexts are never modified.
type Context struct {
	l *immutable.List
}

func EmptyContext() Context { return Context{emptyList} }

func (c Context) list() *immutable.List {
	if c.l == nil {
		return emptyList
	}
	return c.l
}

func (c Context) Len() int { return c.list().Len() }

func (c Context) At(i int) Element { return c.list().Get(i).(Element) }

func (c Context) Elements() []Element {
	l := c.list()
	elems := make([]Element, 0, l.Len())
	iter := l.Iterator()
	for !iter.Done() {
		_, v := iter.Next()
		elems = append(elems, v.(Element))
	}
	return elems
}

// Add appends elements to the end of the context.
func (c Context) Add(elems ...Element) Context {
	l := c.list()
	for _, e := range elems {
		l = l.Append(e)
	}
	return Context{l}
}

// Concat appends all elements of o to the end of the context.
func (c Context) Concat(o Context) Context { return c.Add(o.Elements()...) }

// find scans from the right; later entries shadow earlier ones.
func (c Context) find(match func(Element) bool) (Element, bool) {
	l := c.list()
	for i := l.Len() - 1; i >= 0; i-- {
		if e := l.Get(i).(Element); match(e) {
			return e, true
		}
	}
	return Element{}, false
}

// LookupBinding returns the type of the last binding for name.
func (c Context) LookupBinding(name string) (types.Type, bool) {
	e, ok := c.find(func(e Element) bool { return e.Kind == BindingElem && e.Name == name })
	return e.Type, ok
}

// LookupSolved returns the solution of the last solved entry for the existential id.
func (c Context) LookupSolved(id int) (types.Type, bool) {
	e, ok := c.find(func(e Element) bool { return e.Kind == SolvedElem && e.Id == id })
	return e.Type, ok
}

// HasExist reports whether the context contains the unsolved existential id.
func (c Context) HasExist(id int) bool {
	_, ok := c.find(func(e Element) bool { return e.Kind == ExistElem && e.Id == id })
	return ok
}

// HasSolved reports whether the context contains a solution for the existential id.
func (c Context) HasSolved(id int) bool {
	_, ok := c.LookupSolved(id)
	return ok
}

// HasRigid reports whether the rigid type-variable name is in scope.
func (c Context) HasRigid(name string) bool {
	_, ok := c.find(func(e Element) bool { return e.Kind == RigidElem && e.Name == name })
	return ok
}

// IndexOf returns the position of the first entry which is the same as e, or -1.
func (c Context) IndexOf(e Element) int {
	l := c.list()
	iter := l.Iterator()
	for !iter.Done() {
		i, v := iter.Next()
		if v.(Element).Same(e) {
			return i
		}
	}
	return -1
}

func (c Context) indexOf(e Element) (int, error) {
	i := c.IndexOf(e)
	if i < 0 {
		return -1, fmt.Errorf("%w: %s %s in [%s]", ErrElementNotFound, e.Kind, e, c)
	}
	return i, nil
}

// DropAfter returns the prefix of the context strictly before e.
func (c Context) DropAfter(e Element) (Context, error) {
	i, err := c.indexOf(e)
	if err != nil {
		return c, err
	}
	return Context{c.list().Slice(0, i)}, nil
}

// SplitAt returns the prefix of the context strictly before e and the suffix starting at e.
func (c Context) SplitAt(e Element) (Context, Context, error) {
	i, err := c.indexOf(e)
	if err != nil {
		return c, EmptyContext(), err
	}
	l := c.list()
	return Context{l.Slice(0, i)}, Context{l.Slice(i, l.Len())}, nil
}

// SpliceReplace replaces e with the given elements, preserving the order of the surrounding entries.
func (c Context) SpliceReplace(e Element, elems ...Element) (Context, error) {
	i, err := c.indexOf(e)
	if err != nil {
		return c, err
	}
	l := c.list()
	out := l.Slice(0, i)
	for _, ins := range elems {
		out = out.Append(ins)
	}
	for j := i + 1; j < l.Len(); j++ {
		out = out.Append(l.Get(j))
	}
	return Context{out}, nil
}

// ScopeError is a reference to a type-variable or existential which is not in scope.
type ScopeError struct {
	Kind ElementKind
	Name string
}

func (e *ScopeError) Error() string {
	if e.Kind == RigidElem {
		return "type variable " + e.Name + " is not in scope"
	}
	return "existential " + e.Name + " is not in scope"
}

// CheckWellFormed returns every reference in ts which is not in scope within the context, or nil.
func (c Context) CheckWellFormed(ts ...types.Type) error {
	var errs *multierror.Error
	for _, t := range ts {
		c.checkWellFormed(t, &errs)
	}
	if errs != nil {
		errs.ErrorFormat = joinErrors
	}
	return errs.ErrorOrNil()
}

func (c Context) IsWellFormed(t types.Type) bool { return c.CheckWellFormed(t) == nil }

func (c Context) checkWellFormed(t types.Type, errs **multierror.Error) {
	switch t := t.(type) {
	case *types.Const:
	case *types.Rigid:
		if !c.HasRigid(t.Name) {
			*errs = multierror.Append(*errs, &ScopeError{Kind: RigidElem, Name: t.Name})
		}
	case *types.Exist:
		if !c.HasExist(t.Id) && !c.HasSolved(t.Id) {
			*errs = multierror.Append(*errs, &ScopeError{Kind: ExistElem, Name: types.ExistName(t.Id)})
		}
	case *types.Forall:
		c.Add(RigidVar(-1, t.Var)).checkWellFormed(t.Body, errs)
	case *types.Arrow:
		for _, arg := range t.Args {
			c.checkWellFormed(arg, errs)
		}
		c.checkWellFormed(t.Return, errs)
	case *types.App:
		for _, arg := range t.Args {
			c.checkWellFormed(arg, errs)
		}
	}
}

func joinErrors(errs []error) string {
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Apply substitutes every solved existential in t with its (recursively applied) solution.
func (c Context) Apply(t types.Type) types.Type {
	switch t := t.(type) {
	case *types.Exist:
		if solved, ok := c.LookupSolved(t.Id); ok {
			return c.Apply(solved)
		}
		return t
	case *types.Forall:
		return &types.Forall{Var: t.Var, Body: c.Apply(t.Body)}
	case *types.Arrow:
		return &types.Arrow{Args: c.applyList(t.Args), Return: c.Apply(t.Return)}
	case *types.App:
		return &types.App{Name: t.Name, Args: c.applyList(t.Args)}
	}
	return t
}

func (c Context) applyList(ts []types.Type) []types.Type {
	out := make([]types.Type, len(ts))
	for i, t := range ts {
		out[i] = c.Apply(t)
	}
	return out
}

func (c Context) String() string {
	elems := c.Elements()
	parts := make([]string, len(elems))
	for i, e := range elems {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}
