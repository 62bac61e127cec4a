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

package bidi

import (
	"golang.org/x/exp/slices"

	"github.com/wdamron/bidi/internal/typeutil"
	"github.com/wdamron/bidi/types"
)

// TypeEnv is a type-environment containing mappings from identifiers to declared types.
//
// Declared types must be closed: every rigid type-variable must be bound by a quantifier, and no existentials
// may appear. A type-environment may be shared across inference contexts as long as it is not modified
// concurrently.
type TypeEnv struct {
	// Predeclared types in the parent of the current type-environment
	Parent *TypeEnv
	// Mappings from identifiers to declared types in the current type-environment
	Types map[string]types.Type

	order []string
}

// Create a type-environment. The new environment will inherit bindings from the parent, if the parent is not nil.
func NewTypeEnv(parent *TypeEnv) *TypeEnv {
	return &TypeEnv{
		Parent: parent,
		Types:  make(map[string]types.Type),
	}
}

// Declare a type for an identifier within the type environment.
func (e *TypeEnv) Declare(name string, t types.Type) {
	if _, exists := e.Types[name]; !exists {
		e.order = append(e.order, name)
	}
	e.Types[name] = t
}

// Remove the declared type for an identifier within the type environment. Parent environment(s) will not be affected,
// and the identifier's type will still be visible if defined in a parent environment.
func (e *TypeEnv) Remove(name string) {
	delete(e.Types, name)
	if i := slices.Index(e.order, name); i >= 0 {
		e.order = slices.Delete(e.order, i, i+1)
	}
}

// Lookup the type for an identifier in the environment or its parent environment(s).
func (e *TypeEnv) Lookup(name string) types.Type {
	if t, ok := e.Types[name]; ok {
		return t
	}
	if e.Parent == nil {
		return nil
	}
	return e.Parent.Lookup(name)
}

// context binds every declared type, parents first, so that declarations shadow those of their parents.
// Types assigned directly to the Types map are bound after declared types, in sorted order.
func (e *TypeEnv) context(vt *typeutil.VarTracker) (typeutil.Context, error) {
	if e == nil {
		return typeutil.EmptyContext(), nil
	}
	ctx, err := e.Parent.context(vt)
	if err != nil {
		return ctx, err
	}
	names := append([]string(nil), e.order...)
	for name := range e.Types {
		if !slices.Contains(e.order, name) {
			names = append(names, name)
		}
	}
	if extra := names[len(e.order):]; len(extra) > 1 {
		slices.Sort(extra)
	}
	for _, name := range names {
		t, ok := e.Types[name]
		if !ok {
			continue
		}
		if err := ctx.CheckWellFormed(t); err != nil {
			return ctx, &Error{Kind: UnboundTypeReference, Judgment: judgeEnv, Detail: "declared type of " + name, Err: err, Operands: []string{types.TypeString(t)}}
		}
		ctx = ctx.Add(typeutil.Binding(vt.New(), name, t))
	}
	return ctx, nil
}
