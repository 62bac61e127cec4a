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

package types

import (
	"golang.org/x/exp/slices"
)

// Type is the base interface for all types. Types are immutable once constructed.
type Type interface {
	TypeName() string
}

var (
	_ Type = (*Const)(nil)
	_ Type = (*Rigid)(nil)
	_ Type = (*Exist)(nil)
	_ Type = (*Forall)(nil)
	_ Type = (*Arrow)(nil)
	_ Type = (*App)(nil)
)

func (t *Const) TypeName() string  { return "Const" }
func (t *Rigid) TypeName() string  { return "Rigid" }
func (t *Exist) TypeName() string  { return "Exist" }
func (t *Forall) TypeName() string { return "Forall" }
func (t *Arrow) TypeName() string  { return "Arrow" }
func (t *App) TypeName() string    { return "App" }

// Type constant: `int` or `bool`
type Const struct {
	Name string
}

// Rigid (universally quantified) type-variable: `T`
type Rigid struct {
	Name string
}

// Existential type-variable: an unknown awaiting a solution, identified by a unique id.
type Exist struct {
	Id int
}

// Universal quantification: `forall T. T -> T`
type Forall struct {
	Var  string
	Body Type
}

// Function type: `(int, int) -> int`
type Arrow struct {
	Args   []Type
	Return Type
}

// Generic type application: `List[int]` or `[]int`
type App struct {
	Name string
	Args []Type
}

// Equal reports whether a and b are structurally identical. Bound variable names are compared literally.
func Equal(a, b Type) bool {
	switch a := a.(type) {
	case *Const:
		b, ok := b.(*Const)
		return ok && a.Name == b.Name
	case *Rigid:
		b, ok := b.(*Rigid)
		return ok && a.Name == b.Name
	case *Exist:
		b, ok := b.(*Exist)
		return ok && a.Id == b.Id
	case *Forall:
		b, ok := b.(*Forall)
		return ok && a.Var == b.Var && Equal(a.Body, b.Body)
	case *Arrow:
		b, ok := b.(*Arrow)
		return ok && slices.EqualFunc(a.Args, b.Args, Equal) && Equal(a.Return, b.Return)
	case *App:
		b, ok := b.(*App)
		return ok && a.Name == b.Name && slices.EqualFunc(a.Args, b.Args, Equal)
	case nil:
		return b == nil
	}
	return false
}

// IsMono reports whether t contains no quantifiers. Existentials count as monotypes.
func IsMono(t Type) bool {
	switch t := t.(type) {
	case *Forall:
		return false
	case *Arrow:
		for _, arg := range t.Args {
			if !IsMono(arg) {
				return false
			}
		}
		return IsMono(t.Return)
	case *App:
		for _, arg := range t.Args {
			if !IsMono(arg) {
				return false
			}
		}
	}
	return true
}

// HasExist reports whether the existential with the given id occurs in t.
func HasExist(t Type, id int) bool {
	switch t := t.(type) {
	case *Exist:
		return t.Id == id
	case *Forall:
		return HasExist(t.Body, id)
	case *Arrow:
		for _, arg := range t.Args {
			if HasExist(arg, id) {
				return true
			}
		}
		return HasExist(t.Return, id)
	case *App:
		for _, arg := range t.Args {
			if HasExist(arg, id) {
				return true
			}
		}
	}
	return false
}

// FreeExists returns the ids of all existentials in t, in order of first occurrence.
func FreeExists(t Type) []int {
	var ids []int
	visitExists(t, func(id int) {
		if !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	})
	return ids
}

func visitExists(t Type, f func(int)) {
	switch t := t.(type) {
	case *Exist:
		f(t.Id)
	case *Forall:
		visitExists(t.Body, f)
	case *Arrow:
		for _, arg := range t.Args {
			visitExists(arg, f)
		}
		visitExists(t.Return, f)
	case *App:
		for _, arg := range t.Args {
			visitExists(arg, f)
		}
	}
}

// Substitute replaces free occurrences of the rigid type-variable name with replacement.
// If name does not occur free in t, t is returned unchanged.
func Substitute(t Type, name string, replacement Type) Type {
	switch t := t.(type) {
	case *Rigid:
		if t.Name == name {
			return replacement
		}
		return t

	case *Forall:
		if t.Var == name { // shadowed
			return t
		}
		body := Substitute(t.Body, name, replacement)
		if body == t.Body {
			return t
		}
		return &Forall{Var: t.Var, Body: body}

	case *Arrow:
		args, changed := substituteList(t.Args, name, replacement)
		ret := Substitute(t.Return, name, replacement)
		if !changed && ret == t.Return {
			return t
		}
		return &Arrow{Args: args, Return: ret}

	case *App:
		args, changed := substituteList(t.Args, name, replacement)
		if !changed {
			return t
		}
		return &App{Name: t.Name, Args: args}
	}
	return t
}

func substituteList(ts []Type, name string, replacement Type) ([]Type, bool) {
	var out []Type
	for i, t := range ts {
		s := Substitute(t, name, replacement)
		if s != t && out == nil {
			out = make([]Type, len(ts))
			copy(out, ts[:i])
		}
		if out != nil {
			out[i] = s
		}
	}
	if out == nil {
		return ts, false
	}
	return out, true
}

// Primitive types assigned to literals.
var (
	Int    = &Const{Name: "Int"}
	Bool   = &Const{Name: "Bool"}
	Float  = &Const{Name: "Float"}
	String = &Const{Name: "String"}
)
