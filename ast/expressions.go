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

package ast

import (
	"github.com/wdamron/bidi/types"
)

// Expr is the base for all expressions. Expressions are immutable once constructed.
type Expr interface {
	// Name of the syntax-type of the expression.
	ExprName() string
}

var (
	_ Expr = (*Literal)(nil)
	_ Expr = (*Var)(nil)
	_ Expr = (*Extern)(nil)
	_ Expr = (*Let)(nil)
	_ Expr = (*Func)(nil)
	_ Expr = (*Call)(nil)
	_ Expr = (*Annot)(nil)
)

// Literal value. The type of a literal is determined by the kind of its value:
// integers are `Int`, booleans are `Bool`, floats are `Float` and strings are `String`.
type Literal struct {
	// Syntax is a string representation of the literal value. When empty, the value is printed.
	Syntax string
	Value  interface{}
}

// "Literal"
func (e *Literal) ExprName() string { return "Literal" }

// Variable
type Var struct {
	Name string
}

// "Var"
func (e *Var) ExprName() string { return "Var" }

// Externally-typed binding: `extern id : forall T. T -> T in e`
//
// The declared type is trusted; Body is inferred with Name bound to Type.
type Extern struct {
	Name string
	Type types.Type
	Body Expr
}

// "Extern"
func (e *Extern) ExprName() string { return "Extern" }

// Monomorphic let-binding: `let a = 1 in e`
type Let struct {
	Var   string
	Value Expr
	Body  Expr
}

// "Let"
func (e *Let) ExprName() string { return "Let" }

// Abstraction: `fn (x, y) -> x`
type Func struct {
	ArgNames []string
	Body     Expr
}

// "Func"
func (e *Func) ExprName() string { return "Func" }

// Application: `f(x)`
type Call struct {
	Func Expr
	Args []Expr
}

// "Call"
func (e *Call) ExprName() string { return "Call" }

// Type annotation: `(e : int)`
type Annot struct {
	Expr Expr
	Type types.Type
}

// "Annot"
func (e *Annot) ExprName() string { return "Annot" }
