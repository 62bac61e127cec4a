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

// WalkExpr calls f for e and each of its sub-expressions, parents before children.
func WalkExpr(e Expr, f func(Expr)) {
	switch e := e.(type) {
	case *Var, *Literal:
		f(e)

	case *Call:
		f(e)
		WalkExpr(e.Func, f)
		for _, arg := range e.Args {
			WalkExpr(arg, f)
		}

	case *Func:
		f(e)
		WalkExpr(e.Body, f)

	case *Let:
		f(e)
		WalkExpr(e.Value, f)
		WalkExpr(e.Body, f)

	case *Extern:
		f(e)
		WalkExpr(e.Body, f)

	case *Annot:
		f(e)
		WalkExpr(e.Expr, f)

	case nil:

	default:
		panic("unknown expression type: " + e.ExprName())
	}
}

// FindIncomplete returns the first expression in e, in walk order, which is missing a sub-expression or type.
// The result is nil if e is complete.
func FindIncomplete(e Expr) Expr {
	var found Expr
	WalkExpr(e, func(e Expr) {
		if found == nil && incomplete(e) {
			found = e
		}
	})
	return found
}

func incomplete(e Expr) bool {
	switch e := e.(type) {
	case *Call:
		if e.Func == nil {
			return true
		}
		for _, arg := range e.Args {
			if arg == nil {
				return true
			}
		}
	case *Func:
		return e.Body == nil
	case *Let:
		return e.Value == nil || e.Body == nil
	case *Extern:
		return e.Type == nil || e.Body == nil
	case *Annot:
		return e.Expr == nil || e.Type == nil
	}
	return false
}
