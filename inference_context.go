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
	"errors"

	"github.com/wdamron/bidi/ast"
	"github.com/wdamron/bidi/types"
)

// InferenceContext is a reusable context for type inference.
//
// An inference context cannot be used concurrently. Each call of Infer uses its own context ledger and
// existential-id space, so separate inference contexts may be used in parallel.
type InferenceContext struct {
	// Tracer receives an event for each judgment. Events are discarded if Tracer is nil.
	Tracer Tracer
	// MaxDepth bounds the nesting of judgments. The default (0) does not bound the derivation.
	MaxDepth int
	// Generalize quantifies unsolved existentials of the inferred type over fresh rigid type-variables.
	Generalize bool

	needsReset bool
	rootExpr   ast.Expr
	err        error
	invalid    ast.Expr
}

// Create a new type-inference context. A context may be reused for inference.
func NewContext() *InferenceContext { return &InferenceContext{} }

func (ti *InferenceContext) reset() {
	ti.rootExpr, ti.err, ti.invalid, ti.needsReset = nil, nil, nil, false
}

// Reset the state of the context. The context will be reset automatically before inference.
func (ti *InferenceContext) Reset() {
	if !ti.needsReset {
		return
	}
	ti.reset()
}

// Get the error which caused inference to fail.
func (ti *InferenceContext) Error() error { return ti.err }

// Get the expression which caused inference to fail.
func (ti *InferenceContext) InvalidExpr() ast.Expr { return ti.invalid }

// Infer the type of expr. Bindings declared in env (which may be nil) are in scope within expr.
//
// The returned type contains no solved existentials. Unsolved existentials remain in the type unless
// Generalize is enabled.
func (ti *InferenceContext) Infer(expr ast.Expr, env *TypeEnv) (types.Type, error) {
	if expr == nil {
		return nil, errors.New("Empty expression")
	}
	if ti.needsReset {
		ti.reset()
	}
	ti.rootExpr, ti.needsReset = expr, true
	if bad := ast.FindIncomplete(expr); bad != nil {
		ti.err, ti.invalid = errors.New("Empty sub-expression in "+bad.ExprName()), bad
		return nil, ti.err
	}

	c := newChecker(ti.Tracer, ti.MaxDepth)
	ctx, err := env.context(&c.vars)
	if err != nil {
		return nil, ti.fail(err)
	}
	t, ctx, err := c.synthesize(ctx, expr)
	if err != nil {
		return nil, ti.fail(err)
	}
	t = ctx.Apply(t)
	if ti.Generalize {
		t = generalize(t)
	}
	return t, nil
}

func (ti *InferenceContext) fail(err error) error {
	ti.err = err
	var ierr *Error
	if errors.As(err, &ierr) && ierr.Expr != nil {
		ti.invalid = ierr.Expr
	} else {
		ti.invalid = ti.rootExpr
	}
	return err
}
