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
	"fmt"

	"github.com/wdamron/bidi/ast"
	"github.com/wdamron/bidi/internal/typeutil"
	"github.com/wdamron/bidi/types"
)

func literalType(e *ast.Literal) (types.Type, bool) {
	switch e.Value.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return types.Int, true
	case bool:
		return types.Bool, true
	case float32, float64:
		return types.Float, true
	case string:
		return types.String, true
	}
	return nil, false
}

// Synthesize a type for e. The returned type may refer to existentials solved in the returned context.
func (c *checker) synthesize(ctx typeutil.Context, e ast.Expr) (_ types.Type, _ typeutil.Context, err error) {
	if err := c.enter(judgeSynth); err != nil {
		return nil, ctx, blame(e, err)
	}
	defer func() {
		c.leave()
		if err != nil {
			err = blame(e, err)
		}
	}()

	switch e := e.(type) {
	case *ast.Literal:
		c.trace(ctx, judgeSynth, "Lit", e)
		t, ok := literalType(e)
		if !ok {
			return nil, ctx, fail(InvalidLiteral, judgeSynth, "Lit", fmt.Sprintf("no primitive type for %T", e.Value), e)
		}
		return t, ctx, nil

	case *ast.Var:
		c.trace(ctx, judgeSynth, "Var", e)
		t, ok := ctx.LookupBinding(e.Name)
		if !ok {
			return nil, ctx, fail(UnboundVariable, judgeSynth, "Var", "variable "+e.Name+" not found", e)
		}
		return t, ctx, nil

	case *ast.Extern:
		c.trace(ctx, judgeSynth, "Extern", e.Name, e.Type)
		if err := c.wellFormed(ctx, judgeSynth, "Extern", e.Type); err != nil {
			return nil, ctx, err
		}
		return c.synthesizeIn(ctx, typeutil.Binding(c.vars.New(), e.Name, e.Type), e.Body, "Extern")

	case *ast.Let:
		c.trace(ctx, judgeSynth, "Let", e.Var, e.Value)
		t, ctx, err := c.synthesize(ctx, e.Value)
		if err != nil {
			return nil, ctx, err
		}
		return c.synthesizeIn(ctx, typeutil.Binding(c.vars.New(), e.Var, ctx.Apply(t)), e.Body, "Let")

	case *ast.Annot:
		c.trace(ctx, judgeSynth, "Anno", e.Expr, e.Type)
		if err := c.wellFormed(ctx, judgeSynth, "Anno", e.Type); err != nil {
			return nil, ctx, err
		}
		ctx, err := c.check(ctx, e.Expr, e.Type)
		if err != nil {
			return nil, ctx, err
		}
		return e.Type, ctx, nil

	case *ast.Func:
		c.trace(ctx, judgeSynth, "ArrowI", e)
		params, ret := c.vars.NewList(len(e.ArgNames)), c.vars.New()
		for _, id := range params {
			ctx = ctx.Add(typeutil.ExistVar(id))
		}
		ctx = ctx.Add(typeutil.ExistVar(ret))
		args := exists(params)
		ctx, scope := c.bindArgs(ctx, e.ArgNames, args)
		ctx, err := c.check(ctx, e.Body, &types.Exist{Id: ret})
		if err != nil {
			return nil, ctx, err
		}
		if ctx, err = dropScope(ctx, scope); err != nil {
			return nil, ctx, internalError(judgeSynth, "ArrowI", err)
		}
		return &types.Arrow{Args: args, Return: &types.Exist{Id: ret}}, ctx, nil

	case *ast.Call:
		c.trace(ctx, judgeSynth, "ArrowE", e)
		fn, ctx, err := c.synthesize(ctx, e.Func)
		if err != nil {
			return nil, ctx, err
		}
		return c.synthesizeApp(ctx, ctx.Apply(fn), e.Args)
	}

	c.trace(ctx, judgeSynth, "", e)
	return nil, ctx, fail(InternalInvariantViolation, judgeSynth, "", fmt.Sprintf("unknown expression type %T", e))
}

// synthesizeIn synthesizes body with binding in scope. Only the binding is removed afterwards; existentials
// introduced by body stay in the context, since the returned type may refer to them.
func (c *checker) synthesizeIn(ctx typeutil.Context, binding typeutil.Element, body ast.Expr, rule string) (types.Type, typeutil.Context, error) {
	t, ctx, err := c.synthesize(ctx.Add(binding), body)
	if err != nil {
		return nil, ctx, err
	}
	t = ctx.Apply(t)
	if ctx, err = ctx.SpliceReplace(binding); err != nil {
		return nil, ctx, internalError(judgeSynth, rule, err)
	}
	return t, ctx, nil
}

// bindArgs binds each argument name to its type. The first binding is returned as the scope to drop.
func (c *checker) bindArgs(ctx typeutil.Context, names []string, ts []types.Type) (typeutil.Context, *typeutil.Element) {
	var scope *typeutil.Element
	for i, name := range names {
		b := typeutil.Binding(c.vars.New(), name, ts[i])
		if scope == nil {
			scope = &b
		}
		ctx = ctx.Add(b)
	}
	return ctx, scope
}

func dropScope(ctx typeutil.Context, scope *typeutil.Element) (typeutil.Context, error) {
	if scope == nil {
		return ctx, nil
	}
	return ctx.DropAfter(*scope)
}

// Check e against t.
func (c *checker) check(ctx typeutil.Context, e ast.Expr, t types.Type) (_ typeutil.Context, err error) {
	if err := c.enter(judgeCheck); err != nil {
		return ctx, blame(e, err)
	}
	defer func() {
		c.leave()
		if err != nil {
			err = blame(e, err)
		}
	}()

	if err := c.wellFormed(ctx, judgeCheck, "", t); err != nil {
		return ctx, err
	}

	switch t := t.(type) {
	case *types.Arrow:
		f, ok := e.(*ast.Func)
		if !ok || len(f.ArgNames) != len(t.Args) {
			break
		}
		c.trace(ctx, judgeCheck, "ArrowI", e, t)
		ctx, scope := c.bindArgs(ctx, f.ArgNames, t.Args)
		ctx, err := c.check(ctx, f.Body, t.Return)
		if err != nil {
			return ctx, err
		}
		if ctx, err = dropScope(ctx, scope); err != nil {
			return ctx, internalError(judgeCheck, "ArrowI", err)
		}
		return ctx, nil

	case *types.Forall:
		c.trace(ctx, judgeCheck, "ForallI", e, t)
		rigid := typeutil.RigidVar(c.vars.New(), t.Var)
		ctx, err := c.check(ctx.Add(rigid), e, t.Body)
		if err != nil {
			return ctx, err
		}
		if ctx, err = ctx.DropAfter(rigid); err != nil {
			return ctx, internalError(judgeCheck, "ForallI", err)
		}
		return ctx, nil
	}

	c.trace(ctx, judgeCheck, "Sub", e, t)
	a, ctx, err := c.synthesize(ctx, e)
	if err != nil {
		return ctx, err
	}
	return c.subtype(ctx, ctx.Apply(a), ctx.Apply(t))
}

// Synthesize the result type of applying a function of type fn to args.
func (c *checker) synthesizeApp(ctx typeutil.Context, fn types.Type, args []ast.Expr) (types.Type, typeutil.Context, error) {
	if err := c.enter(judgeApp); err != nil {
		return nil, ctx, err
	}
	defer c.leave()

	switch fn := fn.(type) {
	case *types.Exist:
		c.trace(ctx, judgeApp, "ExistApp", fn)
		ctx, params, ret, err := c.articulate(ctx, fn.Id, len(args))
		if err != nil {
			return nil, ctx, internalError(judgeApp, "ExistApp", err)
		}
		for i, arg := range args {
			if ctx, err = c.check(ctx, arg, &types.Exist{Id: params[i]}); err != nil {
				return nil, ctx, err
			}
		}
		return &types.Exist{Id: ret}, ctx, nil

	case *types.Forall:
		c.trace(ctx, judgeApp, "ForallApp", fn)
		id := c.vars.New()
		ctx = ctx.Add(typeutil.ExistVar(id))
		return c.synthesizeApp(ctx, types.Substitute(fn.Body, fn.Var, &types.Exist{Id: id}), args)

	case *types.Arrow:
		c.trace(ctx, judgeApp, "ArrowApp", fn)
		if len(fn.Args) != len(args) {
			return nil, ctx, fail(ArityMismatch, judgeApp, "ArrowApp",
				fmt.Sprintf("expected %d arguments, got %d", len(fn.Args), len(args)), fn)
		}
		var err error
		for i, arg := range args {
			if ctx, err = c.check(ctx, arg, ctx.Apply(fn.Args[i])); err != nil {
				return nil, ctx, err
			}
		}
		return fn.Return, ctx, nil
	}

	c.trace(ctx, judgeApp, "", fn)
	return nil, ctx, fail(NotAFunctionType, judgeApp, "", "", fn)
}
