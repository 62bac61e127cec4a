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
	"github.com/wdamron/bidi/internal/typeutil"
	"github.com/wdamron/bidi/types"
)

// Instantiate the unsolved existential alpha such that alpha is a subtype of b.
func (c *checker) instantiateL(ctx typeutil.Context, alpha int, b types.Type) (typeutil.Context, error) {
	if err := c.enter(judgeInstL); err != nil {
		return ctx, err
	}
	defer c.leave()

	left, right, err := ctx.SplitAt(typeutil.ExistVar(alpha))
	if err != nil {
		return ctx, internalError(judgeInstL, "", err)
	}

	if types.IsMono(b) && left.IsWellFormed(b) {
		c.trace(ctx, judgeInstL, "Solve", alpha, b)
		return c.solve(ctx, judgeInstL, alpha, b)
	}

	switch b := b.(type) {
	case *types.Exist:
		if !right.HasExist(b.Id) {
			break
		}
		c.trace(ctx, judgeInstL, "Reach", alpha, b)
		return c.solve(ctx, judgeInstL, b.Id, &types.Exist{Id: alpha})

	case *types.Arrow:
		c.trace(ctx, judgeInstL, "Arrow", alpha, b)
		ctx, params, ret, err := c.articulate(ctx, alpha, len(b.Args))
		if err != nil {
			return ctx, internalError(judgeInstL, "Arrow", err)
		}
		for i, param := range params {
			if ctx, err = c.instantiateR(ctx, ctx.Apply(b.Args[i]), param); err != nil {
				return ctx, err
			}
		}
		return c.instantiateL(ctx, ret, ctx.Apply(b.Return))

	case *types.App:
		c.trace(ctx, judgeInstL, "App", alpha, b)
		ctx, args, err := c.articulateApp(ctx, alpha, b.Name, len(b.Args))
		if err != nil {
			return ctx, internalError(judgeInstL, "App", err)
		}
		for i, arg := range args {
			if ctx, err = c.instantiateL(ctx, arg, ctx.Apply(b.Args[i])); err != nil {
				return ctx, err
			}
		}
		return ctx, nil

	case *types.Forall:
		c.trace(ctx, judgeInstL, "Forall", alpha, b)
		rigid := typeutil.RigidVar(c.vars.New(), b.Var)
		ctx, err := c.instantiateL(ctx.Add(rigid), alpha, b.Body)
		if err != nil {
			return ctx, err
		}
		if ctx, err = ctx.DropAfter(rigid); err != nil {
			return ctx, internalError(judgeInstL, "Forall", err)
		}
		return ctx, nil
	}

	c.trace(ctx, judgeInstL, "", alpha, b)
	return ctx, fail(InstantiationFailure, judgeInstL, "", "", alpha, b)
}

// Instantiate the unsolved existential alpha such that a is a subtype of alpha.
func (c *checker) instantiateR(ctx typeutil.Context, a types.Type, alpha int) (typeutil.Context, error) {
	if err := c.enter(judgeInstR); err != nil {
		return ctx, err
	}
	defer c.leave()

	left, right, err := ctx.SplitAt(typeutil.ExistVar(alpha))
	if err != nil {
		return ctx, internalError(judgeInstR, "", err)
	}

	if types.IsMono(a) && left.IsWellFormed(a) {
		c.trace(ctx, judgeInstR, "Solve", a, alpha)
		return c.solve(ctx, judgeInstR, alpha, a)
	}

	switch a := a.(type) {
	case *types.Exist:
		if !right.HasExist(a.Id) {
			break
		}
		c.trace(ctx, judgeInstR, "Reach", a, alpha)
		return c.solve(ctx, judgeInstR, a.Id, &types.Exist{Id: alpha})

	case *types.Arrow:
		c.trace(ctx, judgeInstR, "Arrow", a, alpha)
		ctx, params, ret, err := c.articulate(ctx, alpha, len(a.Args))
		if err != nil {
			return ctx, internalError(judgeInstR, "Arrow", err)
		}
		for i, param := range params {
			if ctx, err = c.instantiateL(ctx, param, ctx.Apply(a.Args[i])); err != nil {
				return ctx, err
			}
		}
		return c.instantiateR(ctx, ctx.Apply(a.Return), ret)

	case *types.App:
		c.trace(ctx, judgeInstR, "App", a, alpha)
		ctx, args, err := c.articulateApp(ctx, alpha, a.Name, len(a.Args))
		if err != nil {
			return ctx, internalError(judgeInstR, "App", err)
		}
		for i, arg := range args {
			if ctx, err = c.instantiateR(ctx, ctx.Apply(a.Args[i]), arg); err != nil {
				return ctx, err
			}
		}
		return ctx, nil

	case *types.Forall:
		c.trace(ctx, judgeInstR, "Forall", a, alpha)
		id := c.vars.New()
		marker := typeutil.Marker(id)
		ctx = ctx.Add(marker, typeutil.ExistVar(id))
		ctx, err := c.instantiateR(ctx, types.Substitute(a.Body, a.Var, &types.Exist{Id: id}), alpha)
		if err != nil {
			return ctx, err
		}
		if ctx, err = ctx.DropAfter(marker); err != nil {
			return ctx, internalError(judgeInstR, "Forall", err)
		}
		return ctx, nil
	}

	c.trace(ctx, judgeInstR, "", a, alpha)
	return ctx, fail(InstantiationFailure, judgeInstR, "", "", a, alpha)
}

// solve replaces the unsolved existential id with its solution.
func (c *checker) solve(ctx typeutil.Context, judgment string, id int, t types.Type) (typeutil.Context, error) {
	out, err := ctx.SpliceReplace(typeutil.ExistVar(id), typeutil.Solved(id, t))
	if err != nil {
		return ctx, internalError(judgment, "Solve", err)
	}
	return out, nil
}
