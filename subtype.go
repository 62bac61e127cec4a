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

	"github.com/wdamron/bidi/internal/typeutil"
	"github.com/wdamron/bidi/types"
)

// Check that a is a subtype of b. Both types must be applied to ctx.
//
// Rules are tried in order: structural rules for matching constructors, then quantifier rules (right before
// left), then instantiation of existentials.
func (c *checker) subtype(ctx typeutil.Context, a, b types.Type) (typeutil.Context, error) {
	if err := c.enter(judgeSub); err != nil {
		return ctx, err
	}
	defer c.leave()

	if err := c.wellFormed(ctx, judgeSub, "", a, b); err != nil {
		return ctx, err
	}

	switch a := a.(type) {
	case *types.Const:
		if b, ok := b.(*types.Const); ok {
			c.trace(ctx, judgeSub, "Const", a, b)
			if a.Name != b.Name {
				return ctx, fail(IncompatibleTypes, judgeSub, "Const", "", a, b)
			}
			return ctx, nil
		}

	case *types.Rigid:
		if b, ok := b.(*types.Rigid); ok {
			c.trace(ctx, judgeSub, "Rigid", a, b)
			if a.Name != b.Name {
				return ctx, fail(IncompatibleTypes, judgeSub, "Rigid", "", a, b)
			}
			return ctx, nil
		}

	case *types.Exist:
		if b, ok := b.(*types.Exist); ok && a.Id == b.Id {
			c.trace(ctx, judgeSub, "Exist", a, b)
			return ctx, nil
		}

	case *types.App:
		b, ok := b.(*types.App)
		if !ok {
			break
		}
		c.trace(ctx, judgeSub, "App", a, b)
		if a.Name != b.Name {
			return ctx, fail(IncompatibleTypes, judgeSub, "App", "", a, b)
		}
		if len(a.Args) != len(b.Args) {
			return ctx, fail(ArityMismatch, judgeSub, "App",
				fmt.Sprintf("expected %d type arguments, got %d", len(b.Args), len(a.Args)), a, b)
		}
		var err error
		for i := range a.Args {
			if ctx, err = c.subtype(ctx, ctx.Apply(a.Args[i]), ctx.Apply(b.Args[i])); err != nil {
				return ctx, err
			}
		}
		return ctx, nil

	case *types.Arrow:
		b, ok := b.(*types.Arrow)
		if !ok {
			break
		}
		c.trace(ctx, judgeSub, "Arrow", a, b)
		if len(a.Args) != len(b.Args) {
			return ctx, fail(ArityMismatch, judgeSub, "Arrow",
				fmt.Sprintf("expected %d arguments, got %d", len(b.Args), len(a.Args)), a, b)
		}
		var err error
		for i := range a.Args {
			// parameters are contravariant
			if ctx, err = c.subtype(ctx, ctx.Apply(b.Args[i]), ctx.Apply(a.Args[i])); err != nil {
				return ctx, err
			}
		}
		return c.subtype(ctx, ctx.Apply(a.Return), ctx.Apply(b.Return))
	}

	if bf, ok := b.(*types.Forall); ok {
		c.trace(ctx, judgeSub, "ForallR", a, b)
		rigid := typeutil.RigidVar(c.vars.New(), bf.Var)
		ctx, err := c.subtype(ctx.Add(rigid), a, bf.Body)
		if err != nil {
			return ctx, err
		}
		if ctx, err = ctx.DropAfter(rigid); err != nil {
			return ctx, internalError(judgeSub, "ForallR", err)
		}
		return ctx, nil
	}

	if af, ok := a.(*types.Forall); ok {
		c.trace(ctx, judgeSub, "ForallL", a, b)
		id := c.vars.New()
		marker := typeutil.Marker(id)
		ctx, err := c.subtype(ctx.Add(marker, typeutil.ExistVar(id)), types.Substitute(af.Body, af.Var, &types.Exist{Id: id}), b)
		if err != nil {
			return ctx, err
		}
		if ctx, err = ctx.DropAfter(marker); err != nil {
			return ctx, internalError(judgeSub, "ForallL", err)
		}
		return ctx, nil
	}

	if ae, ok := a.(*types.Exist); ok {
		c.trace(ctx, judgeSub, "InstantiateL", a, b)
		if types.HasExist(b, ae.Id) {
			return ctx, fail(OccursCheckFailure, judgeSub, "InstantiateL", types.ExistName(ae.Id)+" occurs in "+types.TypeString(b), a, b)
		}
		return c.instantiateL(ctx, ae.Id, b)
	}

	if be, ok := b.(*types.Exist); ok {
		c.trace(ctx, judgeSub, "InstantiateR", a, b)
		if types.HasExist(a, be.Id) {
			return ctx, fail(OccursCheckFailure, judgeSub, "InstantiateR", types.ExistName(be.Id)+" occurs in "+types.TypeString(a), a, b)
		}
		return c.instantiateR(ctx, a, be.Id)
	}

	c.trace(ctx, judgeSub, "", a, b)
	return ctx, fail(IncompatibleTypes, judgeSub, "", "", a, b)
}
