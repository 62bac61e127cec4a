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

// bidi provides bidirectional type-inference for a calculus with higher-rank polymorphism.
//
// The type-system has explicit universal quantification, function types over multiple arguments and
// generic type constructors. Types are synthesized or checked against an ordered context of typing facts,
// with existential type-variables standing in for unknown monotypes until they are solved by subtyping.
//
// The implementation is based on the algorithm by Dunfield and Krishnaswami.
//
// Links:
//
// * Complete and Easy Bidirectional Typechecking for Higher-Rank Polymorphism (Dunfield, Krishnaswami, 2013): https://arxiv.org/abs/1306.6032
//
// * Practical type inference for arbitrary-rank types (Peyton Jones et al., 2007): https://www.microsoft.com/en-us/research/publication/practical-type-inference-for-arbitrary-rank-types/
package bidi

import (
	"github.com/samber/lo"

	"github.com/wdamron/bidi/ast"
	"github.com/wdamron/bidi/internal/typeutil"
	"github.com/wdamron/bidi/types"
)

// Infer the type of expr in an empty environment.
func Infer(expr ast.Expr) (types.Type, error) { return NewContext().Infer(expr, nil) }

const (
	judgeSynth = "synthesize"
	judgeCheck = "check"
	judgeApp   = "apply"
	judgeSub   = "subtype"
	judgeInstL = "instantiateL"
	judgeInstR = "instantiateR"
	judgeEnv   = "environment"
)

// checker holds the state of a single inference run. The only mutable state is the id tracker;
// contexts are threaded through the judgments as values.
type checker struct {
	vars     typeutil.VarTracker
	tracer   Tracer
	maxDepth int
	depth    int
}

func newChecker(tracer Tracer, maxDepth int) *checker {
	return &checker{tracer: tracer, maxDepth: maxDepth}
}

func (c *checker) enter(judgment string) error {
	c.depth++
	if c.maxDepth > 0 && c.depth > c.maxDepth {
		c.depth--
		return &Error{Kind: DepthLimitExceeded, Judgment: judgment}
	}
	return nil
}

func (c *checker) leave() { c.depth-- }

func (c *checker) trace(ctx typeutil.Context, judgment, rule string, operands ...interface{}) {
	if c.tracer == nil {
		return
	}
	c.tracer.Trace(TraceEvent{
		Depth:    c.depth,
		Judgment: judgment,
		Rule:     rule,
		Context:  ctx.String(),
		Operands: render(operands),
	})
}

func fail(kind ErrorKind, judgment, rule, detail string, operands ...interface{}) error {
	return &Error{Kind: kind, Judgment: judgment, Rule: rule, Detail: detail, Operands: render(operands)}
}

// internalError reports a context element which a rule expected to find.
func internalError(judgment, rule string, err error) error {
	return &Error{Kind: InternalInvariantViolation, Judgment: judgment, Rule: rule, Err: err}
}

// wellFormed checks every type against ctx, reporting all violations together.
func (c *checker) wellFormed(ctx typeutil.Context, judgment, rule string, ts ...types.Type) error {
	if err := ctx.CheckWellFormed(ts...); err != nil {
		return &Error{Kind: UnboundTypeReference, Judgment: judgment, Rule: rule, Err: err, Operands: render(typesOperands(ts))}
	}
	return nil
}

func typesOperands(ts []types.Type) []interface{} {
	return lo.Map(ts, func(t types.Type, _ int) interface{} { return t })
}

func render(operands []interface{}) []string {
	if len(operands) == 0 {
		return nil
	}
	out := make([]string, len(operands))
	for i, op := range operands {
		switch op := op.(type) {
		case types.Type:
			out[i] = types.TypeString(op)
		case ast.Expr:
			out[i] = ast.ExprString(op)
		case string:
			out[i] = op
		case int:
			out[i] = types.ExistName(op)
		}
	}
	return out
}

func exists(ids []int) []types.Type {
	return lo.Map(ids, func(id int, _ int) types.Type { return &types.Exist{Id: id} })
}

// articulate replaces the unsolved existential alpha with a function type over fresh existentials:
// `[..., ret, pN, ..., p1, alpha = (p1, ..., pN) -> ret, ...]`.
func (c *checker) articulate(ctx typeutil.Context, alpha, arity int) (typeutil.Context, []int, int, error) {
	params, ret := c.vars.NewList(arity), c.vars.New()
	elems := make([]typeutil.Element, 0, arity+2)
	elems = append(elems, typeutil.ExistVar(ret))
	for i := arity - 1; i >= 0; i-- {
		elems = append(elems, typeutil.ExistVar(params[i]))
	}
	elems = append(elems, typeutil.Solved(alpha, &types.Arrow{Args: exists(params), Return: &types.Exist{Id: ret}}))
	ctx, err := ctx.SpliceReplace(typeutil.ExistVar(alpha), elems...)
	return ctx, params, ret, err
}

// articulateApp replaces the unsolved existential alpha with an application of the named constructor
// to fresh existentials: `[..., aN, ..., a1, alpha = name[a1, ..., aN], ...]`.
func (c *checker) articulateApp(ctx typeutil.Context, alpha int, name string, arity int) (typeutil.Context, []int, error) {
	args := c.vars.NewList(arity)
	elems := make([]typeutil.Element, 0, arity+1)
	for i := arity - 1; i >= 0; i-- {
		elems = append(elems, typeutil.ExistVar(args[i]))
	}
	elems = append(elems, typeutil.Solved(alpha, &types.App{Name: name, Args: exists(args)}))
	ctx, err := ctx.SpliceReplace(typeutil.ExistVar(alpha), elems...)
	return ctx, args, err
}
