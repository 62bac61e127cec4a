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
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/sanity-io/litter"

	"github.com/wdamron/bidi/ast"
	. "github.com/wdamron/bidi/construct"
	"github.com/wdamron/bidi/internal/typeutil"
	"github.com/wdamron/bidi/types"
)

var identity = TForall("T", TArrow1(TVar("T"), TVar("T")))

func inferString(t *testing.T, ctx *InferenceContext, expr ast.Expr, env *TypeEnv) string {
	t.Helper()
	ty, err := ctx.Infer(expr, env)
	if err != nil {
		t.Fatalf("%s: %v", ast.ExprString(expr), err)
	}
	return types.TypeString(ty)
}

func expectKind(t *testing.T, expr ast.Expr, env *TypeEnv, kind ErrorKind) *Error {
	t.Helper()
	ty, err := NewContext().Infer(expr, env)
	if err == nil {
		t.Fatalf("%s: expected %v, got type %s", ast.ExprString(expr), kind, types.TypeString(ty))
	}
	if !errors.Is(err, kind) {
		t.Fatalf("%s: expected %v, got %v", ast.ExprString(expr), kind, err)
	}
	var ierr *Error
	if !errors.As(err, &ierr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	t.Logf("Passed check for %v: %v", kind, err)
	return ierr
}

func TestSynthesizeLiteral(t *testing.T) {
	c := newChecker(nil, 0)
	ctx := typeutil.EmptyContext().Add(typeutil.ExistVar(c.vars.New()))
	ty, out, err := c.synthesize(ctx, Lit(123))
	if err != nil {
		t.Fatal(err)
	}
	if ty != types.Type(types.Int) {
		t.Fatalf("type: %s", types.TypeString(ty))
	}
	if out.String() != ctx.String() {
		t.Fatalf("expected unchanged context, got [%s]", out)
	}

	for _, c := range []struct {
		value interface{}
		want  string
	}{{true, "Bool"}, {1.5, "Float"}, {"s", "String"}, {uint8(1), "Int"}} {
		if s := inferString(t, NewContext(), Lit(c.value), nil); s != c.want {
			t.Fatalf("%v: expected %s, got %s", c.value, c.want, s)
		}
	}
	expectKind(t, Lit(struct{}{}), nil, InvalidLiteral)
}

func TestPolymorphicExtern(t *testing.T) {
	expr := Extern("id", identity, Call(Var("id"), Lit(5)))

	exprString := ast.ExprString(expr)
	if exprString != "extern id : forall T. T -> T in id(5)" {
		t.Fatalf("expr: %s", exprString)
	}
	t.Logf("expr: %s", exprString)

	typeString := inferString(t, NewContext(), expr, nil)
	if typeString != "Int" {
		t.Fatalf("type: %s", typeString)
	}
	t.Logf("type: %s", typeString)
}

func TestCheckAgainstForall(t *testing.T) {
	c := newChecker(nil, 0)
	ctx, err := c.check(typeutil.EmptyContext(), Func1("x", Var("x")), identity)
	if err != nil {
		t.Fatal(err)
	}
	if ctx.Len() != 0 {
		t.Fatalf("expected the rigid variable to be dropped, got [%s]", ctx)
	}
}

func TestFunctionAppliedToFunction(t *testing.T) {
	ctx := NewContext()
	expr := Call(Func1("x", Var("x")), Func1("y", Var("y")))

	ty, err := ctx.Infer(expr, nil)
	if err != nil {
		t.Fatal(err)
	}
	arrow, ok := ty.(*types.Arrow)
	if !ok {
		t.Fatalf("expected a function type, got %s", types.TypeString(ty))
	}
	if len(arrow.Args) != 1 || !types.Equal(arrow.Args[0], arrow.Return) {
		t.Fatalf("expected an identity function type, got %s", types.TypeString(ty))
	}
	if typeString := types.TypeString(ty); typeString != "'_7 -> '_7" {
		t.Fatalf("type: %s", typeString)
	}

	ctx.Generalize = true
	if typeString := inferString(t, ctx, expr, nil); typeString != "forall a. a -> a" {
		t.Fatalf("type: %s", typeString)
	}
}

func TestImpredicativeListElement(t *testing.T) {
	// first : forall E. []E -> E applied to a list of polymorphic functions
	first := TForall("E", TArrow1(TList(TVar("E")), TVar("E")))
	fnList := TList(TForall("X", TArrow1(TVar("X"), TVar("X"))))
	expr := Extern("first", first, Extern("fn_list", fnList, Call(Var("first"), Var("fn_list"))))

	typeString := inferString(t, NewContext(), expr, nil)
	if typeString != "'_5 -> '_5" {
		t.Fatalf("type: %s", typeString)
	}
	t.Logf("type: %s", typeString)
}

func TestUnboundVariable(t *testing.T) {
	ctx := NewContext()
	v := Var("nope")
	expr := Call(Func1("x", Var("x")), v)
	_, err := ctx.Infer(expr, nil)
	if !errors.Is(err, UnboundVariable) {
		t.Fatalf("expected UnboundVariable, got %v", err)
	}
	if ctx.Error() != err {
		t.Fatalf("expected the context to record the error")
	}
	if ctx.InvalidExpr() != ast.Expr(v) {
		t.Fatalf("expected the unbound variable to be blamed, got %s", ast.ExprString(ctx.InvalidExpr()))
	}
	if !strings.Contains(err.Error(), "variable nope not found") {
		t.Fatalf("error: %v", err)
	}

	// bindings of an abstraction are not visible outside of it
	expectKind(t, Let("f", Func1("x", Var("x")), Var("x")), nil, UnboundVariable)
}

func TestMultipleArguments(t *testing.T) {
	add := TArrow2(types.Int, types.Int, types.Int)
	expr := Extern("add", add, Func2("a", "b", Call(Var("add"), Var("a"), Var("b"))))
	ty, err := NewContext().Infer(expr, nil)
	if err != nil {
		t.Fatal(err)
	}
	if typeString := types.TypeString(ty); typeString != "(Int, Int) -> Int" {
		t.Fatalf("type: %s", typeString)
	}
	if !types.IsMono(ty) || len(types.FreeExists(ty)) != 0 {
		t.Fatalf("expected a closed monotype, got %s", types.TypeString(ty))
	}

	// the callee is inferred from the arguments
	ctx := NewContext()
	expr2 := Func1("f", Call(Var("f"), Lit(1), Lit(true)))
	if typeString := inferString(t, ctx, expr2, nil); typeString != "((Int, Bool) -> '_5) -> '_5" {
		t.Fatalf("type: %s", typeString)
	}
	ctx.Generalize = true
	if typeString := inferString(t, ctx, expr2, nil); typeString != "forall a. ((Int, Bool) -> a) -> a" {
		t.Fatalf("type: %s", typeString)
	}
}

func TestArityMismatch(t *testing.T) {
	env := NewTypeEnv(nil)
	env.Declare("add", TArrow2(types.Int, types.Int, types.Int))

	ierr := expectKind(t, Call(Var("add"), Lit(1)), env, ArityMismatch)
	if ierr.Judgment != judgeApp || ierr.Rule != "ArrowApp" || !strings.Contains(ierr.Error(), "expected 2 arguments, got 1") {
		t.Fatalf("error: %v", ierr)
	}
	expectKind(t, Call(Var("add"), Lit(1), Lit(2), Lit(3)), env, ArityMismatch)
	expectKind(t, Annot(Func2("x", "y", Var("x")), TArrow1(types.Int, types.Int)), nil, ArityMismatch)
	expectKind(t, Extern("m", TApp("Map", types.Int), Annot(Var("m"), TApp("Map", types.Int, types.Int))), nil, ArityMismatch)
}

func TestNotAFunction(t *testing.T) {
	expectKind(t, Call(Lit(5), Lit(1)), nil, NotAFunctionType)
}

func TestIncompatibleTypes(t *testing.T) {
	ierr := expectKind(t, Annot(Lit(true), types.Int), nil, IncompatibleTypes)
	if ierr.Judgment != judgeSub || len(ierr.Operands) != 2 || ierr.Operands[0] != "Bool" || ierr.Operands[1] != "Int" {
		t.Fatalf("error: %s", litter.Sdump(ierr.Operands))
	}
	expectKind(t, Extern("xs", TList(types.Int), Annot(Var("xs"), TList(types.Bool))), nil, IncompatibleTypes)
	expectKind(t, Extern("xs", TApp("List", types.Int), Annot(Var("xs"), TList(types.Int))), nil, IncompatibleTypes)

	// a rank-2 argument must be polymorphic
	applyID := TArrow1(identity, types.Int)
	expectKind(t, Extern("apply_id", applyID, Call(Var("apply_id"), Func1("x", Lit(1)))), nil, IncompatibleTypes)
}

func TestOccursCheck(t *testing.T) {
	expectKind(t, Func1("x", Call(Var("x"), Var("x"))), nil, OccursCheckFailure)
}

func TestInstantiationFailure(t *testing.T) {
	// the rigid T would escape into the type of y
	expr := Func1("y", Annot(Func1("x", Var("y")), identity))
	expectKind(t, expr, nil, InstantiationFailure)
}

func TestUnboundTypeReference(t *testing.T) {
	ierr := expectKind(t, Annot(Lit(1), TArrow1(TVar("A"), TVar("B"))), nil, UnboundTypeReference)
	var merr *multierror.Error
	if !errors.As(ierr, &merr) || len(merr.Errors) != 2 {
		t.Fatalf("expected all violations to be reported, got %v", ierr)
	}
	expectKind(t, Extern("f", TArrow1(TVar("A"), types.Int), Lit(1)), nil, UnboundTypeReference)
}

func TestHigherRank(t *testing.T) {
	applyID := TArrow1(identity, types.Int)
	expr := Extern("apply_id", applyID, Call(Var("apply_id"), Func1("x", Var("x"))))
	if typeString := inferString(t, NewContext(), expr, nil); typeString != "Int" {
		t.Fatalf("type: %s", typeString)
	}

	// a polymorphic binding is a subtype of its instances
	expr2 := Extern("id", identity, Annot(Var("id"), TArrow1(types.Int, types.Int)))
	if typeString := inferString(t, NewContext(), expr2, nil); typeString != "Int -> Int" {
		t.Fatalf("type: %s", typeString)
	}

	// checking against a quantified type which is passed on
	expr3 := Annot(Func1("f", Call(Var("f"), Lit(true))), TArrow1(identity, types.Bool))
	if typeString := inferString(t, NewContext(), expr3, nil); typeString != "(forall T. T -> T) -> Bool" {
		t.Fatalf("type: %s", typeString)
	}
}

func TestLet(t *testing.T) {
	expr := Let("x", Lit(1), Let("f", Func1("y", Var("x")), Call(Var("f"), Lit(true))))
	exprString := ast.ExprString(expr)
	if exprString != "let x = 1 in let f = fn (y) -> x in f(true)" {
		t.Fatalf("expr: %s", exprString)
	}
	if typeString := inferString(t, NewContext(), expr, nil); typeString != "Int" {
		t.Fatalf("type: %s", typeString)
	}
}

func TestTypeEnv(t *testing.T) {
	parent := NewTypeEnv(nil)
	parent.Declare("id", identity)
	parent.Declare("n", types.Int)
	env := NewTypeEnv(parent)
	env.Declare("n", types.Bool)

	if typeString := inferString(t, NewContext(), Call(Var("id"), Var("n")), env); typeString != "Bool" {
		t.Fatalf("type: %s", typeString)
	}
	if typeString := inferString(t, NewContext(), Call(Var("id"), Var("n")), parent); typeString != "Int" {
		t.Fatalf("type: %s", typeString)
	}
	if env.Lookup("id") != types.Type(identity) {
		t.Fatalf("expected the parent's declaration")
	}

	env.Remove("n")
	if typeString := inferString(t, NewContext(), Var("n"), env); typeString != "Int" {
		t.Fatalf("type: %s", typeString)
	}

	// types assigned directly are bound too
	env.Types["b"] = types.Bool
	if typeString := inferString(t, NewContext(), Var("b"), env); typeString != "Bool" {
		t.Fatalf("type: %s", typeString)
	}

	open := NewTypeEnv(nil)
	open.Declare("f", TArrow1(TVar("A"), TVar("A")))
	ierr := expectKind(t, Lit(1), open, UnboundTypeReference)
	if ierr.Judgment != judgeEnv {
		t.Fatalf("error: %v", ierr)
	}
}

func TestInferTwice(t *testing.T) {
	ctx := NewContext()
	expr := Call(Func1("x", Var("x")), Func1("y", Var("y")))

	// Infer twice to ensure state is properly reset between calls:
	first := inferString(t, ctx, expr, nil)
	_, err := ctx.Infer(Var("missing"), nil)
	if err == nil || ctx.Error() == nil {
		t.Fatalf("expected an error")
	}
	second := inferString(t, ctx, expr, nil)
	if first != second {
		t.Fatalf("expected identical results, got %s and %s", first, second)
	}
	if ctx.Error() != nil || ctx.InvalidExpr() != nil {
		t.Fatalf("expected the previous error to be reset")
	}

	if _, err := ctx.Infer(nil, nil); err == nil {
		t.Fatalf("expected an error for an empty expression")
	}
	call := Call(Var("f"), nil)
	if _, err := ctx.Infer(Func1("f", call), nil); err == nil || ctx.InvalidExpr() != ast.Expr(call) {
		t.Fatalf("expected the incomplete call to be reported, got %v", err)
	}
}

func TestConcurrentInference(t *testing.T) {
	expr := Extern("id", identity, Func1("f", Call(Var("f"), Call(Var("id"), Lit(1)))))
	want := inferString(t, NewContext(), expr, nil)
	results := make(chan string, 8)
	for i := 0; i < cap(results); i++ {
		go func() {
			ty, err := Infer(expr)
			if err != nil {
				results <- err.Error()
				return
			}
			results <- types.TypeString(ty)
		}()
	}
	for i := 0; i < cap(results); i++ {
		if got := <-results; got != want {
			t.Fatalf("expected %s, got %s", want, got)
		}
	}
}

func TestDepthLimit(t *testing.T) {
	var expr ast.Expr = Lit(1)
	for i := 0; i < 10; i++ {
		expr = Call(Func1("x", Var("x")), expr)
	}
	ctx := NewContext()
	ctx.MaxDepth = 8
	_, err := ctx.Infer(expr, nil)
	if !errors.Is(err, DepthLimitExceeded) {
		t.Fatalf("expected DepthLimitExceeded, got %v", err)
	}

	ctx.MaxDepth = 0
	if typeString := inferString(t, ctx, expr, nil); typeString != "Int" {
		t.Fatalf("type: %s", typeString)
	}
}

func TestTracer(t *testing.T) {
	var events []TraceEvent
	ctx := NewContext()
	ctx.Tracer = TracerFunc(func(ev TraceEvent) { events = append(events, ev) })

	expr := Extern("id", identity, Call(Var("id"), Lit(5)))
	traced := inferString(t, ctx, expr, nil)
	if traced != "Int" {
		t.Fatalf("type: %s", traced)
	}
	if len(events) == 0 {
		t.Fatalf("expected trace events")
	}
	first := events[0]
	if first.Judgment != judgeSynth || first.Rule != "Extern" || first.Depth != 1 || first.Context != "" {
		t.Fatalf("first event: %s", litter.Sdump(first))
	}
	var rules []string
	for _, ev := range events {
		if ev.Depth < 1 {
			t.Fatalf("depth: %#v", ev)
		}
		rules = append(rules, ev.Judgment+"/"+ev.Rule)
	}
	for _, want := range []string{"apply/ForallApp", "apply/ArrowApp", "subtype/InstantiateR", "instantiateR/Solve"} {
		found := false
		for _, rule := range rules {
			if rule == want {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("expected rule %s in %v", want, rules)
		}
	}

	// tracing does not affect the result
	if untraced := inferString(t, NewContext(), expr, nil); untraced != traced {
		t.Fatalf("expected %s, got %s", traced, untraced)
	}
}

func TestLogTracer(t *testing.T) {
	var buf bytes.Buffer
	ctx := NewContext()
	ctx.Tracer = NewLogTracer(log.New(&buf, "", 0))
	inferString(t, ctx, Annot(Lit(1), types.Int), nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) < 3 {
		t.Fatalf("expected at least 3 lines, got %q", buf.String())
	}
	if lines[0] != "synthesize [Anno] 1 | Int in []" {
		t.Fatalf("line: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "  check [Sub] 1 | Int") {
		t.Fatalf("line: %q", lines[1])
	}
}

func TestBindingScopeEndsWithBody(t *testing.T) {
	pair := TForallN([]string{"A", "B"}, TArrow2(TVar("A"), TVar("B"), TApp("Pair", TVar("A"), TVar("B"))))

	ok := Extern("pair", pair, Call(Var("pair"), Extern("z", types.Int, Var("z")), Lit(true)))
	if typeString := inferString(t, NewContext(), ok, nil); typeString != "Pair[Int, Bool]" {
		t.Fatalf("type: %s", typeString)
	}

	for _, arg := range []ast.Expr{
		Extern("z", types.Int, Var("z")),
		Let("z", Lit(true), Var("z")),
	} {
		z := Var("z")
		ctx := NewContext()
		_, err := ctx.Infer(Extern("pair", pair, Call(Var("pair"), arg, z)), nil)
		if !errors.Is(err, UnboundVariable) {
			t.Fatalf("%s: expected UnboundVariable, got %v", ast.ExprString(arg), err)
		}
		if ctx.InvalidExpr() != ast.Expr(z) {
			t.Fatalf("expected the sibling variable to be blamed, got %s", ast.ExprString(ctx.InvalidExpr()))
		}
	}

	// existentials from the body outlive the binding
	expr := Let("f", Extern("g", types.Int, Func1("x", Var("x"))), Call(Var("f"), Lit("s")))
	if typeString := inferString(t, NewContext(), expr, nil); typeString != "String" {
		t.Fatalf("type: %s", typeString)
	}
}

func TestTracerRecordsFailedJudgment(t *testing.T) {
	for _, c := range []struct {
		expr     ast.Expr
		judgment string
		kind     ErrorKind
	}{
		{Call(Lit(5), Lit(1)), judgeApp, NotAFunctionType},
		{Annot(Lit(1), identity), judgeSub, IncompatibleTypes},
		{Func1("y", Annot(Func1("x", Var("y")), identity)), judgeInstL, InstantiationFailure},
	} {
		var last TraceEvent
		ctx := NewContext()
		ctx.Tracer = TracerFunc(func(ev TraceEvent) { last = ev })
		if _, err := ctx.Infer(c.expr, nil); !errors.Is(err, c.kind) {
			t.Fatalf("%s: expected %v, got %v", ast.ExprString(c.expr), c.kind, err)
		}
		if last.Judgment != c.judgment || last.Rule != "" {
			t.Fatalf("%s: last event %s", ast.ExprString(c.expr), litter.Sdump(last))
		}
	}
}
