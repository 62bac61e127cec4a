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
	"strings"

	"github.com/wdamron/bidi/ast"
)

// ErrorKind classifies an inference failure. ErrorKind implements error, so the kind of a failure can be tested
// with errors.Is:
//
//  if errors.Is(err, bidi.ArityMismatch) { ... }
type ErrorKind int

const (
	// A variable is not bound in the context.
	UnboundVariable ErrorKind = iota + 1
	// A type refers to a type-variable or existential which is not in scope.
	UnboundTypeReference
	// A function or generic type was used with the wrong number of arguments.
	ArityMismatch
	// A non-function type was applied to arguments.
	NotAFunctionType
	// An existential would be solved to a type containing itself.
	OccursCheckFailure
	// Two types are not subtypes.
	IncompatibleTypes
	// An existential could not be instantiated to a type.
	InstantiationFailure
	// The context did not contain an element which the engine expected; this indicates a bug in the engine.
	InternalInvariantViolation
	// The derivation exceeded InferenceContext.MaxDepth nested judgments.
	DepthLimitExceeded
	// A literal value has no primitive type.
	InvalidLiteral
)

func (k ErrorKind) String() string {
	switch k {
	case UnboundVariable:
		return "unbound variable"
	case UnboundTypeReference:
		return "unbound type reference"
	case ArityMismatch:
		return "arity mismatch"
	case NotAFunctionType:
		return "not a function type"
	case OccursCheckFailure:
		return "occurs check failure"
	case IncompatibleTypes:
		return "incompatible types"
	case InstantiationFailure:
		return "instantiation failure"
	case InternalInvariantViolation:
		return "internal invariant violation"
	case DepthLimitExceeded:
		return "depth limit exceeded"
	case InvalidLiteral:
		return "invalid literal"
	}
	return "unknown error"
}

func (k ErrorKind) Error() string { return k.String() }

// Error is a failed judgment. The first failure aborts inference.
type Error struct {
	Kind ErrorKind
	// Judgment which failed: synthesize, check, apply, subtype, instantiateL, instantiateR, or environment.
	Judgment string
	// Rule which was being applied when the judgment failed, if any.
	Rule string
	// Printed operands of the failed judgment.
	Operands []string
	// Detail describes the failure, e.g. the expected and actual arity.
	Detail string
	// Expr is the innermost expression being synthesized or checked when the failure occurred.
	Expr ast.Expr
	// Err is the underlying cause, e.g. the aggregated well-formedness violations.
	Err error
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Judgment)
	if e.Rule != "" {
		sb.WriteString(" [")
		sb.WriteString(e.Rule)
		sb.WriteByte(']')
	}
	sb.WriteString(": ")
	sb.WriteString(e.Kind.String())
	if e.Detail != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Detail)
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	if len(e.Operands) > 0 {
		sb.WriteString(" (")
		sb.WriteString(strings.Join(e.Operands, ", "))
		sb.WriteByte(')')
	}
	return sb.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the ErrorKind of e.
func (e *Error) Is(target error) bool {
	k, ok := target.(ErrorKind)
	return ok && k == e.Kind
}

// blame attaches expr to err if no expression has been attached yet.
func blame(expr ast.Expr, err error) error {
	var ierr *Error
	if errors.As(err, &ierr) && ierr.Expr == nil {
		ierr.Expr = expr
	}
	return err
}
