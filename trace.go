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
	"log"
	"strings"
)

// TraceEvent records a single judgment invocation.
type TraceEvent struct {
	// Nesting depth of the judgment, starting at 1.
	Depth int
	// Judgment: synthesize, check, apply, subtype, instantiateL, or instantiateR.
	Judgment string
	// Rule selected for the judgment.
	Rule string
	// Printed context at the time of the invocation.
	Context string
	// Printed operands of the judgment.
	Operands []string
}

func (ev TraceEvent) String() string {
	var sb strings.Builder
	for i := 1; i < ev.Depth; i++ {
		sb.WriteString("  ")
	}
	sb.WriteString(ev.Judgment)
	sb.WriteString(" [")
	sb.WriteString(ev.Rule)
	sb.WriteString("] ")
	sb.WriteString(strings.Join(ev.Operands, " | "))
	sb.WriteString(" in [")
	sb.WriteString(ev.Context)
	sb.WriteByte(']')
	return sb.String()
}

// Tracer receives a TraceEvent for each judgment. Tracing never affects the result of inference.
type Tracer interface {
	Trace(ev TraceEvent)
}

// TracerFunc adapts a function to a Tracer.
type TracerFunc func(ev TraceEvent)

func (f TracerFunc) Trace(ev TraceEvent) { f(ev) }

// NewLogTracer returns a Tracer which prints each event to logger, or to the standard logger if logger is nil.
func NewLogTracer(logger *log.Logger) Tracer {
	if logger == nil {
		logger = log.Default()
	}
	return TracerFunc(func(ev TraceEvent) { logger.Println(ev.String()) })
}
