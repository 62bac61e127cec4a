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
	"strconv"

	"github.com/wdamron/bidi/types"
)

// Generalize quantifies the existentials in t over fresh rigid type-variables, in order of first occurrence:
// `'_3 -> '_5` becomes `forall a. forall b. a -> b`.
func Generalize(t types.Type) types.Type { return generalize(t) }

func generalize(t types.Type) types.Type {
	ids := types.FreeExists(t)
	if len(ids) == 0 {
		return t
	}
	used := make(map[string]bool)
	boundNames(t, used)
	names := make([]string, len(ids))
	next := 0
	for i, id := range ids {
		for {
			name := varName(next)
			next++
			if !used[name] {
				names[i] = name
				break
			}
		}
		t = substituteExist(t, id, &types.Rigid{Name: names[i]})
	}
	for i := len(names) - 1; i >= 0; i-- {
		t = &types.Forall{Var: names[i], Body: t}
	}
	return t
}

func varName(i int) string {
	name := string(rune('a' + i%26))
	if i >= 26 {
		name += strconv.Itoa(i / 26)
	}
	return name
}

func boundNames(t types.Type, used map[string]bool) {
	switch t := t.(type) {
	case *types.Rigid:
		used[t.Name] = true
	case *types.Forall:
		used[t.Var] = true
		boundNames(t.Body, used)
	case *types.Arrow:
		for _, arg := range t.Args {
			boundNames(arg, used)
		}
		boundNames(t.Return, used)
	case *types.App:
		for _, arg := range t.Args {
			boundNames(arg, used)
		}
	}
}

func substituteExist(t types.Type, id int, replacement types.Type) types.Type {
	switch t := t.(type) {
	case *types.Exist:
		if t.Id == id {
			return replacement
		}
	case *types.Forall:
		return &types.Forall{Var: t.Var, Body: substituteExist(t.Body, id, replacement)}
	case *types.Arrow:
		args := make([]types.Type, len(t.Args))
		for i, arg := range t.Args {
			args[i] = substituteExist(arg, id, replacement)
		}
		return &types.Arrow{Args: args, Return: substituteExist(t.Return, id, replacement)}
	case *types.App:
		args := make([]types.Type, len(t.Args))
		for i, arg := range t.Args {
			args[i] = substituteExist(arg, id, replacement)
		}
		return &types.App{Name: t.Name, Args: args}
	}
	return t
}
