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

package typeutil

// VarTracker allocates ids for existentials, markers and scoped context entries.
//
// Ids are monotonic and unique for the lifetime of the tracker; a tracker must be scoped to a single inference run.
type VarTracker struct {
	NextId int
	count  int
}

func (vt *VarTracker) Reset() { vt.NextId, vt.count = 0, 0 }

// Count returns the number of ids allocated since the last reset.
func (vt *VarTracker) Count() int { return vt.count }

func (vt *VarTracker) New() int {
	id := vt.NextId
	vt.NextId, vt.count = vt.NextId+1, vt.count+1
	return id
}

func (vt *VarTracker) NewList(count int) []int {
	ids := make([]int, count)
	for i := range ids {
		ids[i] = vt.New()
	}
	return ids
}
