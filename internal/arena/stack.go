// Copyright (c) 2015-2016 The btcsuite developers
// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package arena

// staticDepth is the number of handles a Stack holds before it spills into
// its overflow slice.
const staticDepth = 128

// Stack is a stack of node handles for iterative in-order walks.  The first
// staticDepth handles live in a fixed array so that walking a balanced tree
// does not allocate.
type Stack struct {
	n        int
	items    [staticDepth]Handle
	overflow []Handle
}

// Len returns the current number of handles on the stack.
func (s *Stack) Len() int {
	return s.n
}

// Push pushes h onto the top of the stack.
func (s *Stack) Push(h Handle) {
	if s.n < staticDepth {
		s.items[s.n] = h
	} else {
		s.overflow = append(s.overflow, h)
	}
	s.n++
}

// PushSpine pushes h and every handle reached from it through left until
// left returns Nil.  Pushing a Nil h is a no-op.
func (s *Stack) PushSpine(h Handle, left func(Handle) Handle) {
	for ; h != Nil; h = left(h) {
		s.Push(h)
	}
}

// Pop removes and returns the top handle, or Nil when the stack is empty.
func (s *Stack) Pop() Handle {
	if s.n == 0 {
		return Nil
	}

	s.n--
	if s.n < staticDepth {
		h := s.items[s.n]
		s.items[s.n] = Nil
		return h
	}

	// len(overflow) is always n-staticDepth once the array is full.
	last := len(s.overflow) - 1
	h := s.overflow[last]
	s.overflow = s.overflow[:last]
	return h
}
