// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package sllist implements a stack and a queue on singly-linked nodes.  All
// operations take constant time.
package sllist

import (
	"github.com/btcsuite/sset"
	"github.com/btcsuite/sset/internal/arena"
)

type node[T any] struct {
	value T
	next  arena.Handle
}

// list is a singly-linked list that can push and pop at its head and append
// at its tail.
type list[T any] struct {
	nodes *arena.Arena[node[T]]
	head  arena.Handle
	tail  arena.Handle
	n     int
}

func newList[T any](opts []sset.Option) list[T] {
	o := sset.NewOptions(opts...)
	return list[T]{nodes: arena.New[node[T]](o.Capacity)}
}

// pushFront links a new node holding x before the head.
func (l *list[T]) pushFront(x T) {
	h, n := l.nodes.Alloc()
	n.value = x
	n.next = l.head
	l.head = h
	if l.n == 0 {
		l.tail = h
	}
	l.n++
}

// pushBack links a new node holding x after the tail.
func (l *list[T]) pushBack(x T) {
	h, n := l.nodes.Alloc()
	n.value = x
	if l.n == 0 {
		l.head = h
	} else {
		l.nodes.At(l.tail).next = h
	}
	l.tail = h
	l.n++
}

// popFront unlinks the head and returns its value.
func (l *list[T]) popFront() (T, bool) {
	if l.n == 0 {
		var zero T
		return zero, false
	}
	h := l.head
	n := l.nodes.At(h)
	x := n.value
	l.head = n.next
	l.nodes.Free(h)
	l.n--
	if l.n == 0 {
		l.tail = arena.Nil
	}
	return x, true
}

// front returns the value of the head without unlinking it.
func (l *list[T]) front() (T, bool) {
	if l.n == 0 {
		var zero T
		return zero, false
	}
	return l.nodes.At(l.head).value, true
}

// Stack is a last-in first-out stack.
type Stack[T any] struct {
	l list[T]
}

// Ensure Stack implements the sset.Stack interface.
var _ sset.Stack[int] = (*Stack[int])(nil)

// NewStack returns a new empty stack.
func NewStack[T any](opts ...sset.Option) *Stack[T] {
	return &Stack[T]{l: newList[T](opts)}
}

// Size returns the number of elements on the stack.
func (s *Stack[T]) Size() int {
	return s.l.n
}

// Push adds x to the top of the stack.
func (s *Stack[T]) Push(x T) {
	s.l.pushFront(x)
}

// Pop removes and returns the element on top of the stack.  The boolean is
// false when the stack is empty.
func (s *Stack[T]) Pop() (T, bool) {
	return s.l.popFront()
}

// Peek returns the element on top of the stack without removing it.
func (s *Stack[T]) Peek() (T, bool) {
	return s.l.front()
}

// Queue is a first-in first-out queue.
type Queue[T any] struct {
	l list[T]
}

// Ensure Queue implements the sset.Queue interface.
var _ sset.Queue[int] = (*Queue[int])(nil)

// NewQueue returns a new empty queue.
func NewQueue[T any](opts ...sset.Option) *Queue[T] {
	return &Queue[T]{l: newList[T](opts)}
}

// Size returns the number of elements in the queue.
func (q *Queue[T]) Size() int {
	return q.l.n
}

// Add appends x to the back of the queue.
func (q *Queue[T]) Add(x T) {
	q.l.pushBack(x)
}

// Remove removes and returns the element at the front of the queue.  The
// boolean is false when the queue is empty.
func (q *Queue[T]) Remove() (T, bool) {
	return q.l.popFront()
}

// Peek returns the element at the front of the queue without removing it.
func (q *Queue[T]) Peek() (T, bool) {
	return q.l.front()
}
