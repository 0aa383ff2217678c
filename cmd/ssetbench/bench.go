// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"time"

	"github.com/btcsuite/sset"
	"github.com/btcsuite/sset/internal/refset"
	"github.com/btcsuite/sset/sllist"
	"github.com/olekukonko/tablewriter"
)

// heighter is implemented by engines that can report their height.
type heighter interface {
	Height() int
}

// phase is the timing of one batch of operations.
type phase struct {
	ops     int
	elapsed time.Duration
}

// nsPerOp returns the average time per operation in nanoseconds formatted for
// the report.
func (p phase) nsPerOp() string {
	if p.ops == 0 {
		return "-"
	}
	ns := float64(p.elapsed.Nanoseconds()) / float64(p.ops)
	return strconv.FormatFloat(ns, 'f', 1, 64)
}

// result holds the measurements of one structure.
type result struct {
	name       string
	baseline   bool
	size       int
	phases     [3]phase
	height     int
	verified   bool
	mismatches int
}

// workload is the set of keys and queries shared by every engine in a run.
type workload struct {
	keys    []uint64
	queries []uint64

	// expected holds the reference answer to every query when
	// verification is enabled.
	expected []lookup
}

// lookup is the answer to a successor query.
type lookup struct {
	key uint64
	ok  bool
}

// drawKey returns a key uniformly drawn from [0, universe), or from the whole
// 64-bit range when universe is 0.
func drawKey(rng sset.Rand, universe uint64) uint64 {
	if universe == 0 {
		return rng.Uint64()
	}
	return rng.Uint64() % universe
}

// newWorkload generates the keys in the configured order along with an equal
// number of random queries.
func newWorkload(cfg *config) *workload {
	rng := sset.NewRand(cfg.Seed)
	w := &workload{
		keys:    make([]uint64, cfg.NumKeys),
		queries: make([]uint64, cfg.NumKeys),
	}
	for i := range w.keys {
		w.keys[i] = drawKey(rng, cfg.Universe)
	}
	for i := range w.queries {
		w.queries[i] = drawKey(rng, cfg.Universe)
	}

	switch cfg.Workload {
	case "sorted":
		slices.Sort(w.keys)
	case "reversed":
		slices.Sort(w.keys)
		slices.Reverse(w.keys)
	}

	if cfg.Verify {
		ref := refset.NewBTree[uint64]()
		for _, k := range w.keys {
			ref.Add(k)
		}
		w.expected = make([]lookup, len(w.queries))
		for i, q := range w.queries {
			w.expected[i].key, w.expected[i].ok = ref.Find(q)
		}
	}
	return w
}

// runEngine inserts every key into a fresh instance of the engine, looks up
// every query and finally removes every key, timing each phase.
func runEngine(e *engine, w *workload, seed uint64) result {
	res := result{
		name:     e.name,
		baseline: e.baseline,
		height:   -1,
		verified: w.expected != nil,
	}
	s := e.newSet(seed, len(w.keys))

	start := time.Now()
	for _, k := range w.keys {
		s.Add(k)
	}
	res.phases[0] = phase{ops: len(w.keys), elapsed: time.Since(start)}
	res.size = s.Size()
	if h, ok := s.(heighter); ok {
		res.height = h.Height()
	}
	log.Debugf("%s: inserted %d keys, %d distinct", e.name, len(w.keys),
		res.size)

	start = time.Now()
	if w.expected == nil {
		for _, q := range w.queries {
			s.Find(q)
		}
	} else {
		for i, q := range w.queries {
			got, ok := s.Find(q)
			if ok != w.expected[i].ok || got != w.expected[i].key {
				res.mismatches++
			}
		}
	}
	res.phases[1] = phase{ops: len(w.queries), elapsed: time.Since(start)}

	start = time.Now()
	for _, k := range w.keys {
		s.Remove(k)
	}
	res.phases[2] = phase{ops: len(w.keys), elapsed: time.Since(start)}
	if s.Size() != 0 {
		log.Warnf("%s: %d keys left after removing all of them", e.name,
			s.Size())
		res.mismatches++
	}
	return res
}

// runList inserts, reads and removes elements at random positions of the
// list.
func runList(impl *listImpl, numItems int, seed uint64) (result, error) {
	res := result{name: impl.name, height: -1}
	rng := sset.NewRand(seed)
	l := impl.newList(seed)

	start := time.Now()
	for i := 0; i < numItems; i++ {
		idx := int(rng.Uint64N(uint64(l.Size()) + 1))
		if err := l.Insert(idx, uint64(i)); err != nil {
			return res, err
		}
	}
	res.phases[0] = phase{ops: numItems, elapsed: time.Since(start)}
	res.size = l.Size()
	if h, ok := l.(heighter); ok {
		res.height = h.Height()
	}

	start = time.Now()
	for i := 0; i < numItems; i++ {
		if _, err := l.Get(int(rng.Uint64N(uint64(l.Size())))); err != nil {
			return res, err
		}
	}
	res.phases[1] = phase{ops: numItems, elapsed: time.Since(start)}

	start = time.Now()
	for l.Size() > 0 {
		if _, err := l.Remove(int(rng.Uint64N(uint64(l.Size())))); err != nil {
			return res, err
		}
	}
	res.phases[2] = phase{ops: numItems, elapsed: time.Since(start)}
	return res, nil
}

// runStackQueue pushes and pops numItems elements through the stack and the
// queue.
func runStackQueue(numItems int) []result {
	stack := sllist.NewStack[uint64]()
	queue := sllist.NewQueue[uint64]()
	results := []result{
		{name: "sllist.Stack", height: -1},
		{name: "sllist.Queue", height: -1},
	}

	start := time.Now()
	for i := 0; i < numItems; i++ {
		stack.Push(uint64(i))
	}
	results[0].phases[0] = phase{ops: numItems, elapsed: time.Since(start)}
	results[0].size = stack.Size()
	start = time.Now()
	for stack.Size() > 0 {
		stack.Pop()
	}
	results[0].phases[2] = phase{ops: numItems, elapsed: time.Since(start)}

	start = time.Now()
	for i := 0; i < numItems; i++ {
		queue.Add(uint64(i))
	}
	results[1].phases[0] = phase{ops: numItems, elapsed: time.Since(start)}
	results[1].size = queue.Size()
	start = time.Now()
	for queue.Size() > 0 {
		queue.Remove()
	}
	results[1].phases[2] = phase{ops: numItems, elapsed: time.Since(start)}
	return results
}

// writeReport renders the results as a table.
func writeReport(w io.Writer, title string, results []result) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Structure", "Size", "Insert ns/op",
		"Lookup ns/op", "Remove ns/op", "Height", "Check"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetCaption(true, title)

	for _, res := range results {
		name := res.name
		if res.baseline {
			name += " (baseline)"
		}
		height := "-"
		if res.height >= 0 {
			height = strconv.Itoa(res.height)
		}
		check := "-"
		switch {
		case res.mismatches > 0:
			check = fmt.Sprintf("%d mismatches", res.mismatches)
		case res.verified:
			check = "ok"
		}
		table.Append([]string{
			name,
			strconv.Itoa(res.size),
			res.phases[0].nsPerOp(),
			res.phases[1].nsPerOp(),
			res.phases[2].nsPerOp(),
			height,
			check,
		})
	}
	table.Render()
}
