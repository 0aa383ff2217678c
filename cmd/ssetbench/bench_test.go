// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestNewWorkload ensures keys are generated in the requested order and
// within the universe.
func TestNewWorkload(t *testing.T) {
	for _, workload := range knownWorkloads {
		cfg := &config{NumKeys: 1000, Universe: 5000, Seed: 3,
			Workload: workload}
		w := newWorkload(cfg)
		require.Len(t, w.keys, 1000)
		require.Len(t, w.queries, 1000)
		require.Nil(t, w.expected)
		for _, k := range w.keys {
			require.Less(t, k, uint64(5000))
		}

		switch workload {
		case "sorted":
			require.True(t, slices.IsSorted(w.keys))
		case "reversed":
			reversed := slices.Clone(w.keys)
			slices.Reverse(reversed)
			require.True(t, slices.IsSorted(reversed))
		}
	}

	// The same seed produces the same keys.
	cfg := &config{NumKeys: 100, Seed: 9, Workload: "random"}
	require.Equal(t, newWorkload(cfg).keys, newWorkload(cfg).keys)
}

// TestRunEngines ensures every engine agrees with the reference on a verified
// workload.
func TestRunEngines(t *testing.T) {
	for _, workload := range knownWorkloads {
		cfg := &config{NumKeys: 3000, Universe: 2000, Seed: 1,
			Workload: workload, Verify: true}
		w := newWorkload(cfg)
		require.Len(t, w.expected, len(w.queries))

		var size int
		for i := range engines {
			res := runEngine(&engines[i], w, cfg.Seed)
			require.Zerof(t, res.mismatches, "%s on %s keys",
				engines[i].name, workload)
			require.True(t, res.verified)
			if i == 0 {
				size = res.size
			}
			require.Equal(t, size, res.size, engines[i].name)
			require.Equal(t, len(w.keys), res.phases[0].ops)
		}
	}
}

// TestRunLists ensures the positional list benchmark completes for every
// list.
func TestRunLists(t *testing.T) {
	for i := range lists {
		res, err := runList(&lists[i], 500, 7)
		require.NoError(t, err, lists[i].name)
		require.Equal(t, 500, res.size)
	}

	results := runStackQueue(100)
	require.Len(t, results, 2)
	for _, res := range results {
		require.Equal(t, 100, res.size)
	}
}

// TestWriteReport ensures the report lists every structure with its check
// status.
func TestWriteReport(t *testing.T) {
	results := []result{
		{name: "treap", size: 10, height: 5, verified: true,
			phases: [3]phase{{ops: 10, elapsed: 1500}}},
		{name: "btree", baseline: true, size: 10, height: -1,
			mismatches: 2},
	}
	var buf bytes.Buffer
	writeReport(&buf, "caption", results)
	out := buf.String()
	require.Contains(t, out, "treap")
	require.Contains(t, out, "btree (baseline)")
	require.Contains(t, out, "150.0")
	require.Contains(t, out, "2 mismatches")
	require.Contains(t, out, "ok")
	require.Contains(t, out, "caption")
}
