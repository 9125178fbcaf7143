// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package combin provides the small set of combinatoric enumerations
// needed by the stimulus design builder: k-permutations, k-combinations,
// binary tuples, and Fisher-Yates shuffling.  Enumeration order is
// deterministic; all randomness comes from an explicitly passed
// rand.Rand so that designs are reproducible from a seed.
package combin

import (
	"fmt"
	"math/rand"
)

// Shuffle randomly permutes n elements in place using the Fisher-Yates
// algorithm, calling swap for each exchange.  Every permutation of the
// n elements is equally likely.
func Shuffle(rnd *rand.Rand, n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := rnd.Intn(i + 1)
		swap(i, j)
	}
}

// ShuffleInts randomly permutes the given slice in place.
func ShuffleInts(rnd *rand.Rand, xs []int) {
	Shuffle(rnd, len(xs), func(i, j int) {
		xs[i], xs[j] = xs[j], xs[i]
	})
}

// ShuffleStrings randomly permutes the given slice in place.
func ShuffleStrings(rnd *rand.Rand, xs []string) {
	Shuffle(rnd, len(xs), func(i, j int) {
		xs[i], xs[j] = xs[j], xs[i]
	})
}

// IntSequence returns the integers [begin, end) in order.
func IntSequence(begin, end int) []int {
	seq := make([]int, 0, end-begin)
	for i := begin; i < end; i++ {
		seq = append(seq, i)
	}
	return seq
}

// KPermIndexes enumerates all ordered selections of k distinct indexes
// from [0, n), in nested-loop (lexicographic) order.  It panics if
// k < 0 or k > n: callers are responsible for asking only for
// selections that exist.
func KPermIndexes(n, k int) [][]int {
	if k < 0 || k > n {
		panic(fmt.Sprintf("combin.KPermIndexes: k = %d out of range for n = %d", k, n))
	}
	if k == 0 {
		return [][]int{{}}
	}
	var out [][]int
	idx := make([]int, k)
	used := make([]bool, n)
	for i := range idx {
		idx[i] = -1
	}
	pos := 0
	for pos >= 0 {
		if idx[pos] >= 0 {
			used[idx[pos]] = false
		}
		v := idx[pos] + 1
		for v < n && used[v] {
			v++
		}
		if v == n { // exhausted this position, back up
			idx[pos] = -1
			pos--
			continue
		}
		idx[pos] = v
		used[v] = true
		if pos == k-1 {
			perm := make([]int, k)
			copy(perm, idx)
			out = append(out, perm)
		} else {
			pos++
		}
	}
	return out
}

// KCombIndexes enumerates all unordered selections of k distinct
// indexes from [0, n), each in increasing order, in lexicographic
// order overall.  Panics if k < 0 or k > n.
func KCombIndexes(n, k int) [][]int {
	if k < 0 || k > n {
		panic(fmt.Sprintf("combin.KCombIndexes: k = %d out of range for n = %d", k, n))
	}
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	var out [][]int
	for {
		cmb := make([]int, k)
		copy(cmb, idx)
		out = append(out, cmb)
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			break
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
	return out
}

// KPermutations returns all ordered selections of k distinct elements
// from pool, in the order given by KPermIndexes.
func KPermutations(pool []string, k int) [][]string {
	ixs := KPermIndexes(len(pool), k)
	out := make([][]string, len(ixs))
	for i, ix := range ixs {
		sel := make([]string, k)
		for j, x := range ix {
			sel[j] = pool[x]
		}
		out[i] = sel
	}
	return out
}

// KCombinations returns all unordered selections of k distinct elements
// from pool, in the order given by KCombIndexes.
func KCombinations(pool []string, k int) [][]string {
	ixs := KCombIndexes(len(pool), k)
	out := make([][]string, len(ixs))
	for i, ix := range ixs {
		sel := make([]string, k)
		for j, x := range ix {
			sel[j] = pool[x]
		}
		out[i] = sel
	}
	return out
}

// BinaryTuples enumerates all 2^n tuples of length n over {0, 1}, in
// counting order with the first element as the most significant bit.
func BinaryTuples(n int) [][]int {
	m := 1 << uint(n)
	out := make([][]int, m)
	for v := 0; v < m; v++ {
		tup := make([]int, n)
		for j := 0; j < n; j++ {
			tup[j] = (v >> uint(n-1-j)) & 1
		}
		out[v] = tup
	}
	return out
}
