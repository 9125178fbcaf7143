// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package design

import (
	"math/rand"

	"github.com/goki/kigen/ordmap"
	"github.com/nithit136/vwm-semantic-related/combin"
)

// Build constructs the full design table from the given random source:
// for every category and set size, one related and one unrelated bucket
// of exactly BucketSize entries.  The table is validated before being
// returned and is read-only afterward.
func Build(rnd *rand.Rand) (*Table, error) {
	tb := &Table{Buckets: ordmap.New[Key, *Bucket]()}
	for _, sz := range SetSizes {
		for _, cat := range Categories {
			rel := buildRelated(rnd, sz, cat)
			tb.Buckets.Add(rel.Key, rel)
			unr := buildUnrelated(rnd, sz, cat)
			tb.Buckets.Add(unr.Key, unr)
		}
	}
	if err := tb.Validate(); err != nil {
		return nil, err
	}
	return tb, nil
}

// buildRelated builds one related bucket: all stimuli share the fixed
// category.  For size 2 the stimulus lists are the full enumeration of
// ordered object pairs, unshuffled; for sizes 4 and 6 each pool object
// serves as the critical object 3 or 2 times respectively, with the
// remaining objects freshly shuffled behind it each time.
func buildRelated(rnd *rand.Rand, sz SetSize, cat Category) *Bucket {
	n := int(sz)
	pool := Pool(sz)
	var stims [][]string
	if sz == Size2 {
		stims = combin.KPermutations(pool, 2)
	} else {
		stims = criticalDraws(rnd, pool, n, false)
	}
	states := stateSeqs(rnd, n)
	entries := make([]Assign, BucketSize)
	for i := range entries {
		cats := make([]Category, n)
		for j := range cats {
			cats[j] = cat
		}
		// foil object never repeats the critical object on related trials
		foils := others(pool, stims[i][0])
		entries[i] = Assign{
			Cats:    cats,
			Stims:   stims[i],
			States:  states[i],
			AFCCat:  [2]Category{cat, foilCat(rnd, cats[:1])},
			AFCStim: [2]string{stims[i][0], foils[rnd.Intn(len(foils))]},
		}
	}
	return &Bucket{Key: Key{Size: sz, Ctx: Related, Cat: cat}, Entries: entries}
}

// buildUnrelated builds one unrelated bucket: the fixed category plus
// setSize-1 other distinct categories per entry.  At size 4 the
// critical object stays in the pool the co-occurring objects are drawn
// from, so its identifier can recur under a different category; sizes
// 2 and 6 exclude it.
func buildUnrelated(rnd *rand.Rand, sz SetSize, cat Category) *Bucket {
	n := int(sz)
	pool := Pool(sz)
	cats := unrelatedCats(rnd, sz, cat)
	stims := criticalDraws(rnd, pool, n, sz == Size4)
	states := stateSeqs(rnd, n)
	entries := make([]Assign, BucketSize)
	for i := range entries {
		entries[i] = Assign{
			Cats:    cats[i],
			Stims:   stims[i],
			States:  states[i],
			AFCCat:  [2]Category{cat, foilCat(rnd, cats[i])},
			AFCStim: [2]string{stims[i][0], pool[rnd.Intn(len(pool))]},
		}
	}
	return &Bucket{Key: Key{Size: sz, Ctx: Unrelated, Cat: cat}, Entries: entries}
}

// criticalDraws produces BucketSize stimulus lists of length n: each
// pool object acts as the critical (first) object an equal number of
// times, with the co-occurring objects drawn from a fresh shuffle per
// repetition.  With inclusive true the critical object remains in the
// draw pool for the co-occurring positions.
func criticalDraws(rnd *rand.Rand, pool []string, n int, inclusive bool) [][]string {
	reps := BucketSize / len(pool)
	out := make([][]string, 0, BucketSize)
	for _, crit := range pool {
		for r := 0; r < reps; r++ {
			var src []string
			if inclusive {
				src = append([]string{}, pool...)
			} else {
				src = others(pool, crit)
			}
			combin.ShuffleStrings(rnd, src)
			stim := make([]string, 0, n)
			stim = append(stim, crit)
			stim = append(stim, src[:n-1]...)
			out = append(out, stim)
		}
	}
	return out
}

// stateSeqs produces BucketSize binary-state sequences of length n:
// the full tuple enumeration, replicated to at least BucketSize when
// smaller (n=2: 4 tuples tripled), shuffled as a block and truncated.
func stateSeqs(rnd *rand.Rand, n int) [][]BinaryState {
	tups := combin.BinaryTuples(n)
	var all [][]BinaryState
	for len(all) < BucketSize {
		for _, tp := range tups {
			seq := make([]BinaryState, n)
			for j, b := range tp {
				seq[j] = BinaryState(b)
			}
			all = append(all, seq)
		}
	}
	combin.Shuffle(rnd, len(all), func(i, j int) {
		all[i], all[j] = all[j], all[i]
	})
	return all[:BucketSize]
}

// unrelatedCats builds the BucketSize category lists for an unrelated
// bucket: k-combinations of the 9 other categories (k = setSize-1),
// shuffled, truncated to 12, each prefixed with the fixed category.
// Size 2 has only 9 single-category combinations, so it takes one full
// shuffled pass plus the first 3 of a second independent shuffle of
// the same set (a repeat across the two draws is possible).
func unrelatedCats(rnd *rand.Rand, sz SetSize, cat Category) [][]Category {
	n := int(sz)
	other := others(catStrings(), string(cat))
	combos := combin.KCombinations(other, n-1)
	var picks [][]string
	if sz == Size2 {
		first := shuffledCopy(rnd, combos)
		second := shuffledCopy(rnd, combos)
		picks = append(picks, first...)
		picks = append(picks, second[:BucketSize-len(first)]...)
	} else {
		picks = shuffledCopy(rnd, combos)[:BucketSize]
	}
	out := make([][]Category, BucketSize)
	for i, pk := range picks {
		cs := make([]Category, 0, n)
		cs = append(cs, cat)
		for _, c := range pk {
			cs = append(cs, Category(c))
		}
		out[i] = cs
	}
	return out
}

// foilCat draws a foil category uniformly from the categories not
// present in the given display composition.
func foilCat(rnd *rand.Rand, exclude []Category) Category {
	avail := make([]Category, 0, len(Categories))
	for _, c := range Categories {
		if !containsCat(exclude, c) {
			avail = append(avail, c)
		}
	}
	return avail[rnd.Intn(len(avail))]
}

func containsCat(cs []Category, c Category) bool {
	for _, x := range cs {
		if x == c {
			return true
		}
	}
	return false
}

func catStrings() []string {
	out := make([]string, len(Categories))
	for i, c := range Categories {
		out[i] = string(c)
	}
	return out
}

// others returns a copy of pool without the given element.
func others(pool []string, skip string) []string {
	out := make([]string, 0, len(pool)-1)
	for _, p := range pool {
		if p != skip {
			out = append(out, p)
		}
	}
	return out
}

// shuffledCopy returns an independently shuffled copy of the given
// list of selections (the selections themselves are shared).
func shuffledCopy(rnd *rand.Rand, xs [][]string) [][]string {
	out := make([][]string, len(xs))
	copy(out, xs)
	combin.Shuffle(rnd, len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
