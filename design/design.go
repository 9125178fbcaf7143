// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package design builds the balanced stimulus design for the task: for
// every (set size, context, category) bucket it precomputes exactly 12
// assignment entries specifying stimulus objects, encoded states, the
// category composition of the display, and the 4AFC foil pairing.
package design

import (
	"fmt"

	"github.com/goki/ki/kit"
	"github.com/goki/kigen/ordmap"
)

// Category is one of the 10 semantic object categories.
type Category string

// Categories is the fixed set of categories, defined at startup and
// immutable thereafter.
var Categories = []Category{
	"bear", "bird", "butterfly", "car", "chair",
	"dog", "fish", "flower", "guitar", "shoe",
}

// SetSize is the number of simultaneously encoded stimuli.
type SetSize int

const (
	Size2 SetSize = 2
	Size4 SetSize = 4
	Size6 SetSize = 6
)

// SetSizes lists the valid set sizes in increasing order.
var SetSizes = []SetSize{Size2, Size4, Size6}

// pool6 is the object pool for set size 6; sizes 2 and 4 use its first
// four objects.  Object identifiers are exemplar names within a
// category: the same identifier under different categories is a
// different image.
var pool6 = []string{"obj1", "obj2", "obj3", "obj4", "obj5", "obj6"}

// Pool returns the object pool used at the given set size: a 4-object
// pool for sizes 2 and 4, a 6-object pool for size 6.
func Pool(sz SetSize) []string {
	if sz == Size6 {
		return pool6
	}
	return pool6[:4]
}

// Context determines the category composition of an encoding display.
type Context int

const (
	// Related trials draw every stimulus from one category.
	Related Context = iota

	// Unrelated trials combine the fixed category with setSize-1 other
	// distinct categories.
	Unrelated

	ContextN
)

var KiT_Context = kit.Enums.AddEnum(ContextN, kit.NotBitFlag, nil)

var contextNames = []string{"related", "unrelated"}

func (cx Context) String() string {
	if cx < 0 || cx >= ContextN {
		return fmt.Sprintf("Context(%d)", int(cx))
	}
	return contextNames[cx]
}

// BinaryState selects which of the two visual variants of an object
// image is shown.
type BinaryState int

const (
	S1 BinaryState = iota
	S2
	BinaryStateN
)

var KiT_BinaryState = kit.Enums.AddEnum(BinaryStateN, kit.NotBitFlag, nil)

var stateNames = []string{"s1", "s2"}

func (st BinaryState) String() string {
	if st < 0 || st >= BinaryStateN {
		return fmt.Sprintf("BinaryState(%d)", int(st))
	}
	return stateNames[st]
}

// Other returns the opposite binary state.
func (st BinaryState) Other() BinaryState {
	if st == S1 {
		return S2
	}
	return S1
}

// BucketSize is the number of assignment entries per bucket.  The
// bucket index stream at trial time indexes into [0, BucketSize).
const BucketSize = 12

// Assign is one precomputed assignment entry: everything content-wise
// that one trial needs.  Position 0 is always the critical (tested)
// position.
type Assign struct {
	Cats    []Category    `desc:"category shown at each stimulus position"`
	Stims   []string      `desc:"object shown at each position; first is the critical object"`
	States  []BinaryState `desc:"binary image state at each position"`
	AFCCat  [2]Category   `desc:"choice categories: target (critical) and foil"`
	AFCStim [2]string     `desc:"choice objects: target (critical) and foil"`
}

// Key identifies one design bucket.
type Key struct {
	Size SetSize
	Ctx  Context
	Cat  Category
}

func (ky Key) String() string {
	return fmt.Sprintf("%s_%d_%s", ky.Ctx, ky.Size, ky.Cat)
}

// Bucket holds the 12 assignment entries for one (set size, context,
// category) triple.  Entry order after construction is frozen: the
// scheduler's index stream refers to this order.
type Bucket struct {
	Key     Key
	Entries []Assign
}

// Validate checks the exactly-12-entries invariant and the per-entry
// shape and foil constraints.
func (bk *Bucket) Validate() error {
	if len(bk.Entries) != BucketSize {
		return fmt.Errorf("design: bucket %s has %d entries, want %d", bk.Key, len(bk.Entries), BucketSize)
	}
	n := int(bk.Key.Size)
	for i, as := range bk.Entries {
		if len(as.Cats) != n || len(as.Stims) != n || len(as.States) != n {
			return fmt.Errorf("design: bucket %s entry %d has lengths cats=%d stims=%d states=%d, want %d",
				bk.Key, i, len(as.Cats), len(as.Stims), len(as.States), n)
		}
		if as.AFCStim[0] != as.Stims[0] {
			return fmt.Errorf("design: bucket %s entry %d afc target %s is not the critical object %s",
				bk.Key, i, as.AFCStim[0], as.Stims[0])
		}
		for _, ct := range as.Cats {
			if ct == as.AFCCat[1] {
				return fmt.Errorf("design: bucket %s entry %d foil category %s appears in the display",
					bk.Key, i, as.AFCCat[1])
			}
		}
	}
	return nil
}

// Table is the full design: one bucket per (set size, context,
// category) triple, in stable construction order.
type Table struct {
	Buckets *ordmap.Map[Key, *Bucket]
}

// Bucket returns the bucket for the given triple, or nil if absent.
func (tb *Table) Bucket(sz SetSize, cx Context, cat Category) *Bucket {
	bk, ok := tb.Buckets.ValByKey(Key{Size: sz, Ctx: cx, Cat: cat})
	if !ok {
		return nil
	}
	return bk
}

// Validate checks every bucket.
func (tb *Table) Validate() error {
	want := len(SetSizes) * int(ContextN) * len(Categories)
	if tb.Buckets.Len() != want {
		return fmt.Errorf("design: table has %d buckets, want %d", tb.Buckets.Len(), want)
	}
	for _, kv := range tb.Buckets.Order {
		if err := kv.Val.Validate(); err != nil {
			return err
		}
	}
	return nil
}
