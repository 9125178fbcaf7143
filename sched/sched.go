// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sched enumerates and shuffles the full trial schedule: the
// cross product of repetition, set size, encoding time, context and
// category, paired with an independently shuffled stream of bucket
// indexes selecting which precomputed design entry each trial uses.
package sched

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/nithit136/vwm-semantic-related/combin"
	"github.com/nithit136/vwm-semantic-related/design"
)

// EncTimes are the encoding durations crossed into the schedule.
var EncTimes = []time.Duration{
	150 * time.Millisecond,
	500 * time.Millisecond,
	1000 * time.Millisecond,
}

// NReps is the number of repetitions of the full condition cross
// product in one session.
const NReps = 2

// NTrials is the total schedule length:
// NReps x set sizes x encoding times x contexts x categories.
const NTrials = NReps * 3 * 3 * 2 * 10

// Condition is the tuple of design factors for one scheduled trial.
type Condition struct {
	Size    design.SetSize  `desc:"number of stimuli encoded"`
	EncTime time.Duration   `desc:"encoding display duration"`
	Ctx     design.Context  `desc:"related or unrelated category composition"`
	Cat     design.Category `desc:"the fixed (critical) category"`
}

// String gives the condition label used in exported records.
func (cn Condition) String() string {
	return fmt.Sprintf("%s_%d_%g", cn.Ctx, cn.Size, cn.EncTime.Seconds())
}

// BuildSchedule enumerates the full cross product and shuffles the
// trial order once.  Length is always NTrials.
func BuildSchedule(rnd *rand.Rand) []Condition {
	out := make([]Condition, 0, NTrials)
	for rep := 0; rep < NReps; rep++ {
		for _, sz := range design.SetSizes {
			for _, enc := range EncTimes {
				for cx := design.Context(0); cx < design.ContextN; cx++ {
					for _, cat := range design.Categories {
						out = append(out, Condition{Size: sz, EncTime: enc, Ctx: cx, Cat: cat})
					}
				}
			}
		}
	}
	combin.Shuffle(rnd, len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// BuildIndexStream generates the bucket-index stream: each index in
// [0, BucketSize) exactly NTrials/BucketSize times, flattened and
// shuffled once, independently of the trial schedule.
func BuildIndexStream(rnd *rand.Rand) []int {
	out := make([]int, 0, NTrials)
	for rep := 0; rep < NTrials/design.BucketSize; rep++ {
		out = append(out, combin.IntSequence(0, design.BucketSize)...)
	}
	combin.ShuffleInts(rnd, out)
	return out
}
