// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package vwm implements a visual working memory
psychophysics task probing the effect of semantic relatedness on
object-state binding.

Participants encode 2, 4, or 6 object images (all from one category, or
each from a different category), and after a retention interval make a
four-alternative forced choice between the critical object in its
encoded state, the same object in the other state, and two states of a
foil object.

The repository is organized as:

* combin: deterministic combinatoric enumeration (k-permutations,
k-combinations, binary tuples) and Fisher-Yates shuffling.

* design: the balanced stimulus design builder, producing exactly 12
assignment entries for every (set size, context, category) bucket.

* sched: the 360-trial condition schedule and bucket index stream,
exposed as an emergent env.Env.

* task: the trial-phase state machine, choice layout, results
accumulator, and export payloads.

* assets: one-shot preload cache for the stimulus image set.

* cmd/vwm: the runnable experiment, with a GoGi window as the display
and response surface, or a scripted -nogui mode.
*/
package vwm
