// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package design

import "fmt"

// AssetExt is the image file extension for all stimulus assets.
const AssetExt = ".png"

// InstructionPaths are the two fixed instruction screens, shown in
// order before the first trial.
var InstructionPaths = []string{
	"stimuli/instructions_1" + AssetExt,
	"stimuli/instructions_2" + AssetExt,
}

// StimPath returns the asset path for one stimulus image, following
// the stimuli/<setSize>/<category>/<object>_<state> convention.
func StimPath(sz SetSize, cat Category, obj string, st BinaryState) string {
	return fmt.Sprintf("stimuli/%d/%s/%s_%s%s", int(sz), cat, obj, st, AssetExt)
}

// AllStimPaths enumerates the complete asset set for the experiment:
// every (set size, category, pool object, state) combination plus the
// instruction screens.  The full set is enumerable before any trial
// has run, so assets can be preloaded in one pass.
func AllStimPaths() []string {
	var out []string
	for _, sz := range SetSizes {
		for _, cat := range Categories {
			for _, obj := range Pool(sz) {
				for st := S1; st < BinaryStateN; st++ {
					out = append(out, StimPath(sz, cat, obj, st))
				}
			}
		}
	}
	out = append(out, InstructionPaths...)
	return out
}
