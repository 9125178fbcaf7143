// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package task

import (
	"github.com/goki/mat32"
	"github.com/nithit136/vwm-semantic-related/design"
)

// EncodeSlots returns the fixed layout slot centers for the encoding
// display at the given set size, in normalized display coordinates
// with x, y in [-1, 1] and y increasing downward.  Stimulus positions
// are assigned to these slots by random permutation per trial.
func EncodeSlots(sz design.SetSize) []mat32.Vec2 {
	switch sz {
	case design.Size2:
		return []mat32.Vec2{
			{X: -0.4, Y: 0},
			{X: 0.4, Y: 0},
		}
	case design.Size4:
		return []mat32.Vec2{
			{X: -0.4, Y: -0.35},
			{X: 0.4, Y: -0.35},
			{X: -0.4, Y: 0.35},
			{X: 0.4, Y: 0.35},
		}
	case design.Size6:
		return []mat32.Vec2{
			{X: -0.55, Y: -0.35},
			{X: 0, Y: -0.35},
			{X: 0.55, Y: -0.35},
			{X: -0.55, Y: 0.35},
			{X: 0, Y: 0.35},
			{X: 0.55, Y: 0.35},
		}
	}
	return nil
}

// ChoiceSlots are the four fixed choice positions, left to right,
// each bound to the response key of the same index.
var ChoiceSlots = []mat32.Vec2{
	{X: -0.6, Y: 0},
	{X: -0.2, Y: 0},
	{X: 0.2, Y: 0},
	{X: 0.6, Y: 0},
}
