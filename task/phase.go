// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package task runs the scheduled trials as a timed phase state
// machine against a Host display/input surface, scoring one 4AFC
// response per trial into an append-only results accumulator.
package task

import (
	"fmt"

	"github.com/goki/ki/kit"
)

// Phase is the trial state machine state.  Every trial visits
// Fixation1, Encode, Fixation2 and Choice in order; Choice resolves to
// Resolved on a response key or to Aborted on the abort key, and
// Aborted ends the whole session.
type Phase int

const (
	Fixation1 Phase = iota
	Encode
	Fixation2
	Choice
	Resolved
	Aborted
	PhaseN
)

var KiT_Phase = kit.Enums.AddEnum(PhaseN, kit.NotBitFlag, nil)

var phaseNames = []string{"fixation_1", "encode", "fixation_2", "choice", "resolved", "aborted"}

func (ph Phase) String() string {
	if ph < 0 || ph >= PhaseN {
		return fmt.Sprintf("Phase(%d)", int(ph))
	}
	return phaseNames[ph]
}

// AltKind identifies one of the four choice alternatives.
type AltKind int

const (
	// MatchTarget is the critical object in its encoded state.
	MatchTarget AltKind = iota

	// MatchObj is the critical object in the other state.
	MatchObj

	// Foil1 is the foil object in state s1.
	Foil1

	// Foil2 is the foil object in state s2.
	Foil2

	AltKindN
)

var KiT_AltKind = kit.Enums.AddEnum(AltKindN, kit.NotBitFlag, nil)

var altKindNames = []string{"match_target", "match_obj", "foil_1", "foil_2"}

func (ak AltKind) String() string {
	if ak < 0 || ak >= AltKindN {
		return fmt.Sprintf("AltKind(%d)", int(ak))
	}
	return altKindNames[ak]
}

// Score returns the (correct_ans, correct_cat) flags for choosing this
// alternative: the target scores both, the wrong-state lure scores
// category only, foils score neither.
func (ak AltKind) Score() (correctAns, correctCat int) {
	switch ak {
	case MatchTarget:
		return 1, 1
	case MatchObj:
		return 0, 1
	default:
		return 0, 0
	}
}
