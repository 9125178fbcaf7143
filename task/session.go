// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package task

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/nithit136/vwm-semantic-related/combin"
	"github.com/nithit136/vwm-semantic-related/design"
	"github.com/nithit136/vwm-semantic-related/sched"
)

// FixTime is the default fixation marker duration.
const FixTime = 1000 * time.Millisecond

// TrialRecord is the complete outcome of one executed trial.  Records
// are append-only: once accumulated they are never mutated.
type TrialRecord struct {
	Trial      int             `desc:"0-based trial number"`
	Cond       sched.Condition `desc:"scheduled condition"`
	ID         int             `desc:"bucket index of the resolved assignment entry"`
	Assign     design.Assign   `desc:"the resolved assignment entry for this trial"`
	StimLoc    []int           `desc:"layout slot assigned to each stimulus position"`
	AFCLoc     []AltKind       `desc:"alternative kind at each of the 4 choice slots"`
	Response   string          `desc:"response key pressed"`
	RespKind   AltKind         `desc:"which alternative the response selected"`
	RT         time.Duration   `desc:"time from choice onset to response"`
	CorrectAns int             `desc:"1 if the exact target was chosen"`
	CorrectCat int             `desc:"1 if the chosen object was the critical object"`
}

// Session executes the scheduled trials one at a time against the
// host.  Exactly one trial is ever in flight; trial i+1 starts only
// after trial i resolves, and an abort ends the session immediately.
type Session struct {
	Design  *design.Table  `view:"-" desc:"precomputed design table"`
	Env     *sched.TaskEnv `desc:"trial schedule environment"`
	Host    Host           `view:"-" desc:"display / input surface"`
	Rnd     *rand.Rand     `view:"-" desc:"random source for per-trial layout"`
	Results *Results       `desc:"append-only results accumulator"`
	FixDur  time.Duration  `desc:"fixation marker duration"`
	Phase   Phase          `inactive:"+" desc:"current trial phase"`
}

func NewSession(tb *design.Table, ev *sched.TaskEnv, host Host, rnd *rand.Rand, rs *Results) *Session {
	return &Session{Design: tb, Env: ev, Host: host, Rnd: rnd, Results: rs, FixDur: FixTime}
}

// Run steps the environment through the whole schedule, running one
// trial per step.  On normal completion the results are marked
// export-eligible; an abort leaves them ineligible and returns early.
func (se *Session) Run() error {
	if err := se.Env.Validate(); err != nil {
		return err
	}
	se.Env.Init(0)
	for se.Env.Step() {
		if !se.RunTrial() {
			return nil // aborted: remaining trials are skipped
		}
	}
	se.Results.Completed = true
	return nil
}

// RunTrial drives the phase sequence for the current scheduled trial.
// Returns false if the participant aborted during the choice phase.
func (se *Session) RunTrial() bool {
	cond := se.Env.CurCond()
	id := se.Env.CurID()
	bk := se.Design.Bucket(cond.Size, cond.Ctx, cond.Cat)
	if bk == nil {
		panic(fmt.Sprintf("task: no design bucket for %s %d %s", cond.Ctx, cond.Size, cond.Cat))
	}
	as := bk.Entries[id]
	stims, stimLoc := se.encodeViews(cond, as)
	alts := se.choiceViews(cond, as)

	allowed := make([]string, 0, len(RespKeys)+1)
	allowed = append(allowed, RespKeys[:]...)
	allowed = append(allowed, AbortKey)

	se.Phase = Fixation1
	for {
		switch se.Phase {
		case Fixation1:
			se.Host.ShowFixation()
			se.Host.Wait(se.FixDur)
			se.Phase = Encode
		case Encode:
			se.Host.ShowStimuli(stims)
			se.Host.Wait(cond.EncTime)
			se.Phase = Fixation2
		case Fixation2:
			se.Host.ShowFixation()
			se.Host.Wait(se.FixDur)
			se.Phase = Choice
		case Choice:
			se.Host.ShowChoice(alts)
			start := time.Now()
			key := se.Host.AwaitKey(allowed)
			if key == AbortKey {
				se.Phase = Aborted
				break
			}
			rt := time.Since(start)
			se.resolve(cond, id, as, stimLoc, alts, key, rt)
			se.Phase = Resolved
		case Resolved:
			return true
		case Aborted:
			return false
		}
	}
}

// encodeViews assigns the trial's stimuli to layout slots by uniform
// random permutation and resolves their image paths.
func (se *Session) encodeViews(cond sched.Condition, as design.Assign) ([]StimView, []int) {
	n := int(cond.Size)
	slots := EncodeSlots(cond.Size)
	loc := combin.IntSequence(0, n)
	combin.ShuffleInts(se.Rnd, loc)
	views := make([]StimView, n)
	for i := 0; i < n; i++ {
		views[i] = StimView{
			Cat:   as.Cats[i],
			Obj:   as.Stims[i],
			State: as.States[i],
			Slot:  loc[i],
			Pos:   slots[loc[i]],
			Path:  design.StimPath(cond.Size, as.Cats[i], as.Stims[i], as.States[i]),
		}
	}
	return views, loc
}

// choiceViews lays out the 4AFC display.  The two critical-object
// alternatives always occupy one adjacent slot pair and the two foil
// alternatives the other; order within each pair and the order of the
// pairs are randomized independently, giving 8 equally likely
// arrangements.
func (se *Session) choiceViews(cond sched.Condition, as design.Assign) []ChoiceView {
	target := []AltKind{MatchTarget, MatchObj}
	if se.Rnd.Intn(2) == 1 {
		target[0], target[1] = target[1], target[0]
	}
	foil := []AltKind{Foil1, Foil2}
	if se.Rnd.Intn(2) == 1 {
		foil[0], foil[1] = foil[1], foil[0]
	}
	pairs := [2][]AltKind{target, foil}
	if se.Rnd.Intn(2) == 1 {
		pairs[0], pairs[1] = pairs[1], pairs[0]
	}
	order := append(append([]AltKind{}, pairs[0]...), pairs[1]...)

	encSt := as.States[0]
	views := make([]ChoiceView, 4)
	for slot, kind := range order {
		var cat design.Category
		var obj string
		var st design.BinaryState
		switch kind {
		case MatchTarget:
			cat, obj, st = as.AFCCat[0], as.AFCStim[0], encSt
		case MatchObj:
			cat, obj, st = as.AFCCat[0], as.AFCStim[0], encSt.Other()
		case Foil1:
			cat, obj, st = as.AFCCat[1], as.AFCStim[1], design.S1
		case Foil2:
			cat, obj, st = as.AFCCat[1], as.AFCStim[1], design.S2
		}
		views[slot] = ChoiceView{
			Kind:  kind,
			Cat:   cat,
			Obj:   obj,
			State: st,
			Slot:  slot,
			Key:   RespKeys[slot],
			Path:  design.StimPath(cond.Size, cat, obj, st),
		}
	}
	return views
}

// resolve scores the response and appends the trial record.
func (se *Session) resolve(cond sched.Condition, id int, as design.Assign, stimLoc []int, alts []ChoiceView, key string, rt time.Duration) {
	slot := -1
	for i, rk := range RespKeys {
		if key == rk {
			slot = i
		}
	}
	kind := alts[slot].Kind
	ans, cat := kind.Score()
	afcLoc := make([]AltKind, 4)
	for i, av := range alts {
		afcLoc[i] = av.Kind
	}
	se.Results.Append(TrialRecord{
		Trial:      se.Env.Trial.Cur,
		Cond:       cond,
		ID:         id,
		Assign:     as,
		StimLoc:    stimLoc,
		AFCLoc:     afcLoc,
		Response:   key,
		RespKind:   kind,
		RT:         rt,
		CorrectAns: ans,
		CorrectCat: cat,
	})
}
