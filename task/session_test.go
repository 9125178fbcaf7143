// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package task

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/nithit136/vwm-semantic-related/design"
	"github.com/nithit136/vwm-semantic-related/sched"
)

func testSession(t *testing.T, seed int64, host Host) *Session {
	t.Helper()
	rnd := rand.New(rand.NewSource(seed))
	tb, err := design.Build(rnd)
	if err != nil {
		t.Fatal(err)
	}
	ev := &sched.TaskEnv{Nm: "test"}
	ev.Config(rnd)
	rs := &Results{Participant: Participant{ID: "p01", Age: 25}}
	return NewSession(tb, ev, host, rnd, rs)
}

func TestFullCompletion(t *testing.T) {
	ah := &AutoHost{}
	se := testSession(t, 11, ah)
	if err := se.Run(); err != nil {
		t.Fatal(err)
	}
	if se.Results.NumTrials() != sched.NTrials {
		t.Fatalf("completed %d trials, want %d", se.Results.NumTrials(), sched.NTrials)
	}
	if !se.Results.Completed {
		t.Fatalf("results not marked completed")
	}
	// two fixations per trial, one encode, one choice
	if ah.Fixations != 2*sched.NTrials || ah.Encodes != sched.NTrials || ah.Choices != sched.NTrials {
		t.Errorf("display counts: fix=%d enc=%d cho=%d", ah.Fixations, ah.Encodes, ah.Choices)
	}
	pl, err := se.Results.Payload()
	if err != nil {
		t.Fatal(err)
	}
	n := sched.NTrials
	if len(pl.Task.Trial) != n || len(pl.Task.Condition) != n || len(pl.Task.SetSize) != n ||
		len(pl.Task.EncodingTime) != n || len(pl.Task.Context) != n || len(pl.Task.Category) != n ||
		len(pl.Task.ID) != n || len(pl.Task.Obj) != n || len(pl.Task.State) != n ||
		len(pl.Task.StimulusLoc) != n || len(pl.Task.AFCCat) != n || len(pl.Task.AFCStim) != n ||
		len(pl.Task.AFCLoc) != n || len(pl.Task.Response) != n || len(pl.Task.RT) != n ||
		len(pl.Task.CorrectAns) != n || len(pl.Task.CorrectCat) != n {
		t.Errorf("payload field lengths are not all %d", n)
	}
	dt := se.Results.Table()
	if dt.Rows != n {
		t.Errorf("trial table has %d rows, want %d", dt.Rows, n)
	}
}

func TestAbortSkipsExport(t *testing.T) {
	const k = 17
	ah := &AutoHost{}
	for i := 0; i < k; i++ {
		ah.Script = append(ah.Script, RespKeys[i%4])
	}
	ah.Script = append(ah.Script, AbortKey)
	se := testSession(t, 12, ah)
	if err := se.Run(); err != nil {
		t.Fatal(err)
	}
	if se.Results.NumTrials() != k {
		t.Fatalf("accumulated %d records, want %d", se.Results.NumTrials(), k)
	}
	if se.Results.Completed {
		t.Fatalf("aborted session marked completed")
	}
	if se.Phase != Aborted {
		t.Errorf("session phase %s, want %s", se.Phase, Aborted)
	}
	if _, err := se.Results.Payload(); err == nil {
		t.Errorf("aborted session produced an export payload")
	}
}

func TestSingleTrialContent(t *testing.T) {
	rnd := rand.New(rand.NewSource(21))
	tb, err := design.Build(rnd)
	if err != nil {
		t.Fatal(err)
	}
	cond := sched.Condition{Size: design.Size2, EncTime: 500 * time.Millisecond, Ctx: design.Related, Cat: design.Categories[0]}
	ev := &sched.TaskEnv{Nm: "one", Sched: []sched.Condition{cond}, Ids: []int{0}}
	ah := &AutoHost{}
	rs := &Results{}
	se := NewSession(tb, ev, ah, rnd, rs)
	ev.Init(0)
	if !ev.Step() {
		t.Fatal("env did not step")
	}
	if !se.RunTrial() {
		t.Fatal("trial aborted unexpectedly")
	}
	if len(ah.LastStims) != 2 {
		t.Fatalf("encoding display has %d images, want 2", len(ah.LastStims))
	}
	bk := tb.Bucket(design.Size2, design.Related, design.Categories[0])
	as := bk.Entries[0]
	for i, sv := range ah.LastStims {
		if sv.Obj != as.Stims[i] || sv.State != as.States[i] {
			t.Errorf("stimulus %d shows %s_%s, want %s_%s", i, sv.Obj, sv.State, as.Stims[i], as.States[i])
		}
		wantPath := design.StimPath(design.Size2, as.Cats[i], as.Stims[i], as.States[i])
		if sv.Path != wantPath {
			t.Errorf("stimulus %d path %s, want %s", i, sv.Path, wantPath)
		}
	}
	tr := rs.Trials[0]
	if tr.ID != 0 || tr.Cond != cond {
		t.Errorf("record condition mismatch: %+v", tr)
	}
	// the record carries this trial's own resolved category list
	if fmt.Sprint(tr.Assign.Cats) != fmt.Sprint(as.Cats) {
		t.Errorf("record categories %v, want %v", tr.Assign.Cats, as.Cats)
	}
}

func TestScoring(t *testing.T) {
	for kind, want := range map[AltKind][2]int{
		MatchTarget: {1, 1},
		MatchObj:    {0, 1},
		Foil1:       {0, 0},
		Foil2:       {0, 0},
	} {
		ans, cat := kind.Score()
		if ans != want[0] || cat != want[1] {
			t.Errorf("%s scored (%d,%d), want (%d,%d)", kind, ans, cat, want[0], want[1])
		}
	}
}

func TestScoredResponseKinds(t *testing.T) {
	// respond with each key in turn on separate single-trial runs and
	// check the recorded score matches the alternative under that key
	for ki, key := range RespKeys {
		rnd := rand.New(rand.NewSource(int64(100 + ki)))
		tb, err := design.Build(rnd)
		if err != nil {
			t.Fatal(err)
		}
		cond := sched.Condition{Size: design.Size2, EncTime: 150 * time.Millisecond, Ctx: design.Related, Cat: "dog"}
		ev := &sched.TaskEnv{Nm: "one", Sched: []sched.Condition{cond}, Ids: []int{3}}
		ah := &AutoHost{Script: []string{key}}
		rs := &Results{}
		se := NewSession(tb, ev, ah, rnd, rs)
		ev.Init(0)
		ev.Step()
		se.RunTrial()
		tr := rs.Trials[0]
		kind := ah.LastAlts[ki].Kind
		wantAns, wantCat := kind.Score()
		if tr.RespKind != kind || tr.CorrectAns != wantAns || tr.CorrectCat != wantCat {
			t.Errorf("key %s: recorded %s (%d,%d), displayed %s (%d,%d)",
				key, tr.RespKind, tr.CorrectAns, tr.CorrectCat, kind, wantAns, wantCat)
		}
	}
}

func TestChoiceArrangements(t *testing.T) {
	rnd := rand.New(rand.NewSource(5))
	se := &Session{Rnd: rnd}
	as := design.Assign{
		Cats:    []design.Category{"dog", "dog"},
		Stims:   []string{"obj1", "obj2"},
		States:  []design.BinaryState{design.S2, design.S1},
		AFCCat:  [2]design.Category{"dog", "car"},
		AFCStim: [2]string{"obj1", "obj3"},
	}
	cond := sched.Condition{Size: design.Size2, Ctx: design.Related, Cat: "dog"}
	seen := map[string]int{}
	for i := 0; i < 800; i++ {
		alts := se.choiceViews(cond, as)
		if len(alts) != 4 {
			t.Fatalf("%d alternatives", len(alts))
		}
		// critical-object pair and foil pair each occupy adjacent slots
		isMatch := func(k AltKind) bool { return k == MatchTarget || k == MatchObj }
		if isMatch(alts[0].Kind) != isMatch(alts[1].Kind) || isMatch(alts[2].Kind) != isMatch(alts[3].Kind) {
			t.Fatalf("pairs split across slots: %v %v %v %v", alts[0].Kind, alts[1].Kind, alts[2].Kind, alts[3].Kind)
		}
		for slot, av := range alts {
			if av.Slot != slot || av.Key != RespKeys[slot] {
				t.Fatalf("slot %d bound to %s", slot, av.Key)
			}
			switch av.Kind {
			case MatchTarget:
				if av.Obj != "obj1" || av.State != design.S2 {
					t.Fatalf("match_target shows %s_%s", av.Obj, av.State)
				}
			case MatchObj:
				if av.Obj != "obj1" || av.State != design.S1 {
					t.Fatalf("match_obj shows %s_%s", av.Obj, av.State)
				}
			case Foil1:
				if av.Obj != "obj3" || av.Cat != "car" || av.State != design.S1 {
					t.Fatalf("foil_1 shows %s/%s_%s", av.Cat, av.Obj, av.State)
				}
			case Foil2:
				if av.Obj != "obj3" || av.State != design.S2 {
					t.Fatalf("foil_2 shows %s_%s", av.Obj, av.State)
				}
			}
		}
		seen[joinKinds([]AltKind{alts[0].Kind, alts[1].Kind, alts[2].Kind, alts[3].Kind})]++
	}
	if len(seen) != 8 {
		t.Errorf("observed %d arrangements, want all 8: %v", len(seen), seen)
	}
}

func TestKeyBus(t *testing.T) {
	kb := NewKeyBus()
	go func() {
		kb.Post("x") // not allowed: ignored
		kb.Post("q") // not allowed: ignored
		kb.Post("f")
	}()
	key := kb.Await([]string{"d", "f", "j", "k"})
	if key != "f" {
		t.Errorf("Await returned %q, want f", key)
	}

	kb2 := NewKeyBus()
	go func() {
		time.Sleep(10 * time.Millisecond)
		kb2.Close()
	}()
	if key := kb2.Await([]string{"d"}); key != AbortKey {
		t.Errorf("closed bus returned %q, want %q", key, AbortKey)
	}
}

func TestEncodeSlots(t *testing.T) {
	for _, sz := range design.SetSizes {
		slots := EncodeSlots(sz)
		if len(slots) != int(sz) {
			t.Errorf("size %d has %d slots", sz, len(slots))
		}
	}
	if len(ChoiceSlots) != 4 {
		t.Errorf("choice slots %d, want 4", len(ChoiceSlots))
	}
}
