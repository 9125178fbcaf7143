// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sched

import (
	"math/rand"
	"testing"
	"time"

	"github.com/nithit136/vwm-semantic-related/design"
)

func TestScheduleLength(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	sc := BuildSchedule(rnd)
	if len(sc) != 360 {
		t.Fatalf("schedule length %d, want 360", len(sc))
	}
}

func TestScheduleBalance(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	sc := BuildSchedule(rnd)
	// every (size, context, category) bucket is visited exactly
	// NReps x len(EncTimes) = 6 times
	visits := map[design.Key]int{}
	for _, cn := range sc {
		visits[design.Key{Size: cn.Size, Ctx: cn.Ctx, Cat: cn.Cat}]++
	}
	if len(visits) != 60 {
		t.Fatalf("expected 60 distinct buckets, got %d", len(visits))
	}
	for ky, n := range visits {
		if n != 6 {
			t.Errorf("bucket %s visited %d times, want 6", ky, n)
		}
	}
	// each encoding time appears 120 times
	encs := map[time.Duration]int{}
	for _, cn := range sc {
		encs[cn.EncTime]++
	}
	for _, enc := range EncTimes {
		if encs[enc] != 120 {
			t.Errorf("encoding time %v appears %d times, want 120", enc, encs[enc])
		}
	}
}

func TestIndexStream(t *testing.T) {
	rnd := rand.New(rand.NewSource(2))
	ids := BuildIndexStream(rnd)
	if len(ids) != 360 {
		t.Fatalf("index stream length %d, want 360", len(ids))
	}
	counts := map[int]int{}
	for _, id := range ids {
		if id < 0 || id >= design.BucketSize {
			t.Fatalf("index %d out of range", id)
		}
		counts[id]++
	}
	for id := 0; id < design.BucketSize; id++ {
		if counts[id] != 30 {
			t.Errorf("index %d occurs %d times, want 30", id, counts[id])
		}
	}
}

func TestEnvStepsWholeSchedule(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	ev := &TaskEnv{Nm: "test"}
	ev.Config(rnd)
	if err := ev.Validate(); err != nil {
		t.Fatal(err)
	}
	ev.Init(0)
	n := 0
	for ev.Step() {
		cn := ev.CurCond()
		if cn.Size == 0 {
			t.Fatalf("empty condition at trial %d", n)
		}
		id := ev.CurID()
		if id < 0 || id >= design.BucketSize {
			t.Fatalf("bad bucket index %d at trial %d", id, n)
		}
		n++
	}
	if n != NTrials {
		t.Fatalf("stepped %d trials, want %d", n, NTrials)
	}
}

func TestCondString(t *testing.T) {
	cn := Condition{Size: design.Size2, EncTime: 150 * time.Millisecond, Ctx: design.Related, Cat: "dog"}
	if cn.String() != "related_2_0.15" {
		t.Errorf("unexpected condition label %q", cn.String())
	}
}
