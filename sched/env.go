// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sched

import (
	"fmt"
	"math/rand"

	"github.com/emer/emergent/env"
	"github.com/emer/etable/etensor"
	"github.com/nithit136/vwm-semantic-related/design"
)

// TaskEnv steps through the precomputed trial schedule and index
// stream.  Both are generated once by Config and immutable afterward;
// stepping only advances the trial counter.  The current condition is
// exposed both through typed accessors, for the trial runtime, and as
// tensor state, for table and plot views.
type TaskEnv struct {
	Nm    string      `desc:"name of this environment"`
	Dsc   string      `desc:"description of this environment"`
	Sched []Condition `view:"-" desc:"shuffled trial schedule, built once"`
	Ids   []int       `view:"-" desc:"shuffled bucket index stream, built once, independent of Sched"`
	Run   env.Ctr     `view:"inline" desc:"run counter"`
	Trial env.Ctr     `view:"inline" desc:"trial counter within the session"`

	TsrSize etensor.Int     `view:"-" desc:"current set size (scalar)"`
	TsrEnc  etensor.Float64 `view:"-" desc:"current encoding time in seconds (scalar)"`
	TsrCtx  etensor.String  `view:"-" desc:"current context (scalar)"`
	TsrCat  etensor.String  `view:"-" desc:"current category (scalar)"`
	TsrID   etensor.Int     `view:"-" desc:"current bucket index (scalar)"`
}

func (ev *TaskEnv) Name() string { return ev.Nm }
func (ev *TaskEnv) Desc() string { return ev.Dsc }

// Config generates the schedule and index stream from the given random
// source.  Must be called once before Init / Step.
func (ev *TaskEnv) Config(rnd *rand.Rand) {
	ev.Sched = BuildSchedule(rnd)
	ev.Ids = BuildIndexStream(rnd)
	ev.TsrSize.SetShape([]int{1}, nil, nil)
	ev.TsrEnc.SetShape([]int{1}, nil, nil)
	ev.TsrCtx.SetShape([]int{1}, nil, nil)
	ev.TsrCat.SetShape([]int{1}, nil, nil)
	ev.TsrID.SetShape([]int{1}, nil, nil)
}

func (ev *TaskEnv) Validate() error {
	if len(ev.Sched) == 0 {
		return fmt.Errorf("TaskEnv: %v has no schedule -- call Config first", ev.Nm)
	}
	if len(ev.Sched) != NTrials || len(ev.Ids) != NTrials {
		return fmt.Errorf("TaskEnv: %v schedule %d / index stream %d, both must be %d",
			ev.Nm, len(ev.Sched), len(ev.Ids), NTrials)
	}
	return nil
}

func (ev *TaskEnv) Counters() []env.TimeScales {
	return []env.TimeScales{env.Run, env.Trial}
}

func (ev *TaskEnv) States() env.Elements {
	els := env.Elements{
		{"SetSize", []int{1}, nil},
		{"EncTime", []int{1}, nil},
		{"Context", []int{1}, nil},
		{"Category", []int{1}, nil},
		{"BucketID", []int{1}, nil},
	}
	return els
}

func (ev *TaskEnv) State(element string) etensor.Tensor {
	switch element {
	case "SetSize":
		return &ev.TsrSize
	case "EncTime":
		return &ev.TsrEnc
	case "Context":
		return &ev.TsrCtx
	case "Category":
		return &ev.TsrCat
	case "BucketID":
		return &ev.TsrID
	}
	return nil
}

func (ev *TaskEnv) Actions() env.Elements { return nil }

func (ev *TaskEnv) Action(element string, input etensor.Tensor) {
	// nop
}

func (ev *TaskEnv) Init(run int) {
	ev.Run.Scale = env.Run
	ev.Trial.Scale = env.Trial
	ev.Run.Init()
	ev.Trial.Init()
	ev.Run.Cur = run
	ev.Trial.Max = len(ev.Sched)
	ev.Trial.Cur = -1 // first Step() = trial 0
}

// Step advances to the next scheduled trial, returning false once the
// schedule is exhausted.
func (ev *TaskEnv) Step() bool {
	ev.Run.Same()
	if ev.Trial.Incr() {
		ev.Run.Incr()
		return false
	}
	ev.setState()
	return true
}

func (ev *TaskEnv) setState() {
	cn := ev.CurCond()
	ev.TsrSize.Set1D(0, int(cn.Size))
	ev.TsrEnc.Set1D(0, cn.EncTime.Seconds())
	ev.TsrCtx.Set1D(0, cn.Ctx.String())
	ev.TsrCat.Set1D(0, string(cn.Cat))
	ev.TsrID.Set1D(0, ev.CurID())
}

// CurCond returns the condition of the current trial.
func (ev *TaskEnv) CurCond() Condition {
	return ev.Sched[ev.Trial.Cur]
}

// CurID returns the bucket index assigned to the current trial.
func (ev *TaskEnv) CurID() int {
	return ev.Ids[ev.Trial.Cur]
}

// String returns a label for the current trial.
func (ev *TaskEnv) String() string {
	if ev.Trial.Cur < 0 || ev.Trial.Cur >= len(ev.Sched) {
		return "-"
	}
	return fmt.Sprintf("%d_%s_%s_id%d", ev.Trial.Cur, ev.CurCond(), ev.CurCond().Cat, ev.CurID())
}

func (ev *TaskEnv) Counter(scale env.TimeScales) (cur, prv int, chg bool) {
	switch scale {
	case env.Run:
		return ev.Run.Query()
	case env.Trial:
		return ev.Trial.Query()
	}
	return -1, -1, false
}

// Compile-time check that implements Env interface
var _ env.Env = (*TaskEnv)(nil)
