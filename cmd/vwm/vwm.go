// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// vwm runs the visual working memory task: a balanced pseudo-random
// design over set size, encoding time, semantic context and category,
// executed as timed encode-then-4AFC trials with per-trial logging and
// a JSON export payload on completion.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/emer/etable/etable"
	"github.com/goki/gi/gimain"

	"github.com/nithit136/vwm-semantic-related/assets"
	"github.com/nithit136/vwm-semantic-related/design"
	"github.com/nithit136/vwm-semantic-related/sched"
	"github.com/nithit136/vwm-semantic-related/task"
)

var TheSim Sim

func main() {
	TheSim.New()
	if len(os.Args) > 1 {
		TheSim.CmdArgs() // simple assumption is that any args = no gui -- could add explicit arg if you want
	} else {
		gimain.Main(func() { // this starts gui -- requires valid OpenGL display connection (e.g., X11)
			guirun()
		})
	}
}

func guirun() {
	win := TheSim.ConfigGui()
	win.StartEventLoop()
}

// Sim holds all the state for one run of the task.
type Sim struct {
	Participant task.Participant `desc:"participant metadata, collected before the session"`
	AgeStr      string           `desc:"participant age as entered; validated at intake"`
	RndSeed     int64            `desc:"the current random seed"`
	AssetDir    string           `desc:"directory holding the stimulus images"`
	OutDir      string           `desc:"directory results are written to on completion"`
	Design      *design.Table    `view:"-" desc:"the precomputed stimulus design"`
	Env         sched.TaskEnv    `desc:"the trial schedule environment"`
	Results     *task.Results    `view:"-" desc:"results accumulator for the current session"`
	Sess        *task.Session    `view:"-" desc:"the trial runtime"`
	Assets      *assets.Cache    `view:"-" desc:"preloaded stimulus images"`
	TrialLog    *etable.Table    `view:"no-inline" desc:"per-trial log, one row per resolved trial"`
	NoGui       bool             `view:"-" desc:"if true, runs scripted with no gui"`
	InitHasRun  bool             `view:"-" inactive:"+" desc:"whether Init has been run"`
	IsRunning   bool             `view:"-" inactive:"+" desc:"true while the session goroutine is active"`

	gui SimGui // gui-only state, see gui.go
}

// New sets defaults.
func (ss *Sim) New() {
	ss.RndSeed = 1
	ss.AgeStr = ""
	ss.AssetDir = "assets"
	ss.OutDir = "results"
	ss.TrialLog = &etable.Table{}
	task.ConfigLogTable(ss.TrialLog)
}

// NewRndSeed gets a new random seed based on current time.
func (ss *Sim) NewRndSeed() {
	ss.RndSeed = time.Now().UnixNano()
}

// ValidateIntake checks the participant metadata: a non-empty id and a
// numeric, plausible age.  Returns a user-facing message on failure.
func (ss *Sim) ValidateIntake() error {
	ss.Participant.ID = strings.TrimSpace(ss.Participant.ID)
	if ss.Participant.ID == "" {
		return fmt.Errorf("participant id must not be empty")
	}
	age, err := strconv.Atoi(strings.TrimSpace(ss.AgeStr))
	if err != nil {
		return fmt.Errorf("age %q is not a number", ss.AgeStr)
	}
	if age <= 0 || age > 120 {
		return fmt.Errorf("age %d is out of range", age)
	}
	ss.Participant.Age = age
	return nil
}

// Init builds a fresh design, schedule and accumulator from the
// current seed.  Any prior session state is discarded.
func (ss *Sim) Init(host task.Host) error {
	rnd := rand.New(rand.NewSource(ss.RndSeed))
	tb, err := design.Build(rnd)
	if err != nil {
		return err
	}
	ss.Design = tb
	ss.Env.Nm = "TaskEnv"
	ss.Env.Dsc = "trial schedule for the session"
	ss.Env.Config(rnd)
	ss.Results = &task.Results{Participant: ss.Participant}
	ss.Sess = task.NewSession(tb, &ss.Env, host, rnd, ss.Results)
	ss.TrialLog.SetNumRows(0)
	ss.InitHasRun = true
	return nil
}

// LoadAssets preloads every stimulus image.  Missing assets are
// reported but do not block the session.
func (ss *Sim) LoadAssets() {
	ss.Assets = assets.NewCache(ss.AssetDir)
	ss.Assets.LoadAll(design.AllStimPaths())
	fmt.Println(ss.Assets.SizeReport())
	for _, p := range ss.Assets.Failed {
		fmt.Printf("missing asset: %s\n", p)
	}
}

// Instructions shows the instruction screens in order, each advanced
// by the continue key.
func (ss *Sim) Instructions(host task.Host) {
	for _, p := range design.InstructionPaths {
		host.ShowImage(p)
		host.AwaitKey([]string{task.ContinueKey})
	}
}

// RunSession drives the whole session: instructions, then one trial
// per schedule step, logging each resolved trial.  On completion the
// results are exported; an abort discards them.
func (ss *Sim) RunSession(host task.Host) error {
	if err := ss.Env.Validate(); err != nil {
		return err
	}
	ss.IsRunning = true
	defer func() { ss.IsRunning = false }()

	ss.Instructions(host)
	ss.Env.Init(0)
	for ss.Env.Step() {
		if !ss.Sess.RunTrial() {
			fmt.Printf("aborted after %d trials -- no results written\n", ss.Results.NumTrials())
			return nil
		}
		ss.LogTrial()
	}
	ss.Results.Completed = true
	return ss.Export()
}

// LogTrial appends the most recent trial record to the log table.
func (ss *Sim) LogTrial() {
	row := ss.TrialLog.Rows
	ss.TrialLog.SetNumRows(row + 1)
	task.WriteLogRow(ss.TrialLog, row, ss.Results.Trials[row])
	ss.GuiTrialUpdate()
}

// Export writes the JSON payload and the CSV trial log for a completed
// session.
func (ss *Sim) Export() error {
	if err := os.MkdirAll(ss.OutDir, 0755); err != nil {
		return err
	}
	base := filepath.Join(ss.OutDir, ss.Participant.ID)
	if err := ss.Results.SaveJSON(base + ".json"); err != nil {
		return err
	}
	if err := ss.Results.SaveCSV(base + ".csv"); err != nil {
		return err
	}
	ans, cat := ss.Results.PctCorrect()
	fmt.Printf("session complete: %d trials, %.1f%% correct, %.1f%% correct category\n",
		ss.Results.NumTrials(), ans, cat)
	fmt.Printf("results written to %s.json / .csv\n", base)
	return nil
}

func (ss *Sim) CmdArgs() {
	ss.NoGui = true
	var nogui bool
	var seed int64
	flag.StringVar(&ss.Participant.ID, "participant", "", "participant id -- must not be empty")
	flag.StringVar(&ss.AgeStr, "age", "", "participant age in years")
	flag.Int64Var(&seed, "seed", 0, "random seed for the design and schedule -- 0 = time-based")
	flag.StringVar(&ss.AssetDir, "assets", "assets", "directory holding the stimulus images")
	flag.StringVar(&ss.OutDir, "out", "results", "directory results are written to")
	flag.BoolVar(&nogui, "nogui", true, "if not passing any other args and want to run nogui, use nogui")
	flag.Parse()

	if seed != 0 {
		ss.RndSeed = seed
	} else {
		ss.NewRndSeed()
	}
	if err := ss.ValidateIntake(); err != nil {
		log.Fatalf("intake: %v", err)
	}
	ss.LoadAssets()

	host := &task.AutoHost{}
	if err := ss.Init(host); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("running %d trials for participant %s (seed %d)\n",
		sched.NTrials, ss.Participant.ID, ss.RndSeed)
	if err := ss.RunSession(host); err != nil {
		log.Fatal(err)
	}
}
