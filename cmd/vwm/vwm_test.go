// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nithit136/vwm-semantic-related/sched"
	"github.com/nithit136/vwm-semantic-related/task"
)

func TestValidateIntake(t *testing.T) {
	ss := &Sim{}
	ss.New()
	cases := []struct {
		id, age string
		ok      bool
	}{
		{"p01", "25", true},
		{"  p01  ", " 25 ", true},
		{"", "25", false},
		{"p01", "", false},
		{"p01", "abc", false},
		{"p01", "-3", false},
		{"p01", "250", false},
	}
	for _, cs := range cases {
		ss.Participant.ID = cs.id
		ss.AgeStr = cs.age
		err := ss.ValidateIntake()
		if cs.ok && err != nil {
			t.Errorf("id=%q age=%q: unexpected error %v", cs.id, cs.age, err)
		}
		if !cs.ok && err == nil {
			t.Errorf("id=%q age=%q: expected an error", cs.id, cs.age)
		}
	}
}

func TestRunSessionNoGui(t *testing.T) {
	ss := &Sim{}
	ss.New()
	ss.NoGui = true
	ss.RndSeed = 7
	ss.OutDir = t.TempDir()
	ss.Participant.ID = "p01"
	ss.AgeStr = "30"
	if err := ss.ValidateIntake(); err != nil {
		t.Fatal(err)
	}
	host := &task.AutoHost{}
	if err := ss.Init(host); err != nil {
		t.Fatal(err)
	}
	if err := ss.RunSession(host); err != nil {
		t.Fatal(err)
	}
	// the instruction screens run before trial 0
	if len(host.Images) != 2 {
		t.Errorf("showed %d instruction screens, want 2", len(host.Images))
	}
	if !ss.Results.Completed {
		t.Fatalf("session did not complete")
	}
	// every resolved trial lands in the log table as it happens
	if ss.TrialLog.Rows != sched.NTrials {
		t.Errorf("trial log has %d rows, want %d", ss.TrialLog.Rows, sched.NTrials)
	}
	for _, ext := range []string{".json", ".csv"} {
		fnm := filepath.Join(ss.OutDir, "p01"+ext)
		if _, err := os.Stat(fnm); err != nil {
			t.Errorf("export %s not written: %v", fnm, err)
		}
	}
}

func TestAbortedSessionNotExported(t *testing.T) {
	ss := &Sim{}
	ss.New()
	ss.NoGui = true
	ss.RndSeed = 8
	ss.OutDir = t.TempDir()
	ss.Participant.ID = "p02"
	ss.AgeStr = "30"
	if err := ss.ValidateIntake(); err != nil {
		t.Fatal(err)
	}
	// 2 instruction advances, 5 responses, then abort
	host := &task.AutoHost{Script: []string{
		task.ContinueKey, task.ContinueKey,
		"d", "f", "j", "k", "d",
		task.AbortKey,
	}}
	if err := ss.Init(host); err != nil {
		t.Fatal(err)
	}
	if err := ss.RunSession(host); err != nil {
		t.Fatal(err)
	}
	if ss.Results.Completed {
		t.Fatalf("aborted session marked completed")
	}
	if ss.TrialLog.Rows != 5 {
		t.Errorf("trial log has %d rows, want 5", ss.TrialLog.Rows)
	}
	if _, err := os.Stat(filepath.Join(ss.OutDir, "p02.json")); err == nil {
		t.Errorf("aborted session wrote an export payload")
	}
}
