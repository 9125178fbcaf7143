// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/emer/etable/eplot"
	"github.com/emer/etable/etview"
	"github.com/goki/gi/gi"
	"github.com/goki/gi/giv"
	"github.com/goki/ki/ki"
	"github.com/goki/mat32"

	"github.com/nithit136/vwm-semantic-related/task"
)

// SimGui holds the gui-only state of the sim.
type SimGui struct {
	Win        *gi.Window        `view:"-" desc:"main window"`
	ToolBar    *gi.ToolBar       `view:"-" desc:"the master toolbar"`
	StructView *giv.StructView   `view:"-" desc:"the params viewer"`
	DispLbl    *gi.Label         `view:"-" desc:"the task display, rendered as text"`
	LogView    *etview.TableView `view:"-" desc:"trial log viewer"`
	AccPlot    *eplot.Plot2D     `view:"-" desc:"running accuracy plot"`
	Bus        *task.KeyBus      `view:"-" desc:"bridges toolbar key actions to the session"`
	Host       *GuiHost          `view:"-" desc:"host the session runs against"`
}

// GuiHost runs the session against the gui: phases are rendered into
// the display label and responses arrive over the key bus from the
// toolbar key actions.  All methods are called from the session
// goroutine.
type GuiHost struct {
	Sim *Sim
	Bus *task.KeyBus
}

func (gh *GuiHost) setDisplay(txt string) {
	lbl := gh.Sim.gui.DispLbl
	if lbl == nil {
		return
	}
	lbl.SetText(txt)
	gh.Sim.gui.Win.Viewport.SetNeedsFullRender()
}

func (gh *GuiHost) ShowFixation() {
	gh.setDisplay("+")
}

func (gh *GuiHost) ShowStimuli(stims []task.StimView) {
	lines := make([]string, len(stims))
	for _, sv := range stims {
		lines[sv.Slot] = fmt.Sprintf("(%+.2f, %+.2f)  %s/%s_%s", sv.Pos.X, sv.Pos.Y, sv.Cat, sv.Obj, sv.State)
	}
	gh.setDisplay(strings.Join(lines, "\n"))
}

func (gh *GuiHost) ShowChoice(alts []task.ChoiceView) {
	lines := make([]string, len(alts))
	for _, av := range alts {
		lines[av.Slot] = fmt.Sprintf("[%s]  %s/%s_%s", av.Key, av.Cat, av.Obj, av.State)
	}
	gh.setDisplay("which did you see?\n" + strings.Join(lines, "\n"))
}

func (gh *GuiHost) ShowImage(path string) {
	gh.setDisplay(fmt.Sprintf("%s\n\npress %s to continue", path, task.ContinueKey))
}

func (gh *GuiHost) Wait(d time.Duration) {
	time.Sleep(d)
}

func (gh *GuiHost) AwaitKey(allowed []string) string {
	return gh.Bus.Await(allowed)
}

var _ task.Host = (*GuiHost)(nil)

// GuiTrialUpdate refreshes the log-dependent views after a trial.
// Safe to call from the session goroutine; a nop in nogui mode.
func (ss *Sim) GuiTrialUpdate() {
	if ss.NoGui || ss.gui.AccPlot == nil {
		return
	}
	ss.gui.AccPlot.GoUpdate()
	ss.gui.LogView.UpdateTable()
}

// ConfigAccPlot configures the running accuracy plot over trials.
func (ss *Sim) ConfigAccPlot(plt *eplot.Plot2D) *eplot.Plot2D {
	plt.Params.Title = "Running Accuracy"
	plt.Params.XAxisCol = "Trial"
	plt.SetTable(ss.TrialLog)
	// order of params: on, fixMin, min, fixMax, max
	plt.SetColParams("Trial", eplot.Off, eplot.FixMin, 0, eplot.FloatMax, 0)
	plt.SetColParams("SetSize", eplot.Off, eplot.FixMin, 0, eplot.FloatMax, 0)
	plt.SetColParams("EncTime", eplot.Off, eplot.FixMin, 0, eplot.FloatMax, 0)
	plt.SetColParams("RT", eplot.Off, eplot.FixMin, 0, eplot.FloatMax, 0)
	plt.SetColParams("CorrectAns", eplot.On, eplot.FixMin, 0, eplot.FixMax, 1)
	plt.SetColParams("CorrectCat", eplot.On, eplot.FixMin, 0, eplot.FixMax, 1)
	return plt
}

// ConfigGui configures the GoGi gui interface for this task.
func (ss *Sim) ConfigGui() *gi.Window {
	width := 1280
	height := 920

	gi.SetAppName("vwm")
	gi.SetAppAbout(`A visual working memory task with semantically related and unrelated displays. See <a href="https://github.com/nithit136/vwm-semantic-related">on GitHub</a>.</p>`)

	win := gi.NewMainWindow("vwm", "Visual Working Memory Task", width, height)
	ss.gui.Win = win

	vp := win.WinViewport2D()
	updt := vp.UpdateStart()

	mfr := win.SetMainFrame()

	tbar := gi.AddNewToolBar(mfr, "tbar")
	tbar.SetStretchMaxWidth()
	ss.gui.ToolBar = tbar

	split := gi.AddNewSplitView(mfr, "split")
	split.Dim = mat32.X
	split.SetStretchMax()

	sv := giv.AddNewStructView(split, "sv")
	sv.SetStruct(ss)
	ss.gui.StructView = sv

	tv := gi.AddNewTabView(split, "tv")

	frm := gi.AddNewFrame(tv, "Display", gi.LayoutVert)
	frm.SetStretchMax()
	lbl := gi.AddNewLabel(frm, "display", "press Init, then Run")
	lbl.SetProp("font-size", "x-large")
	lbl.SetStretchMax()
	ss.gui.DispLbl = lbl
	tv.AddTab(frm, "Display")

	tlv := tv.AddNewTab(etview.KiT_TableView, "TrialLog").(*etview.TableView)
	tlv.SetName("TrialLog")
	tlv.SetTable(ss.TrialLog, nil)
	ss.gui.LogView = tlv

	plt := tv.AddNewTab(eplot.KiT_Plot2D, "Accuracy").(*eplot.Plot2D)
	ss.gui.AccPlot = ss.ConfigAccPlot(plt)

	split.SetSplits(.3, .7)

	ss.gui.Bus = task.NewKeyBus()
	ss.gui.Host = &GuiHost{Sim: ss, Bus: ss.gui.Bus}

	tbar.AddAction(gi.ActOpts{Label: "Init", Icon: "update", Tooltip: "Validate participant info and build a fresh design and schedule from the current seed.", UpdateFunc: func(act *gi.Action) {
		act.SetActiveStateUpdt(!ss.IsRunning)
	}}, win.This(), func(recv, send ki.Ki, sig int64, data interface{}) {
		if err := ss.ValidateIntake(); err != nil {
			gi.PromptDialog(vp, gi.DlgOpts{Title: "Participant Info", Prompt: err.Error()},
				gi.AddOk, gi.NoCancel, nil, nil)
			return
		}
		ss.LoadAssets()
		if err := ss.Init(ss.gui.Host); err != nil {
			gi.PromptDialog(vp, gi.DlgOpts{Title: "Init Failed", Prompt: err.Error()},
				gi.AddOk, gi.NoCancel, nil, nil)
			return
		}
		ss.gui.DispLbl.SetText("ready -- press Run")
		vp.SetNeedsFullRender()
	})

	tbar.AddAction(gi.ActOpts{Label: "Run", Icon: "run", Tooltip: "Run the session: instructions, then all scheduled trials.", UpdateFunc: func(act *gi.Action) {
		act.SetActiveStateUpdt(ss.InitHasRun && !ss.IsRunning)
	}}, win.This(), func(recv, send ki.Ki, sig int64, data interface{}) {
		if !ss.InitHasRun || ss.IsRunning {
			return
		}
		go func() {
			if err := ss.RunSession(ss.gui.Host); err != nil {
				fmt.Printf("session error: %v\n", err)
			}
			ss.gui.ToolBar.UpdateActions()
		}()
	})

	tbar.AddAction(gi.ActOpts{Label: "Abort", Icon: "stop", Tooltip: "Abort the session at the next choice. Accumulated results are discarded.", UpdateFunc: func(act *gi.Action) {
		act.SetActiveStateUpdt(ss.IsRunning)
	}}, win.This(), func(recv, send ki.Ki, sig int64, data interface{}) {
		ss.gui.Bus.Post(task.AbortKey)
	})

	tbar.AddSeparator("keySep")
	keyLabel := gi.AddNewLabel(tbar, "keyLabel", "Respond:")
	keyLabel.SetProp("font-size", "large")

	for _, rk := range task.RespKeys {
		rk := rk
		tbar.AddAction(gi.ActOpts{Label: rk, Tooltip: "Choose the alternative under this key.", UpdateFunc: func(act *gi.Action) {
			act.SetActiveStateUpdt(ss.IsRunning)
		}}, win.This(), func(recv, send ki.Ki, sig int64, data interface{}) {
			ss.gui.Bus.Post(rk)
		})
	}

	tbar.AddAction(gi.ActOpts{Label: "Continue", Icon: "forward", Tooltip: "Advance the instruction screens.", UpdateFunc: func(act *gi.Action) {
		act.SetActiveStateUpdt(ss.IsRunning)
	}}, win.This(), func(recv, send ki.Ki, sig int64, data interface{}) {
		ss.gui.Bus.Post(task.ContinueKey)
	})

	tbar.AddSeparator("seedSep")

	tbar.AddAction(gi.ActOpts{Label: "New Seed", Icon: "new", Tooltip: "Generate a new random seed for the next Init.", UpdateFunc: func(act *gi.Action) {
		act.SetActiveStateUpdt(!ss.IsRunning)
	}}, win.This(), func(recv, send ki.Ki, sig int64, data interface{}) {
		ss.NewRndSeed()
	})

	vp.UpdateEndNoSig(updt)

	// main menu
	appnm := gi.AppName()
	mmen := win.MainMenu
	mmen.ConfigMenus([]string{appnm, "File", "Edit", "Window"})

	amen := win.MainMenu.ChildByName(appnm, 0).(*gi.Action)
	amen.Menu.AddAppMenu(win)

	emen := win.MainMenu.ChildByName("Edit", 1).(*gi.Action)
	emen.Menu.AddCopyCutPaste(win)

	win.SetCloseCleanFunc(func(w *gi.Window) {
		ss.gui.Bus.Close() // a closing window must not strand the session goroutine
		go gi.Quit()       // once main window is closed, quit
	})

	win.MainMenuUpdated()
	return win
}
