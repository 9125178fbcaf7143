// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package task

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
	"github.com/goki/gi/gi"
	"github.com/nithit136/vwm-semantic-related/design"
)

// Participant is the metadata collected at intake.
type Participant struct {
	ID  string `desc:"participant identifier"`
	Age int    `desc:"age in years"`
}

// Results is the append-only accumulator for one session: the
// participant plus one record per completed trial.  Completed is set
// only when the full schedule ran; an aborted session is never
// export-eligible.
type Results struct {
	Participant Participant   `desc:"participant metadata"`
	Trials      []TrialRecord `view:"-" desc:"one record per completed trial, in order"`
	Completed   bool          `inactive:"+" desc:"whether the full schedule ran to the end"`
}

// Append adds one finished trial record.  Prior records are never
// touched.
func (rs *Results) Append(tr TrialRecord) {
	rs.Trials = append(rs.Trials, tr)
}

// NumTrials returns the number of accumulated records.
func (rs *Results) NumTrials() int { return len(rs.Trials) }

// PctCorrect returns percent correct object-and-state and percent
// correct object (category) over all accumulated trials.
func (rs *Results) PctCorrect() (ans, cat float64) {
	if len(rs.Trials) == 0 {
		return 0, 0
	}
	for _, tr := range rs.Trials {
		ans += float64(tr.CorrectAns)
		cat += float64(tr.CorrectCat)
	}
	n := float64(len(rs.Trials))
	return 100 * ans / n, 100 * cat / n
}

// LogPrec is precision for saving float values in logs
const LogPrec = 4

// LogSchema is the schema of the per-trial log table.
func LogSchema() etable.Schema {
	return etable.Schema{
		{"Trial", etensor.INT64, nil, nil},
		{"Condition", etensor.STRING, nil, nil},
		{"SetSize", etensor.INT64, nil, nil},
		{"EncTime", etensor.FLOAT64, nil, nil},
		{"Context", etensor.STRING, nil, nil},
		{"Category", etensor.STRING, nil, nil},
		{"BucketID", etensor.INT64, nil, nil},
		{"Obj", etensor.STRING, nil, nil},
		{"State", etensor.STRING, nil, nil},
		{"StimLoc", etensor.STRING, nil, nil},
		{"AFCCat", etensor.STRING, nil, nil},
		{"AFCStim", etensor.STRING, nil, nil},
		{"AFCLoc", etensor.STRING, nil, nil},
		{"Response", etensor.STRING, nil, nil},
		{"RT", etensor.FLOAT64, nil, nil},
		{"CorrectAns", etensor.FLOAT64, nil, nil},
		{"CorrectCat", etensor.FLOAT64, nil, nil},
	}
}

// ConfigLogTable sets up a table with the per-trial log schema.
func ConfigLogTable(dt *etable.Table) {
	dt.SetMetaData("name", "TrialLog")
	dt.SetMetaData("desc", "per-trial task results")
	dt.SetMetaData("read-only", "true")
	dt.SetMetaData("precision", fmt.Sprintf("%d", LogPrec))
	dt.SetFromSchema(LogSchema(), 0)
}

// WriteLogRow writes one trial record to the given row of a log table,
// with sequence-valued fields space-joined.  The table must already
// have at least row+1 rows.
func WriteLogRow(dt *etable.Table, row int, tr TrialRecord) {
	dt.SetCellFloat("Trial", row, float64(tr.Trial))
	dt.SetCellString("Condition", row, tr.Cond.String())
	dt.SetCellFloat("SetSize", row, float64(tr.Cond.Size))
	dt.SetCellFloat("EncTime", row, tr.Cond.EncTime.Seconds())
	dt.SetCellString("Context", row, tr.Cond.Ctx.String())
	dt.SetCellString("Category", row, string(tr.Cond.Cat))
	dt.SetCellFloat("BucketID", row, float64(tr.ID))
	dt.SetCellString("Obj", row, strings.Join(tr.Assign.Stims, " "))
	dt.SetCellString("State", row, joinStates(tr.Assign.States))
	dt.SetCellString("StimLoc", row, joinInts(tr.StimLoc))
	dt.SetCellString("AFCCat", row, fmt.Sprintf("%s %s", tr.Assign.AFCCat[0], tr.Assign.AFCCat[1]))
	dt.SetCellString("AFCStim", row, fmt.Sprintf("%s %s", tr.Assign.AFCStim[0], tr.Assign.AFCStim[1]))
	dt.SetCellString("AFCLoc", row, joinKinds(tr.AFCLoc))
	dt.SetCellString("Response", row, tr.Response)
	dt.SetCellFloat("RT", row, float64(tr.RT.Milliseconds()))
	dt.SetCellFloat("CorrectAns", row, float64(tr.CorrectAns))
	dt.SetCellFloat("CorrectCat", row, float64(tr.CorrectCat))
}

// Table renders the accumulated records as an etable, one row per
// trial.
func (rs *Results) Table() *etable.Table {
	dt := &etable.Table{}
	ConfigLogTable(dt)
	dt.SetNumRows(len(rs.Trials))
	for row, tr := range rs.Trials {
		WriteLogRow(dt, row, tr)
	}
	return dt
}

// SaveCSV writes the trial table in comma-separated form.
func (rs *Results) SaveCSV(fname string) error {
	return rs.Table().SaveCSV(gi.FileName(fname), etable.Comma, etable.Headers)
}

// Payload is the export structure handed to persistence: participant
// metadata plus per-field sequences indexed by completed-trial number.
type Payload struct {
	Participant struct {
		ID  string `json:"id"`
		Age int    `json:"age"`
	} `json:"participant"`
	Task TaskFields `json:"task"`
}

// TaskFields holds the per-trial sequences of the export payload; all
// fields have the same length.
type TaskFields struct {
	Trial        []int      `json:"trial"`
	Condition    []string   `json:"condition"`
	SetSize      []int      `json:"set_size"`
	EncodingTime []float64  `json:"encoding_time"`
	Context      []string   `json:"context"`
	Category     []string   `json:"category"`
	ID           []int      `json:"id"`
	Obj          [][]string `json:"obj"`
	State        [][]string `json:"state"`
	StimulusLoc  [][]int    `json:"stimulus_loc"`
	AFCCat       [][]string `json:"afc_cat"`
	AFCStim      [][]string `json:"afc_stim"`
	AFCLoc       [][]string `json:"afc_loc"`
	Response     []string   `json:"response"`
	RT           []float64  `json:"rt"`
	CorrectAns   []int      `json:"correct_ans"`
	CorrectCat   []int      `json:"correct_cat"`
}

// Payload builds the export payload.  It errors unless the session ran
// to completion: aborted sessions skip export entirely.
func (rs *Results) Payload() (*Payload, error) {
	if !rs.Completed {
		return nil, fmt.Errorf("task: session did not complete -- no export payload")
	}
	pl := &Payload{}
	pl.Participant.ID = rs.Participant.ID
	pl.Participant.Age = rs.Participant.Age
	tk := &pl.Task
	for _, tr := range rs.Trials {
		tk.Trial = append(tk.Trial, tr.Trial)
		tk.Condition = append(tk.Condition, tr.Cond.String())
		tk.SetSize = append(tk.SetSize, int(tr.Cond.Size))
		tk.EncodingTime = append(tk.EncodingTime, tr.Cond.EncTime.Seconds())
		tk.Context = append(tk.Context, tr.Cond.Ctx.String())
		tk.Category = append(tk.Category, string(tr.Cond.Cat))
		tk.ID = append(tk.ID, tr.ID)
		tk.Obj = append(tk.Obj, append([]string{}, tr.Assign.Stims...))
		sts := make([]string, len(tr.Assign.States))
		for i, st := range tr.Assign.States {
			sts[i] = st.String()
		}
		tk.State = append(tk.State, sts)
		tk.StimulusLoc = append(tk.StimulusLoc, append([]int{}, tr.StimLoc...))
		tk.AFCCat = append(tk.AFCCat, []string{string(tr.Assign.AFCCat[0]), string(tr.Assign.AFCCat[1])})
		tk.AFCStim = append(tk.AFCStim, []string{tr.Assign.AFCStim[0], tr.Assign.AFCStim[1]})
		locs := make([]string, len(tr.AFCLoc))
		for i, ak := range tr.AFCLoc {
			locs[i] = ak.String()
		}
		tk.AFCLoc = append(tk.AFCLoc, locs)
		tk.Response = append(tk.Response, tr.Response)
		tk.RT = append(tk.RT, float64(tr.RT.Milliseconds()))
		tk.CorrectAns = append(tk.CorrectAns, tr.CorrectAns)
		tk.CorrectCat = append(tk.CorrectCat, tr.CorrectCat)
	}
	return pl, nil
}

// SaveJSON writes the export payload to the given file.
func (rs *Results) SaveJSON(fname string) error {
	pl, err := rs.Payload()
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(pl, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(fname, b, 0644)
}

func joinInts(xs []int) string {
	ss := make([]string, len(xs))
	for i, x := range xs {
		ss[i] = fmt.Sprintf("%d", x)
	}
	return strings.Join(ss, " ")
}

func joinStates(xs []design.BinaryState) string {
	ss := make([]string, len(xs))
	for i, x := range xs {
		ss[i] = x.String()
	}
	return strings.Join(ss, " ")
}

func joinKinds(xs []AltKind) string {
	ss := make([]string, len(xs))
	for i, x := range xs {
		ss[i] = x.String()
	}
	return strings.Join(ss, " ")
}
