// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package task

import (
	"sync"
	"time"

	"github.com/goki/mat32"
	"github.com/nithit136/vwm-semantic-related/design"
)

// RespKeys are the four response keys, mapped 1:1 to the four choice
// slots in left-to-right order.
var RespKeys = [4]string{"d", "f", "j", "k"}

// AbortKey cancels the run; it is honored only while awaiting a choice
// response.
const AbortKey = "Escape"

// ContinueKey advances instruction screens.
const ContinueKey = "Spacebar"

// StimView is one image placement in the encoding display.
type StimView struct {
	Cat   design.Category    `desc:"category of the image"`
	Obj   string             `desc:"object identifier"`
	State design.BinaryState `desc:"which image variant"`
	Slot  int                `desc:"layout slot index"`
	Pos   mat32.Vec2         `desc:"slot center in normalized display coordinates"`
	Path  string             `desc:"asset path for the image"`
}

// ChoiceView is one alternative in the 4AFC display.
type ChoiceView struct {
	Kind  AltKind            `desc:"which alternative this is"`
	Cat   design.Category    `desc:"category of the image"`
	Obj   string             `desc:"object identifier"`
	State design.BinaryState `desc:"which image variant"`
	Slot  int                `desc:"display slot 0..3, left to right"`
	Key   string             `desc:"response key bound to this slot"`
	Path  string             `desc:"asset path for the image"`
}

// Host is the display and input surface the session runs against.
// All methods are called from the single session goroutine and must
// block for their stated duration; the session never overlaps calls.
type Host interface {
	// ShowFixation displays the neutral central marker.
	ShowFixation()

	// ShowStimuli displays the encoding array at the given slots.
	ShowStimuli(stims []StimView)

	// ShowChoice displays the four alternatives.
	ShowChoice(alts []ChoiceView)

	// ShowImage displays a full-screen image (instruction screens).
	ShowImage(path string)

	// Wait blocks for the given fixed duration.  Not cancelable.
	Wait(d time.Duration)

	// AwaitKey blocks until one of the allowed keys is pressed and
	// returns it.  Keys outside the allowed set are ignored.
	AwaitKey(allowed []string) string
}

// KeyBus carries keypresses from an event-driven front end to the
// blocking AwaitKey calls of the session goroutine.  Keys that arrive
// while nothing is waiting, or that are not in the allowed set, are
// discarded.
type KeyBus struct {
	mu      sync.Mutex
	cond    *sync.Cond
	pending []string
	closed  bool
}

func NewKeyBus() *KeyBus {
	kb := &KeyBus{}
	kb.cond = sync.NewCond(&kb.mu)
	return kb
}

// Post delivers one keypress from the front end event loop.
func (kb *KeyBus) Post(key string) {
	kb.mu.Lock()
	defer kb.mu.Unlock()
	if kb.closed {
		return
	}
	kb.pending = append(kb.pending, key)
	kb.cond.Broadcast()
}

// Close wakes any waiter with the abort key, so a closing window
// cannot strand the session goroutine.
func (kb *KeyBus) Close() {
	kb.mu.Lock()
	defer kb.mu.Unlock()
	kb.closed = true
	kb.cond.Broadcast()
}

// Await blocks until a key in the allowed set arrives, discarding any
// others.  Returns AbortKey if the bus is closed.
func (kb *KeyBus) Await(allowed []string) string {
	kb.mu.Lock()
	defer kb.mu.Unlock()
	for {
		for len(kb.pending) > 0 {
			key := kb.pending[0]
			kb.pending = kb.pending[1:]
			for _, ak := range allowed {
				if key == ak {
					return key
				}
			}
			// not in the allowed set: ignored, no transition
		}
		if kb.closed {
			return AbortKey
		}
		kb.cond.Wait()
	}
}

// AutoHost is a scripted host for nogui runs and tests: it displays
// nothing and answers AwaitKey immediately, from Script if non-empty,
// otherwise with the first allowed key.
type AutoHost struct {
	Script    []string      `desc:"queued responses, consumed front to back"`
	Delay     time.Duration `desc:"artificial wait inserted before each response"`
	Fixations int           `inactive:"+" desc:"number of fixation displays shown"`
	Encodes   int           `inactive:"+" desc:"number of encoding displays shown"`
	Choices   int           `inactive:"+" desc:"number of choice displays shown"`
	Images    []string      `view:"-" desc:"full-screen images shown, in order"`
	LastStims []StimView    `view:"-" desc:"most recent encoding display"`
	LastAlts  []ChoiceView  `view:"-" desc:"most recent choice display"`
}

func (ah *AutoHost) ShowFixation() { ah.Fixations++ }

func (ah *AutoHost) ShowStimuli(stims []StimView) {
	ah.Encodes++
	ah.LastStims = stims
}

func (ah *AutoHost) ShowChoice(alts []ChoiceView) {
	ah.Choices++
	ah.LastAlts = alts
}

func (ah *AutoHost) ShowImage(path string) {
	ah.Images = append(ah.Images, path)
}

func (ah *AutoHost) Wait(d time.Duration) {
	// elapses instantly: scripted runs are not wall-clock timed
}

func (ah *AutoHost) AwaitKey(allowed []string) string {
	if ah.Delay > 0 {
		time.Sleep(ah.Delay)
	}
	if len(ah.Script) > 0 {
		key := ah.Script[0]
		ah.Script = ah.Script[1:]
		return key
	}
	return allowed[0]
}

// Compile-time check
var _ Host = (*AutoHost)(nil)
