package sway

import (
	"encoding/json"
	"fmt"
)

// tickStep represents a single action in a tick script.
type tickStep struct {
	Action string  `json:"action"`
	DT     float64 `json:"dt,omitempty"`
	Scale  float64 `json:"scale,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// tickScript is the top-level JSON structure for a tick script.
type tickScript struct {
	Steps []tickStep `json:"steps"`
}

// TickRunner replays a scripted sequence of ticks against a ManualLoop, so a
// run of tweens can be reproduced exactly:
//
//	{"steps": [
//		{"action": "tick", "dt": 0.016, "frames": 60},
//		{"action": "timescale", "scale": 0.5},
//		{"action": "fixed", "dt": 0.02},
//		{"action": "wait", "frames": 3},
//		{"action": "quit"}
//	]}
//
// "wait" ticks with the delta of the last "tick" step.
type TickRunner struct {
	steps  []tickStep
	cursor int
	lastDT float64
	done   bool
}

// LoadTickScript parses a JSON tick script.
func LoadTickScript(jsonData []byte) (*TickRunner, error) {
	var script tickScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse tick script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse tick script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "tick", "fixed", "timescale", "wait", "kill", "quit":
		default:
			return nil, fmt.Errorf("parse tick script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TickRunner{steps: script.Steps}, nil
}

// Done reports whether all steps have been executed.
func (r *TickRunner) Done() bool {
	return r.done
}

// Step executes the next step against l and reports whether one was run.
func (r *TickRunner) Step(l *ManualLoop) bool {
	if r.done {
		return false
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return false
	}
	st := r.steps[r.cursor]
	r.cursor++

	frames := max(1, st.Frames)
	switch st.Action {
	case "tick":
		r.lastDT = st.DT
		for range frames {
			l.Tick(st.DT)
		}
	case "fixed":
		for range frames {
			l.FixedTick(st.DT)
		}
	case "timescale":
		l.SetTimeScale(st.Scale)
	case "wait":
		for range frames {
			l.Tick(r.lastDT)
		}
	case "kill":
		l.Kill()
	case "quit":
		l.Quit()
	}

	if r.cursor >= len(r.steps) {
		r.done = true
	}
	return true
}

// Run executes every remaining step against l.
func (r *TickRunner) Run(l *ManualLoop) {
	for r.Step(l) {
	}
}
