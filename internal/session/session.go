// Package session owns the client-side record of which project, if any,
// is currently targeted for screenshot generation. The target is mutated
// only through the transitions defined here; no other component touches it.
package session

import (
	"errors"

	"github.com/snapsite/snapsite/pkg/models"
)

// State is the generation session's position in its lifecycle.
type State int

const (
	// StateIdle means no project is targeted.
	StateIdle State = iota
	// StateTargeted means a project is targeted and the device picker
	// is open.
	StateTargeted
	// StateSubmitting means a generation call is outstanding.
	StateSubmitting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateTargeted:
		return "targeted"
	case StateSubmitting:
		return "submitting"
	}
	return "unknown"
}

var (
	// ErrNoDevices rejects a confirm with an empty device selection. The
	// session stays Targeted so the picker remains open.
	ErrNoDevices = errors.New("select at least one device")
	// ErrNoTarget rejects a confirm when no project is targeted.
	ErrNoTarget = errors.New("no project targeted for generation")
)

// Session is the single-slot generation tracker. At most one generation
// request is in flight at a time; a second submission requires the user
// to re-target a project after the current one resolves.
type Session struct {
	state    State
	targetID int
	selected map[models.Device]bool
}

// New returns an idle session with nothing selected.
func New() *Session {
	return &Session{selected: make(map[models.Device]bool)}
}

// State reports the current lifecycle position.
func (s *Session) State() State { return s.state }

// Submitting reports whether a generation call is outstanding.
func (s *Session) Submitting() bool { return s.state == StateSubmitting }

// TargetID returns the targeted project id, if any.
func (s *Session) TargetID() (int, bool) {
	if s.state == StateIdle {
		return 0, false
	}
	return s.targetID, true
}

// Target records projectID as the generation target and moves to
// Targeted. While a submission is outstanding the call is ignored; the
// in-flight target cannot be replaced.
func (s *Session) Target(projectID int) bool {
	if s.state == StateSubmitting {
		return false
	}
	s.state = StateTargeted
	s.targetID = projectID
	s.selected = make(map[models.Device]bool)
	return true
}

// Toggle flips one device in the selection. Only meaningful while
// Targeted.
func (s *Session) Toggle(d models.Device) {
	if s.state != StateTargeted {
		return
	}
	s.selected[d] = !s.selected[d]
}

// Selected reports whether a device is part of the current selection.
func (s *Session) Selected(d models.Device) bool { return s.selected[d] }

// Devices returns the selected devices in display order.
func (s *Session) Devices() []models.Device {
	var out []models.Device
	for _, d := range models.AllDevices() {
		if s.selected[d] {
			out = append(out, d)
		}
	}
	return out
}

// Confirm moves Targeted to Submitting and hands back the request pair.
// An empty selection is rejected and the session stays Targeted. A
// confirm while already Submitting is not a defined input and is
// rejected the same way a missing target is.
func (s *Session) Confirm() (projectID int, devices []models.Device, err error) {
	if s.state != StateTargeted {
		return 0, nil, ErrNoTarget
	}
	devices = s.Devices()
	if len(devices) == 0 {
		return 0, nil, ErrNoDevices
	}
	s.state = StateSubmitting
	return s.targetID, devices, nil
}

// Resolve returns the session to Idle once the outstanding call has
// completed, success or failure alike. The target is always cleared.
func (s *Session) Resolve() {
	s.state = StateIdle
	s.targetID = 0
	s.selected = make(map[models.Device]bool)
}

// Cancel abandons a Targeted session without submitting. Submitting
// sessions cannot be cancelled; the call must resolve first.
func (s *Session) Cancel() {
	if s.state != StateTargeted {
		return
	}
	s.Resolve()
}
