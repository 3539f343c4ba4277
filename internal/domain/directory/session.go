package directory

import "errors"

type SessionMode int

const (
	SessionClosed SessionMode = iota
	SessionCreate
	SessionEdit
)

var ErrSessionClosed = errors.New("no edit session is open")

// EditSession tracks the form workflow: closed, creating a new record, or
// editing an existing one. The draft survives a failed submit so the user
// can correct and resubmit; success or cancel closes the session.
type EditSession struct {
	mode     SessionMode
	targetID int64
	draft    Draft
}

func (s *EditSession) Mode() SessionMode { return s.mode }

func (s *EditSession) Open() bool { return s.mode != SessionClosed }

// TargetID returns the id being edited; the second result is false in
// create mode.
func (s *EditSession) TargetID() (int64, bool) {
	return s.targetID, s.mode == SessionEdit
}

func (s *EditSession) Draft() Draft { return s.draft }

func (s *EditSession) SetDraft(d Draft) { s.draft = d }

// OpenCreate starts a create session with a defaulted draft.
func (s *EditSession) OpenCreate() {
	s.mode = SessionCreate
	s.targetID = 0
	s.draft = NewDraft()
}

// OpenEdit starts an edit session prefilled from the record's editable
// fields.
func (s *EditSession) OpenEdit(emp Employee) {
	s.mode = SessionEdit
	s.targetID = emp.ID
	s.draft = DraftOf(emp)
}

func (s *EditSession) Cancel() {
	*s = EditSession{}
}

// Close ends the session after a successful submit.
func (s *EditSession) Close() {
	*s = EditSession{}
}
