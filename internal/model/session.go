package model

import "time"

// Session is the conversational state shared by a sequence of requests
// bearing the same key.
type Session struct {
	Key       string
	Messages  []Message
	Documents []DocumentUnit
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Clone returns a deep copy so callers never alias store-owned slices.
func (s Session) Clone() Session {
	cp := s
	cp.Messages = append([]Message(nil), s.Messages...)
	cp.Documents = append([]DocumentUnit(nil), s.Documents...)
	return cp
}
