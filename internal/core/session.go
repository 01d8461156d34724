package core

import (
	"sync"

	"github.com/google/uuid"

	"github.com/Salonii101/TalkSphere/internal/domain"
)

type SessionID string

// Phase is the lifecycle state of one session.
type Phase int

const (
	PhaseConnected Phase = iota
	PhaseJoined
	PhaseClosed
)

// Session is the server-side state of one live connection: its
// transport, display name and room assignment. Name and room are
// populated exactly once, on the first valid join.
type Session struct {
	sid  SessionID
	conn SignalConnection

	mu     sync.Mutex
	phase  Phase
	name   string
	roomID domain.RoomID
}

func NewSession(sid SessionID, conn SignalConnection) *Session {
	if sid == "" {
		sid = SessionID(uuid.NewString())
	}
	return &Session{sid: sid, conn: conn}
}

func (s *Session) ID() SessionID          { return s.sid }
func (s *Session) Conn() SignalConnection { return s.conn }

// Join transitions CONNECTED -> JOINED and records the name and room.
// Returns false without mutating anything if the session already
// joined or closed; a second join is a defined no-op, not an error.
func (s *Session) Join(name string, roomID domain.RoomID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseConnected {
		return false
	}
	s.phase = PhaseJoined
	s.name = name
	s.roomID = roomID
	return true
}

// Joined reports the name and room populated by Join. ok is false
// while the session is unjoined and stays true after close so that
// teardown can still see where the session was registered.
func (s *Session) Joined() (name string, roomID domain.RoomID, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.name == "" && s.roomID == "" {
		return "", "", false
	}
	return s.name, s.roomID, true
}

func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// CloseOnce transitions to CLOSED. Only the first call returns true;
// teardown hangs off that so a close event firing twice never
// double-deregisters or double-notifies.
func (s *Session) CloseOnce() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseClosed {
		return false
	}
	s.phase = PhaseClosed
	return true
}
