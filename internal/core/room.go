package core

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/Salonii101/TalkSphere/internal/domain"
)

// Room is a threadsafe in-memory member set for one conversation.
// It never closes adapter-owned resources.
type Room struct {
	id    domain.RoomID
	mu    sync.RWMutex
	bySID map[SessionID]*Session
}

func NewRoom(id domain.RoomID) *Room {
	return &Room{
		id:    id,
		bySID: make(map[SessionID]*Session),
	}
}

func (r *Room) ID() domain.RoomID { return r.id }

func (r *Room) MemberCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.bySID)
}

// AddMember inserts a session. Returns false if it was already a
// member, which makes a malformed double-register a no-op.
func (r *Room) AddMember(s *Session) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bySID[s.ID()]; ok {
		return false
	}
	r.bySID[s.ID()] = s
	log.Debug().Str("module", "core.room").Str("room", string(r.id)).Str("sid", string(s.ID())).Msg("member added")
	return true
}

// RemoveMember deletes a session. Returns false if it was not present.
func (r *Room) RemoveMember(sid SessionID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bySID[sid]; !ok {
		return false
	}
	delete(r.bySID, sid)
	log.Debug().Str("module", "core.room").Str("room", string(r.id)).Str("sid", string(sid)).Msg("member removed")
	return true
}

// Members returns a point-in-time snapshot safe to iterate while
// other goroutines mutate the set.
func (r *Room) Members() []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Session, 0, len(r.bySID))
	for _, s := range r.bySID {
		out = append(out, s)
	}
	return out
}

// Broadcast fans data out to every member except from. Delivery is
// best-effort: a member whose connection refuses the frame is counted
// as dropped and skipped, never retried, and never delays the rest of
// the room.
func (r *Room) Broadcast(from SessionID, data Frame) DeliveryResult {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res := DeliveryResult{}
	for sid, s := range r.bySID {
		if sid == from {
			continue
		}
		if err := s.Conn().TrySend(data); err != nil {
			res.Dropped++
			continue
		}
		res.Sent++
	}
	log.Debug().Str("module", "core.room").Str("room", string(r.id)).Str("from", string(from)).Int("sent", res.Sent).Int("dropped", res.Dropped).Msg("broadcast result")
	return res
}
