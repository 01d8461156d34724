package app

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/Salonii101/TalkSphere/internal/core"
	"github.com/Salonii101/TalkSphere/internal/domain"
)

// Registry is the process-wide map of live rooms. Entries are created
// lazily on the first register and removed the moment they empty;
// purge-on-empty is the only cleanup mechanism, rooms are never paged
// or TTL'd.
//
// All mutation goes through Register/Deregister. Each connection runs
// its own goroutine pair, so the map sits behind an explicit RWMutex.
type Registry struct {
	mu    sync.RWMutex
	rooms map[domain.RoomID]*core.Room
}

func NewRegistry() *Registry {
	return &Registry{rooms: make(map[domain.RoomID]*core.Room)}
}

// Register adds sess to the room's member set, creating the room if
// absent. Silent no-op when the session is already a member.
func (r *Registry) Register(roomID domain.RoomID, sess *core.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[roomID]
	if !ok {
		room = core.NewRoom(roomID)
		r.rooms[roomID] = room
		log.Info().Str("module", "app.registry").Str("room", string(roomID)).Msg("room created")
	}
	room.AddMember(sess)
}

// Deregister removes sess from the room and purges the entry
// immediately when the set empties. No-op on unknown rooms.
func (r *Registry) Deregister(roomID domain.RoomID, sess *core.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[roomID]
	if !ok {
		return
	}
	room.RemoveMember(sess.ID())
	if room.MemberCount() == 0 {
		delete(r.rooms, roomID)
		log.Info().Str("module", "app.registry").Str("room", string(roomID)).Msg("room purged")
	}
}

// Broadcast fans data out to every member of the room except the
// excluded session. Best-effort; a missing room delivers to nobody.
func (r *Registry) Broadcast(roomID domain.RoomID, data core.Frame, except core.SessionID) core.DeliveryResult {
	r.mu.RLock()
	room, ok := r.rooms[roomID]
	r.mu.RUnlock()
	if !ok {
		return core.DeliveryResult{}
	}
	return room.Broadcast(except, data)
}

// Members returns a snapshot of the room's sessions, empty for
// unknown rooms.
func (r *Registry) Members(roomID domain.RoomID) []*core.Session {
	r.mu.RLock()
	room, ok := r.rooms[roomID]
	r.mu.RUnlock()
	if !ok {
		return nil
	}
	return room.Members()
}

func (r *Registry) RoomCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}

// RoomStat is a read-only view for the stats API (no chat content,
// no transport fields).
type RoomStat struct {
	Room    domain.RoomID `json:"room"`
	Members int           `json:"members"`
}

func (r *Registry) Stats() []RoomStat {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]RoomStat, 0, len(r.rooms))
	for id, room := range r.rooms {
		out = append(out, RoomStat{Room: id, Members: room.MemberCount()})
	}
	return out
}
