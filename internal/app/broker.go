package app

import (
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Salonii101/TalkSphere/internal/core"
	"github.com/Salonii101/TalkSphere/internal/domain"
)

// Broker drives the relay protocol for every session: the join
// handshake, classification and fan-out of inbound events, and
// teardown on disconnect. It is the sole mutator of the registry.
//
// The protocol is deliberately tolerant: malformed payloads, unknown
// kinds and messages before join are dropped with a local log line,
// never answered with an error and never fatal to the connection.
type Broker struct {
	registry *Registry
}

func NewBroker(registry *Registry) *Broker {
	return &Broker{registry: registry}
}

// HandleFrame classifies one inbound payload from sess and relays it
// to the rest of the session's room.
func (b *Broker) HandleFrame(sess *core.Session, data core.Frame) {
	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		log.Warn().Err(err).Str("module", "app.broker").Str("sid", string(sess.ID())).Msg("bad json")
		return
	}

	if env.Type == "join" {
		b.handleJoin(sess, data)
		return
	}

	// Before join, only a join is meaningful.
	if sess.Phase() != core.PhaseJoined {
		log.Debug().Str("module", "app.broker").Str("sid", string(sess.ID())).Str("type", env.Type).Msg("dropped frame before join")
		return
	}

	switch env.Type {
	case "typing":
		b.handleTyping(sess, data)
	case "recording":
		b.handleRecording(sess, data)
	case "chat":
		b.handleChat(sess, data)
	default:
		log.Warn().Str("module", "app.broker").Str("type", env.Type).Msg("unknown kind")
	}
}

func (b *Broker) handleJoin(sess *core.Session, data core.Frame) {
	type joinPayload struct {
		Type   string `json:"type"`
		Name   string `json:"name"`
		Friend string `json:"friend"`
	}
	var p joinPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Err(err).Str("module", "app.broker").Str("sid", string(sess.ID())).Msg("bad join payload")
		return
	}

	// The room key derives from the raw (normalized) names; only the
	// display name falls back to the placeholder.
	roomID := domain.DeriveRoomID(p.Name, p.Friend)
	name := domain.DisplayName(p.Name)

	if !sess.Join(name, roomID) {
		log.Debug().Str("module", "app.broker").Str("sid", string(sess.ID())).Msg("duplicate join ignored")
		return
	}
	b.registry.Register(roomID, sess)
	log.Info().Str("module", "app.broker").Str("sid", string(sess.ID())).Str("room", string(roomID)).Str("user", name).Msg("join")

	b.relay(roomID, sess.ID(), systemEvent{Type: "system", Event: "join", User: name})
}

func (b *Broker) handleTyping(sess *core.Session, data core.Frame) {
	type typingPayload struct {
		Type     string `json:"type"`
		IsTyping bool   `json:"isTyping"`
	}
	var p typingPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Err(err).Str("module", "app.broker").Str("sid", string(sess.ID())).Msg("bad typing payload")
		return
	}
	name, roomID, _ := sess.Joined()
	b.relay(roomID, sess.ID(), typingEvent{Type: "typing", User: name, IsTyping: p.IsTyping})
}

func (b *Broker) handleRecording(sess *core.Session, data core.Frame) {
	type recordingPayload struct {
		Type      string `json:"type"`
		Recording bool   `json:"recording"`
	}
	var p recordingPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Err(err).Str("module", "app.broker").Str("sid", string(sess.ID())).Msg("bad recording payload")
		return
	}
	name, roomID, _ := sess.Joined()
	b.relay(roomID, sess.ID(), recordingEvent{Type: "recording", User: name, Recording: p.Recording})
}

func (b *Broker) handleChat(sess *core.Session, data core.Frame) {
	type chatPayload struct {
		Type        string          `json:"type"`
		Sub         string          `json:"sub"`
		Text        string          `json:"text"`
		Data        string          `json:"data"`
		DurationSec float64         `json:"durationSec"`
		Ts          json.RawMessage `json:"ts"`
	}
	var p chatPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Err(err).Str("module", "app.broker").Str("sid", string(sess.ID())).Msg("bad chat payload")
		return
	}

	name, roomID, _ := sess.Joined()
	ts := stampTs(p.Ts)

	switch p.Sub {
	case "text", "":
		b.relay(roomID, sess.ID(), chatTextEvent{Type: "chat", Sub: "text", User: name, Text: p.Text, Ts: ts})
	case "audio":
		b.relay(roomID, sess.ID(), chatAudioEvent{Type: "chat", Sub: "audio", User: name, Data: p.Data, DurationSec: p.DurationSec, Ts: ts})
	default:
		log.Warn().Str("module", "app.broker").Str("sub", p.Sub).Msg("unknown chat sub")
	}
}

// stampTs returns the client-supplied timestamp when it is a positive
// integer, otherwise the server receive time. An odd ts never costs
// the message itself.
func stampTs(raw json.RawMessage) int64 {
	var ts int64
	if err := json.Unmarshal(raw, &ts); err == nil && ts > 0 {
		return ts
	}
	return time.Now().UnixMilli()
}

// HandleClose tears the session down. Safe to call more than once;
// only the first close deregisters and notifies.
func (b *Broker) HandleClose(sess *core.Session) {
	if !sess.CloseOnce() {
		return
	}
	name, roomID, ok := sess.Joined()
	if !ok {
		log.Debug().Str("module", "app.broker").Str("sid", string(sess.ID())).Msg("unjoined session closed")
		return
	}

	b.registry.Deregister(roomID, sess)
	log.Info().Str("module", "app.broker").Str("sid", string(sess.ID())).Str("room", string(roomID)).Str("user", name).Msg("leave")

	// No-op when the departing session was the last member; the room
	// entry is already purged.
	b.relay(roomID, sess.ID(), systemEvent{Type: "system", Event: "leave", User: name})
}

func (b *Broker) relay(roomID domain.RoomID, from core.SessionID, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "app.broker").Msg("relay marshal")
		return
	}
	b.registry.Broadcast(roomID, data, from)
}
