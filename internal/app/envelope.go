package app

// Outbound envelopes. The server stamps the authoritative sender name
// on every relayed event; a client-supplied identity is never
// forwarded.

type systemEvent struct {
	Type  string `json:"type"` // "system"
	Event string `json:"event"`
	User  string `json:"user"`
}

type typingEvent struct {
	Type     string `json:"type"` // "typing"
	User     string `json:"user"`
	IsTyping bool   `json:"isTyping"`
}

type recordingEvent struct {
	Type      string `json:"type"` // "recording"
	User      string `json:"user"`
	Recording bool   `json:"recording"`
}

type chatTextEvent struct {
	Type string `json:"type"` // "chat"
	Sub  string `json:"sub"`  // "text"
	User string `json:"user"`
	Text string `json:"text"`
	Ts   int64  `json:"ts"`
}

// chatAudioEvent carries the encoded audio string through untouched.
// The server does not validate or decode the blob.
type chatAudioEvent struct {
	Type        string  `json:"type"` // "chat"
	Sub         string  `json:"sub"`  // "audio"
	User        string  `json:"user"`
	Data        string  `json:"data"`
	DurationSec float64 `json:"durationSec"`
	Ts          int64   `json:"ts"`
}
