package core

// Frame is a single encoded wire payload.
type Frame []byte

// SignalConnection abstracts the messaging transport of one client.
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}

// DeliveryResult reports the fan-out outcome of one broadcast.
// Dropped counts members whose connection was not in a deliverable
// state; those sends are never queued or retried.
type DeliveryResult struct {
	Sent    int
	Dropped int
}
