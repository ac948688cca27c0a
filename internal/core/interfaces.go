package core

// Frame is a raw JSON payload ready to be written to a client.
type Frame []byte

// ConnID identifies one live client connection. It is opaque and unique
// per connection, not per user; the same user may hold several.
type ConnID string

// ClientConn abstracts a client messaging transport.
// Owned by the adapter; the adapter must Close() it.
type ClientConn interface {
	TrySend(Frame) error
	Close()
}
