// Package ws is the transport edge: the websocket upgrade endpoint, one
// read/write pump pair per connection, and the hub that the game core
// emits through. Nothing in here knows game rules; frames are opaque
// JSON envelopes.
package ws

// Message is the wire envelope for both directions.
type Message[T any] struct {
	Type string `json:"type"`
	Data T      `json:"data"`
}
