// internal/handlers/ws_codes.go
package handlers

// Custom WebSocket close codes used by the queue notification feed.
const (
	BadSubprotocolError = 3000 // Client connected with an unsupported subprotocol.
	UnknownProfileError = 3003 // Profile id in the WS URL was never registered.
)
