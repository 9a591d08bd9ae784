// Package websocket provides the live board feed for Twenty48.
//
// The websocket package implements:
//   - Session-aware WebSocket connections
//   - Full-snapshot broadcasting after every move attempt
//   - Connection lifecycle management with ping/pong keepalive
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each client connection is handled by a pair of
// dedicated goroutines that manage reading, writing, and cleanup.
//
// Message Protocol:
//
// Viewers are read-only. The server pushes JSON envelopes:
//
//	{
//	  "session_id": "a1b2",
//	  "game_state": { "grid": [[...]], "score": 1234, "won": false, "over": false, ... },
//	  "event": "state_update"
//	}
//
// A snapshot is broadcast after every accepted or rejected move, so a
// viewer never needs to diff: it simply redraws from game_state. Custom
// events ("won", "game_over", "new_game") travel in the same envelope with
// game_state omitted.
//
// Session Integration:
//
// Clients specify their session ID via query parameter (?session=a1b2)
// when establishing the connection. State updates are broadcast only to
// clients watching the same session.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	// inside an HTTP handler, after validating the session:
//	hub.ServeWS(w, r, sessionID)
//
//	// after each turn:
//	hub.BroadcastToSession(sessionID, state)
//
// Concurrency:
//
// The hub event loop serializes registration, unregistration, and fan-out.
// Multiple viewers can connect, disconnect, and receive snapshots
// simultaneously without blocking each other; a viewer that stops reading
// is dropped rather than allowed to stall the hub.
package websocket
