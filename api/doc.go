// Package api provides the HTTP REST surface of the Twenty48 server.
//
// The api package implements:
//   - RESTful endpoints for session management and game operations
//   - Move submission, single and bulk
//   - Paginated move history
//   - Score sharing payloads
//   - WebSocket upgrade handling for live board viewers
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create new session (optional seed)
//   - GET /api/sessions - List all sessions (sort, order, limit)
//   - GET /api/sessions/{id} - Get specific session
//   - DELETE /api/sessions/{id} - Delete session
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Current board snapshot
//   - POST /api/sessions/{id}/move - Slide the board in one direction
//   - POST /api/sessions/{id}/bulk-move - Submit a batch of directions
//   - POST /api/sessions/{id}/new-game - Restart the session's game
//   - GET /api/sessions/{id}/history - Move history with pagination
//   - GET /api/sessions/{id}/share - Read-only score share payload
//
// Other:
//   - GET /api/health - Liveness probe
//   - GET /ws?session={id} - WebSocket upgrade for live state updates
//
// Request/Response Format:
//
// All endpoints accept and return JSON. Directions are the strings
// "up", "down", "left", "right", matched case-insensitively.
//
//	POST /api/sessions          {"seed": 42}            // seed optional
//	POST .../move               {"direction": "left"}
//	POST .../bulk-move          {"moves": ["left", "up", "left"]}
//
// A rejected move (the slide changes nothing) is a 200 response with
// success=false, not an error. Invalid direction strings are 400s.
//
// Error Handling:
//
// Errors are returned as JSON with appropriate HTTP status codes:
//
//	{
//	  "error": "error message"
//	}
//
// Unknown session IDs map to 404, malformed input to 400.
package api
