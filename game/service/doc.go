// Package service provides the business logic layer for Twenty48.
//
// The service package implements:
//   - Multi-session game management
//   - Direction parsing at the wire boundary
//   - Move and bulk-move processing with event extraction
//   - Paginated move history
//   - Score sharing
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game
// operations. SessionManager handles session creation, retrieval, and
// lifecycle.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP)
// and the game engine, providing session isolation and orchestration. Each
// session maintains its own game engine instance with independent state and
// its own deterministic RNG seed. Direction strings from the wire are
// parsed here; below this layer only the closed Direction enumeration
// exists.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	gameService := service.NewGameService(sessionMgr)
//
//	// Create a new session (seed 0 means pick one at random)
//	sessionInfo, err := gameService.CreateSession(ctx, 0)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Execute moves
//	outcome, err := gameService.Move(ctx, sessionInfo.ID, "up")
//
// Session Management:
//
// Sessions are identified by unique 4-character IDs and maintain
// independent game state. Multiple sessions can run concurrently. Sessions
// track creation time, last access time, and move history for analytics
// and debugging.
package service
