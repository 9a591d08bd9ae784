// Package mcp provides the Model Context Protocol surface of the Twenty48 server.
//
// The mcp package implements:
//   - MCP server for AI agent integration
//   - Tool definitions for game operations
//   - Session-aware command execution
//   - Stdio and HTTP transport modes
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - board: Get current game state with an ASCII board rendering
//   - move: Slide the board in one direction
//   - bulk_move: Execute multiple slides in sequence
//   - new_game: Restart the board, keeping session history
//   - move_history: Retrieve move history with pagination
//   - new_session: Create a new game session, optionally seeded
//   - get_session: Get specific session details
//   - list_sessions: List all active sessions
//   - share_score: Get a shareable score summary
//   - game_instructions: Rules and strategy notes
//
// The client is a thin proxy: every tool call translates into a REST call
// against a running Twenty48 API server and reformats the response for
// text consumption. Empty cells render as "." so fixed-width boards stay
// readable in plain text.
//
// Transport Modes:
//
// The server supports two transport modes:
//   - Stdio: Direct stdio communication for local MCP clients
//   - HTTP: mounted at /mcp on the API server for remote integration
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
//
// AI Integration:
//
// The MCP interface enables AI agents to:
//   - Autonomously play the game
//   - Develop and test merge strategies
//   - Manage multiple concurrent sessions
//   - Learn from move history
package mcp
