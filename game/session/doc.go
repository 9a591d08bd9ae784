// Package session provides in-memory session management for Twenty48.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique session ID generation
//   - Session lifecycle management
//   - Session cleanup and expiration
//
// Core Types:
//
// Manager is the main session manager that handles all session operations.
// Each session wraps its own game engine instance plus metadata like the
// creation time, last access time and the RNG seed that makes the game
// reproducible.
//
// Session Identifiers:
//
// Sessions use 4-character hex IDs for easy reference. The manager ensures
// IDs are unique and generates them from cryptographic randomness. Lookup
// is case-insensitive.
//
// Concurrency:
//
// The session manager is thread-safe and supports concurrent operations.
// Multiple goroutines can safely create, retrieve, and modify different
// sessions simultaneously. Internal locking ensures data consistency.
//
// Lifetime:
//
// Sessions live in memory only and vanish when the process exits; there is
// no on-disk persistence. Idle sessions can be reaped with
// CleanupExpiredSessions.
package session
