package service

import (
	"context"
	"time"

	"github.com/slidetile/twenty48/game/engine"
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, seed int64) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	Move(ctx context.Context, sessionID, direction string) (*MoveOutcome, error)
	BulkMove(ctx context.Context, sessionID string, moves []string) (*BulkMoveOutcome, error)
	NewGame(ctx context.Context, sessionID string) (*engine.GameState, error)

	// Game State
	GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error)
	GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)
	Share(ctx context.Context, sessionID string) (*ShareInfo, error)
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, seed int64) (*Session, error)
	Get(id string) (*Session, error)
	GetOrCreate(id string, seed int64) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Count() int
}

// Session represents an active game session
type Session struct {
	ID             string
	Engine         *engine.GameEngine
	Seed           int64
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
