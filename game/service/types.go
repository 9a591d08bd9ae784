package service

import (
	"time"

	"github.com/slidetile/twenty48/game/engine"
)

// SessionInfo provides information about a game session. Seed is the value
// that reproduces the whole game when fed back into CreateSession.
type SessionInfo struct {
	ID             string            `json:"id"`
	Seed           int64             `json:"seed"`
	CreatedAt      time.Time         `json:"created_at"`
	LastAccessedAt time.Time         `json:"last_accessed_at"`
	GameState      *engine.GameState `json:"game_state"`
}

// MoveOutcome contains the result of a single move operation. Success false
// means the slide changed nothing and was rejected as a no-op, which is a
// normal outcome rather than an error.
type MoveOutcome struct {
	Success    bool                  `json:"success"`
	Direction  string                `json:"direction"`
	ScoreDelta int                   `json:"score_delta"`
	Spawned    *engine.TilePlacement `json:"spawned,omitempty"`
	GameState  *engine.GameState     `json:"game_state"`
	Message    string                `json:"message"`
	Events     []GameEvent           `json:"events,omitempty"`
}

// BulkMoveOutcome contains the result of multiple moves
type BulkMoveOutcome struct {
	// Summary
	RequestedMoves int  `json:"requested_moves"`
	MovesExecuted  int  `json:"moves_executed"`
	MovesRejected  int  `json:"moves_rejected"`
	ScoreDelta     int  `json:"score_delta"`
	Truncated      bool `json:"truncated,omitempty"`
	Limit          int  `json:"limit,omitempty"`

	// Stop diagnostics
	StoppedReason string `json:"stopped_reason,omitempty"`
	StoppedOnMove int    `json:"stopped_on_move,omitempty"` // 1-based index of the move the stop happened on

	// Final snapshot
	GameState      *engine.GameState `json:"game_state"`
	GameOver       bool              `json:"game_over"`
	Won            bool              `json:"won"`
	Message        string            `json:"message,omitempty"`
	AvailableMoves []string          `json:"available_moves,omitempty"`

	// Per-step compact trace (only for this call)
	Steps  []StepInfo  `json:"steps,omitempty"`
	Events []GameEvent `json:"events"`
}

// StepInfo is a compact record for each attempted move in a bulk call
type StepInfo struct {
	Idx        int                   `json:"idx"`
	Dir        string                `json:"dir"`
	Moved      bool                  `json:"moved"`
	ScoreDelta int                   `json:"score_delta"`
	Spawned    *engine.TilePlacement `json:"spawned,omitempty"`
	Won        bool                  `json:"won,omitempty"`
	Over       bool                  `json:"over,omitempty"`
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string    `json:"type"` // "move", "won", "game_over", "new_game"
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// HistoryOptions configures move history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated move history
type HistoryResponse struct {
	Moves       []engine.MoveRecord `json:"moves"`
	TotalMoves  int                 `json:"total_moves"`
	Page        int                 `json:"page"`
	PageSize    int                 `json:"page_size"`
	TotalPages  int                 `json:"total_pages"`
	HasNext     bool                `json:"has_next"`
	HasPrevious bool                `json:"has_previous"`
}

// ShareInfo is the read-only score-sharing payload. Producing it never
// changes session state.
type ShareInfo struct {
	SessionID string `json:"session_id"`
	Score     int    `json:"score"`
	MaxTile   int    `json:"max_tile"`
	Won       bool   `json:"won"`
	Over      bool   `json:"over"`
	Text      string `json:"text"`
}
