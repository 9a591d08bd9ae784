package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/slidetile/twenty48/game/engine"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
	}
}

// CreateSession creates a new game session. A zero seed asks for a random
// one; the seed actually used is reported back so the game can be replayed.
func (s *gameServiceImpl) CreateSession(ctx context.Context, seed int64) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Let the session manager generate a proper 4-character ID
	session, err := s.sessions.Create("", seed)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return sessionInfo(session), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	return sessionInfo(session), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))

	for _, sess := range sessions {
		result = append(result, sessionInfo(sess))
	}

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// Move executes a single move for a session. The direction string is parsed
// here; below this boundary only the closed Direction enumeration exists.
func (s *gameServiceImpl) Move(ctx context.Context, sessionID, direction string) (*MoveOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	dir, err := engine.ParseDirection(direction)
	if err != nil {
		return nil, err
	}

	wasWon := sess.Engine.IsWon()
	wasOver := sess.Engine.IsOver()
	success := sess.Engine.Move(dir)
	state := sess.Engine.GetState()

	outcome := &MoveOutcome{
		Success:   success,
		Direction: dir.String(),
		GameState: state,
		Message:   state.Message,
		Events:    s.extractMoveEvents(sess, dir, success, wasWon, wasOver),
	}
	if last := sess.Engine.GetLastMove(); last != nil {
		outcome.ScoreDelta = last.ScoreDelta
		outcome.Spawned = last.Spawned
	}

	return outcome, nil
}

// BulkMove executes multiple moves in sequence. Rejected moves do not abort
// the batch; the sequence only stops early when the game is over or the
// move limit is hit.
func (s *gameServiceImpl) BulkMove(ctx context.Context, sessionID string, moves []string) (*BulkMoveOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	startScore := sess.Engine.GetScore()

	result := &BulkMoveOutcome{
		RequestedMoves: len(moves),
		Events:         make([]GameEvent, 0),
	}

	// Limit moves to prevent abuse
	if len(moves) > engine.MaxBulkMoves {
		result.Truncated = true
		result.Limit = engine.MaxBulkMoves
		moves = moves[:engine.MaxBulkMoves]
	}

	for i, move := range moves {
		if sess.Engine.IsOver() {
			result.StoppedReason = "game_over"
			result.StoppedOnMove = i + 1
			break
		}

		dir, err := engine.ParseDirection(move)
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}

		wasWon := sess.Engine.IsWon()
		wasOver := sess.Engine.IsOver()
		success := sess.Engine.Move(dir)

		step := StepInfo{
			Idx:   i + 1,
			Dir:   dir.String(),
			Moved: success,
		}
		if last := sess.Engine.GetLastMove(); last != nil {
			step.ScoreDelta = last.ScoreDelta
			step.Spawned = last.Spawned
		}
		st := sess.Engine.GetState()
		step.Won = st.Won
		step.Over = st.Over
		result.Steps = append(result.Steps, step)

		if success {
			result.MovesExecuted++
		} else {
			result.MovesRejected++
		}

		result.Events = append(result.Events, s.extractMoveEvents(sess, dir, success, wasWon, wasOver)...)
	}

	endState := sess.Engine.GetState()
	result.GameState = endState
	result.ScoreDelta = endState.Score - startScore
	result.GameOver = endState.Over
	result.Won = endState.Won
	result.Message = endState.Message
	for _, dir := range sess.Engine.GetAvailableMoves() {
		result.AvailableMoves = append(result.AvailableMoves, dir.String())
	}

	return result, nil
}

// NewGame restarts a session's board, keeping its cumulative history
func (s *gameServiceImpl) NewGame(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	return sess.Engine.NewGame(), nil
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	return sess.Engine.GetState(), nil
}

// GetMoveHistory returns paginated move history
func (s *gameServiceImpl) GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	history := sess.Engine.GetMoveHistory()
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	// Calculate pagination
	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	// Get the slice of moves
	var moves []engine.MoveRecord
	if opts.Order == "desc" {
		// Reverse order (most recent first)
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			moves = append(moves, history[i])
		}
	} else {
		// Normal chronological order
		if start < total {
			moves = history[start:end]
		}
	}

	// Ensure moves is not nil
	if moves == nil {
		moves = []engine.MoveRecord{}
	}

	return &HistoryResponse{
		Moves:       moves,
		TotalMoves:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// Share builds the read-only score-sharing payload for a session
func (s *gameServiceImpl) Share(ctx context.Context, sessionID string) (*ShareInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	state := sess.Engine.GetState()
	return &ShareInfo{
		SessionID: sess.ID,
		Score:     state.Score,
		MaxTile:   state.MaxTile,
		Won:       state.Won,
		Over:      state.Over,
		Text:      shareText(state),
	}, nil
}

// sessionInfo builds the API view of a session
func sessionInfo(sess *Session) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		Seed:           sess.Seed,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		GameState:      sess.Engine.GetState(),
	}
}

// extractMoveEvents generates events from a move attempt
func (s *gameServiceImpl) extractMoveEvents(sess *Session, dir engine.Direction, moved, wasWon, wasOver bool) []GameEvent {
	events := []GameEvent{}
	state := sess.Engine.GetState()
	now := time.Now()

	msg := fmt.Sprintf("Moved %s", dir)
	if !moved {
		msg = fmt.Sprintf("Move %s changed nothing", dir)
	}
	events = append(events, GameEvent{
		Type:      "move",
		Message:   msg,
		Timestamp: now,
	})

	if !wasWon && state.Won {
		events = append(events, GameEvent{
			Type:      "won",
			Message:   engine.WinMessage,
			Timestamp: now,
		})
	}
	if !wasOver && state.Over {
		events = append(events, GameEvent{
			Type:      "game_over",
			Message:   engine.GameOverMessage,
			Timestamp: now,
		})
	}

	return events
}

// shareText renders the human-readable share string for a game state.
func shareText(state *engine.GameState) string {
	switch {
	case state.Over && state.Won:
		return fmt.Sprintf("I won Twenty48! Final score %d, best tile %d.", state.Score, state.MaxTile)
	case state.Over:
		return fmt.Sprintf("Game over in Twenty48: score %d, best tile %d.", state.Score, state.MaxTile)
	case state.Won:
		return fmt.Sprintf("I reached 2048 in Twenty48! Score %d and still going.", state.Score)
	default:
		return fmt.Sprintf("I'm playing Twenty48: score %d, best tile %d.", state.Score, state.MaxTile)
	}
}
