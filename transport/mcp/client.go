package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/slidetile/twenty48/game/engine"
	"github.com/slidetile/twenty48/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Twenty48",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Twenty48 - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Slide tiles on a 4x4 board. Equal tiles merge into their sum. Reach the
2048 tile to win; the game is over when no slide can change the board.

AVAILABLE TOOLS:
- board: Get current board and score
- move: Single slide (up/down/left/right) - requires intent explanation
- bulk_move: Multiple slides at once - requires intent explanation
- new_game: Restart the board (history survives)
- move_history: View past moves
- new_session: Create new game session (optionally seeded)
- get_session: Get session details
- list_sessions: List all active sessions
- share_score: Get a shareable score summary
- game_instructions: Get comprehensive game instructions and rules

NOTE: The 'intent' parameter on move/bulk_move tools serves as rubber duck debugging - explain your reasoning!`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "new_session",
		Description: "Create a new game session with an optional deterministic seed",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"seed": map[string]interface{}{
					"type":        "integer",
					"description": "Seed for a reproducible game (optional, 0 or absent means random)",
				},
			},
		},
	}, c.handleNewSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to retrieve",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "board",
		Description: "Get the current board, score and status",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleBoard)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Slide the board in a direction",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"direction": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"up", "down", "left", "right"},
					"description": "Direction to slide",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this move (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"session_id", "direction"},
		},
	}, c.handleMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "bulk_move",
		Description: "Execute multiple slides in sequence",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"moves": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "string",
						"enum": []string{"up", "down", "left", "right"},
					},
					"description": "Array of slides",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this sequence of moves (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"session_id", "moves"},
		},
	}, c.handleBulkMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "new_game",
		Description: "Restart the board for a session. Move history survives the restart.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleNewGame)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move_history",
		Description: "Get move history for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleMoveHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "share_score",
		Description: "Get a shareable one-line score summary for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleShareScore)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleNewSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})

	body := map[string]interface{}{}
	if seed, ok := args["seed"].(float64); ok && seed != 0 {
		body["seed"] = int64(seed)
	}

	var session service.SessionInfo
	err := c.apiCall("POST", "/api/sessions", body, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nSeed: %d\n\n%s",
		session.ID, session.Seed, formatGameState(session.GameState))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	err := c.apiCall("GET", "/api/sessions", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		score := 0
		if s.GameState != nil {
			score = s.GameState.Score
		}
		result += fmt.Sprintf("- %s (Score: %d, Created: %s)\n",
			s.ID, score, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var session service.SessionInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatSessionInfo(&session)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleBoard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var state engine.GameState
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatGameState(&state)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	direction, _ := args["direction"].(string)
	intent, _ := args["intent"].(string)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	body := map[string]interface{}{
		"direction": direction,
	}

	var result service.MoveOutcome
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/move", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatMoveOutcome(&result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleBulkMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	movesRaw, _ := args["moves"].([]interface{})
	intent, _ := args["intent"].(string)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	// Convert moves to string array
	moves := make([]string, 0, len(movesRaw))
	for _, m := range movesRaw {
		if move, ok := m.(string); ok {
			moves = append(moves, move)
		}
	}

	body := map[string]interface{}{
		"moves": moves,
	}

	var result service.BulkMoveOutcome
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/bulk-move", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatBulkMoveOutcome(sessionID, &result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleNewGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var response struct {
		Message string            `json:"message"`
		State   *engine.GameState `json:"state"`
	}

	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/new-game", sessionID), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatGameState(response.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleMoveHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	params := "?"
	if page, ok := args["page"].(float64); ok {
		params += fmt.Sprintf("page=%d&", int(page))
	}
	if limit, ok := args["limit"].(float64); ok {
		params += fmt.Sprintf("limit=%d&", int(limit))
	}

	var history service.HistoryResponse
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/history%s", sessionID, params), nil, &history)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatHistory(&history)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleShareScore(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var share service.ShareInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/share", sessionID), nil, &share)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\nSession: %s\nScore: %d\nBest tile: %d\n",
		share.Text, share.SessionID, share.Score, share.MaxTile)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `🎮 Twenty48 - Complete Instructions

GAME OBJECTIVE:
Slide numbered tiles on a 4x4 board. When two equal tiles collide they merge
into one tile of twice the value. Build a 2048 tile to win.

GAME MECHANICS:
• Slides: up, down, left, right. All tiles slide as far as they can.
• Merging: equal neighbors along the slide direction merge into their sum.
  Each tile merges at most once per slide - 4 4 8 slides left to 8 8, NOT 16.
• Scoring: every merge adds the merged tile's value to the score.
• Spawning: after every slide that changes the board, one new tile appears
  in a random empty cell - 2 (90% chance) or 4 (10% chance).
• Rejected slides: a slide that changes nothing is rejected. No tile spawns,
  nothing is lost. It still shows up in the history with moved=false.
• Win: reaching 2048 flips the won flag. Play continues past 2048.
• Game over: no empty cells and no equal neighbors - no slide can help.

BOARD LEGEND:
• Numbers are tile values (always powers of two)
• . is an empty cell

Example board:
     2     .     .     .
     .     4     .     .
     .     .    16     2
     2     .     .     4

🤖 AI AGENTS - STRATEGY NOTES:

🏰 CORNER STRATEGY (MOST IMPORTANT):
- Park your largest tile in one corner and keep it there
- Pick two directions toward that corner (e.g. left+down) and prefer them
- The direction pointing away from your corner is the emergency exit -
  use it only when nothing else is accepted

🐍 MONOTONE ROWS:
- Build rows/columns that decrease away from the anchor corner
- A "snake" layout (big to small, zig-zagging) merges chains efficiently
- Merging cascades: 2+2=4 next to a 4 sets up the next merge

⚠️ COMMON FAILURE POINTS:
- ❌ Breaking the corner: one careless slide in the wrong direction can
  pull the max tile out of its corner and scatter the board
- ❌ Long blind bulk_move sequences: every accepted slide spawns a RANDOM
  tile, so the board diverges from any multi-move plan quickly.
  Prefer short bursts (2-5 moves), then re-read the board.
- ❌ Ignoring rejected moves: repeated rejections mean the board cannot
  compress that way - change direction instead of retrying
- ❌ Filling the board with 2s by spamming one direction

🎮 API USAGE BEST PRACTICES:
- Use board after every bulk_move to resynchronize
- bulk_move caps at 50 moves per call and stops early at game over
- Check available_moves in bulk results to see what is still legal
- Seeded sessions (new_session with seed) replay identically - useful for
  comparing strategies on the same tile sequence

SESSION MANAGEMENT:
- Multiple game sessions can run simultaneously
- Each session has a unique 4-character ID
- Sessions maintain independent state
- new_game restarts the board but keeps the cumulative history

Good luck building that 2048 tile! 🎯`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nSeed: %d\nCreated: %s\n\n%s",
		session.ID, session.Seed,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatGameState(session.GameState))
}

// formatBoard renders the grid as fixed-width text, "." for empty cells.
func formatBoard(g engine.Grid) string {
	var b strings.Builder
	for row := 0; row < engine.Size; row++ {
		for col := 0; col < engine.Size; col++ {
			cell := "."
			if g[row][col] != 0 {
				cell = strconv.Itoa(g[row][col])
			}
			b.WriteString(fmt.Sprintf("%6s", cell))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "No game state available"
	}

	var result strings.Builder

	// Header (include cumulative total moves)
	result.WriteString(fmt.Sprintf("Score: %d | Max tile: %d | Moves: %d\n\n",
		state.Score, state.MaxTile, state.TotalMoves))

	result.WriteString(formatBoard(state.Grid))

	// Status
	if state.Won {
		result.WriteString("\n🎉 2048 REACHED!")
	}
	if state.Over {
		result.WriteString("\n💀 GAME OVER")
	}

	if state.Message != "" {
		result.WriteString(fmt.Sprintf("\nMessage: %s", state.Message))
	}

	return result.String()
}

func formatMoveOutcome(result *service.MoveOutcome) string {
	response := ""
	if result.Success {
		response = fmt.Sprintf("✓ Slid %s", result.Direction)
		if result.ScoreDelta > 0 {
			response += fmt.Sprintf(" (+%d points)", result.ScoreDelta)
		}
		response += "\n"
	} else {
		response = fmt.Sprintf("✗ Slide %s rejected - nothing moved\n", result.Direction)
	}

	if result.Spawned != nil {
		response += fmt.Sprintf("Spawned: %d at (%d,%d)\n",
			result.Spawned.Value, result.Spawned.Row, result.Spawned.Col)
	}

	if len(result.Events) > 0 {
		response += "Events:\n"
		for _, event := range result.Events {
			response += fmt.Sprintf("- %s: %s\n", event.Type, event.Message)
		}
	}

	response += "\n" + formatGameState(result.GameState)
	return response
}

func formatBulkMoveOutcome(sessionID string, result *service.BulkMoveOutcome) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Session: %s\n", sessionID))

	// Bulk summary
	b.WriteString(fmt.Sprintf("Executed %d/%d moves (%d rejected)\n",
		result.MovesExecuted, result.RequestedMoves, result.MovesRejected))
	if result.Truncated {
		b.WriteString(fmt.Sprintf("Truncated: batch capped at %d moves\n", result.Limit))
	}
	if result.StoppedReason != "" {
		b.WriteString(fmt.Sprintf("Stopped on move %d: %s\n", result.StoppedOnMove, result.StoppedReason))
	}
	if result.ScoreDelta > 0 {
		b.WriteString(fmt.Sprintf("Score gained: %d\n", result.ScoreDelta))
	}

	// Events (keep as-is, concise)
	if len(result.Events) > 0 {
		b.WriteString("\nEvents:\n")
		for _, event := range result.Events {
			b.WriteString(fmt.Sprintf("- %s: %s\n", event.Type, event.Message))
		}
	}

	// Per-step trace for this call
	if len(result.Steps) > 0 {
		b.WriteString("\nSteps (this call):\n")
		for _, s := range result.Steps {
			b.WriteString(formatStepLine(s))
		}
	}

	// Legal follow-up moves from the final state
	if len(result.AvailableMoves) > 0 {
		b.WriteString("\nPossible moves: ")
		b.WriteString(strings.Join(result.AvailableMoves, ","))
		b.WriteString("\n")
	}

	// Full state at the end
	b.WriteString("\n")
	b.WriteString(formatGameState(result.GameState))
	return b.String()
}

// formatStepLine renders a single compact step line
func formatStepLine(step service.StepInfo) string {
	status := "✗"
	if step.Moved {
		status = "✓"
	}
	line := fmt.Sprintf("%d. %s %s", step.Idx, step.Dir, status)
	if step.ScoreDelta > 0 {
		line += fmt.Sprintf(" +%d", step.ScoreDelta)
	}
	if step.Spawned != nil {
		line += fmt.Sprintf(" spawn=%d@(%d,%d)", step.Spawned.Value, step.Spawned.Row, step.Spawned.Col)
	}
	if step.Won {
		line += " [won]"
	}
	if step.Over {
		line += " [over]"
	}
	return line + "\n"
}

func formatHistory(history *service.HistoryResponse) string {
	result := fmt.Sprintf("Move History (Page %d/%d) — Total: %d\n\n",
		history.Page, history.TotalPages, history.TotalMoves)

	if len(history.Moves) == 0 {
		return result + "(no moves recorded)"
	}

	for _, move := range history.Moves {
		status := "✓"
		if !move.Moved {
			status = "✗"
		}
		line := fmt.Sprintf("%d. %s %s", move.MoveNumber, move.Direction, status)
		if move.ScoreDelta > 0 {
			line += fmt.Sprintf(" [+%d]", move.ScoreDelta)
		}
		if move.Spawned != nil {
			line += fmt.Sprintf(" spawn=%d@(%d,%d)", move.Spawned.Value, move.Spawned.Row, move.Spawned.Col)
		}
		result += line + "\n"
	}

	return result
}
