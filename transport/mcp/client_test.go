package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/slidetile/twenty48/game/engine"
	"github.com/slidetile/twenty48/game/service"
)

func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:8080"
	client := NewClient(baseURL)

	if client == nil {
		t.Fatal("Expected client to be created")
	}

	if client.baseURL != baseURL {
		t.Errorf("Expected baseURL %s, got %s", baseURL, client.baseURL)
	}

	if client.httpClient == nil {
		t.Error("Expected HTTP client to be initialized")
	}

	if client.mcpServer == nil {
		t.Error("Expected MCP server to be initialized")
	}
}

func TestClient_apiCall(t *testing.T) {
	// Create a test server that returns a known response
	expectedResponse := map[string]interface{}{
		"id":    "test-session",
		"score": 128,
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(expectedResponse)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	var response map[string]interface{}
	err := client.apiCall("GET", "/api", nil, &response)
	if err != nil {
		t.Fatalf("apiCall failed: %v", err)
	}

	// Check that we got the expected response
	if response["id"] != expectedResponse["id"] {
		t.Errorf("Expected id %v, got %v", expectedResponse["id"], response["id"])
	}
}

func TestClient_apiCall_Error(t *testing.T) {
	client := NewClient("http://invalid-url-that-does-not-exist:9999")

	err := client.apiCall("GET", "/api", nil, nil)
	if err == nil {
		t.Error("Expected error for invalid URL")
	}
}

func TestClient_apiCall_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Internal Server Error"))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.apiCall("GET", "/api", nil, nil)
	if err == nil {
		t.Error("Expected error for HTTP 500 response")
	}

	if !strings.Contains(err.Error(), "API error") {
		t.Errorf("Expected 'API error' in error message, got: %v", err)
	}
}

func TestClient_apiCall_ErrorEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "session not found: no such session"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.apiCall("GET", "/api/sessions/nope", nil, nil)
	if err == nil {
		t.Fatal("Expected error for HTTP 404 response")
	}

	if !strings.Contains(err.Error(), "session not found") {
		t.Errorf("Expected the API's error message to pass through, got: %v", err)
	}
}

func TestClient_handleNewSession(t *testing.T) {
	// Mock server that responds to session creation
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/sessions" {
			t.Errorf("Expected POST /api/sessions, got %s %s", r.Method, r.URL.Path)
		}

		var req map[string]interface{}
		json.NewDecoder(r.Body).Decode(&req)
		if seed, ok := req["seed"].(float64); !ok || int64(seed) != 42 {
			t.Errorf("Expected seed 42 forwarded to the API, got %v", req["seed"])
		}

		resp := service.SessionInfo{
			ID:   "a1b2",
			Seed: 42,
			GameState: &engine.GameState{
				Grid: engine.Grid{
					{2, 0, 0, 0},
					{0, 0, 0, 2},
					{0, 0, 0, 0},
					{0, 0, 0, 0},
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "new_session",
			Arguments: map[string]interface{}{"seed": float64(42)},
		},
	}

	result, err := client.handleNewSession(ctx, request)
	if err != nil {
		t.Fatalf("handleNewSession failed: %v", err)
	}

	if result == nil {
		t.Fatal("Expected result, got nil")
	}

	resultStr, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}

	if !strings.Contains(resultStr.Text, "a1b2") {
		t.Errorf("Expected session ID in result, got: %s", resultStr.Text)
	}
	if !strings.Contains(resultStr.Text, "Seed: 42") {
		t.Errorf("Expected reported seed in result, got: %s", resultStr.Text)
	}
}

func TestClient_handleMove(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/sessions/a1b2/move" {
			t.Errorf("Expected POST /api/sessions/a1b2/move, got %s %s", r.Method, r.URL.Path)
		}

		var req map[string]interface{}
		json.NewDecoder(r.Body).Decode(&req)
		if req["direction"] != "left" {
			t.Errorf("Expected direction 'left' forwarded, got %v", req["direction"])
		}

		resp := service.MoveOutcome{
			Success:    true,
			Direction:  "left",
			ScoreDelta: 4,
			Spawned:    &engine.TilePlacement{Row: 2, Col: 3, Value: 2},
			GameState: &engine.GameState{
				Grid: engine.Grid{
					{4, 0, 0, 0},
					{0, 0, 0, 0},
					{0, 0, 0, 2},
					{0, 0, 0, 0},
				},
				Score:   4,
				MaxTile: 4,
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "move",
			Arguments: map[string]interface{}{
				"session_id": "a1b2",
				"direction":  "left",
				"intent":     "merge the twos in the top row",
			},
		},
	}

	result, err := client.handleMove(ctx, request)
	if err != nil {
		t.Fatalf("handleMove failed: %v", err)
	}

	resultStr, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}

	if !strings.Contains(resultStr.Text, "✓ Slid left") {
		t.Errorf("Expected success marker in result, got: %s", resultStr.Text)
	}
	if !strings.Contains(resultStr.Text, "Spawned: 2 at (2,3)") {
		t.Errorf("Expected spawn report in result, got: %s", resultStr.Text)
	}
}

func TestFormatBoard(t *testing.T) {
	grid := engine.Grid{
		{2, 0, 0, 0},
		{0, 4, 0, 0},
		{0, 0, 128, 0},
		{0, 0, 0, 2048},
	}

	result := formatBoard(grid)

	lines := strings.Split(strings.TrimRight(result, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("Expected 4 board lines, got %d", len(lines))
	}

	for _, want := range []string{"2", "4", "128", "2048", "."} {
		if !strings.Contains(result, want) {
			t.Errorf("Expected board to contain %q, got:\n%s", want, result)
		}
	}

	// Twelve empty cells render as dots
	if strings.Count(result, ".") != 12 {
		t.Errorf("Expected 12 dots for empty cells, got %d in:\n%s", strings.Count(result, "."), result)
	}
}

func TestFormatGameState(t *testing.T) {
	gameState := &engine.GameState{
		Grid: engine.Grid{
			{2, 4, 0, 0},
			{0, 0, 0, 0},
			{0, 0, 0, 0},
			{0, 0, 0, 0},
		},
		Score:      10,
		MaxTile:    4,
		TotalMoves: 3,
		Message:    "Join the numbers and get to the 2048 tile!",
	}

	result := formatGameState(gameState)

	// Check that all important fields are included
	expectedFields := []string{
		"Score: 10",
		"Max tile: 4",
		"Moves: 3",
		"Join the numbers and get to the 2048 tile!",
	}

	for _, field := range expectedFields {
		if !strings.Contains(result, field) {
			t.Errorf("Expected field '%s' in formatted output, got: %s", field, result)
		}
	}
}

func TestFormatGameState_GameOver(t *testing.T) {
	gameState := &engine.GameState{
		Score:   5,
		Over:    true,
		Message: "Game over!",
	}

	result := formatGameState(gameState)

	if !strings.Contains(result, "💀 GAME OVER") {
		t.Errorf("Expected '💀 GAME OVER' in result, got: %s", result)
	}
}

func TestFormatGameState_Won(t *testing.T) {
	gameState := &engine.GameState{
		Score:   20000,
		MaxTile: 2048,
		Won:     true,
		Message: "You win!",
	}

	result := formatGameState(gameState)

	if !strings.Contains(result, "🎉 2048 REACHED!") {
		t.Errorf("Expected '🎉 2048 REACHED!' in result, got: %s", result)
	}
}

func TestFormatMoveOutcome(t *testing.T) {
	outcome := &service.MoveOutcome{
		Success:    true,
		Direction:  "up",
		ScoreDelta: 8,
		GameState: &engine.GameState{
			Score:   15,
			MaxTile: 8,
		},
	}

	result := formatMoveOutcome(outcome)

	expectedFields := []string{
		"✓ Slid up",
		"(+8 points)",
		"Score: 15",
	}

	for _, field := range expectedFields {
		if !strings.Contains(result, field) {
			t.Errorf("Expected field '%s' in formatted output, got: %s", field, result)
		}
	}
}

func TestFormatMoveOutcome_Rejected(t *testing.T) {
	outcome := &service.MoveOutcome{
		Success:   false,
		Direction: "left",
		GameState: &engine.GameState{
			Score: 3,
		},
	}

	result := formatMoveOutcome(outcome)

	if !strings.Contains(result, "✗ Slide left rejected") {
		t.Errorf("Expected rejection marker in result, got: %s", result)
	}
}

func TestFormatBulkMoveOutcome(t *testing.T) {
	outcome := &service.BulkMoveOutcome{
		RequestedMoves: 5,
		MovesExecuted:  3,
		MovesRejected:  2,
		ScoreDelta:     16,
		StoppedReason:  "game_over",
		StoppedOnMove:  4,
		AvailableMoves: []string{},
		Steps: []service.StepInfo{
			{Idx: 1, Dir: "left", Moved: true, ScoreDelta: 8},
			{Idx: 2, Dir: "left", Moved: false},
			{Idx: 3, Dir: "down", Moved: true, ScoreDelta: 8, Over: true},
		},
		GameState: &engine.GameState{
			Score: 16,
			Over:  true,
		},
	}

	result := formatBulkMoveOutcome("a1b2", outcome)

	expectedFields := []string{
		"Session: a1b2",
		"Executed 3/5 moves (2 rejected)",
		"Stopped on move 4: game_over",
		"Score gained: 16",
		"1. left ✓ +8",
		"2. left ✗",
		"3. down ✓ +8 [over]",
		"💀 GAME OVER",
	}

	for _, field := range expectedFields {
		if !strings.Contains(result, field) {
			t.Errorf("Expected field '%s' in formatted output, got: %s", field, result)
		}
	}
}

func TestFormatHistory(t *testing.T) {
	history := &service.HistoryResponse{
		Moves: []engine.MoveRecord{
			{Direction: "left", Moved: true, ScoreDelta: 4, MoveNumber: 2, Spawned: &engine.TilePlacement{Row: 0, Col: 3, Value: 2}},
			{Direction: "up", Moved: false, MoveNumber: 1},
		},
		TotalMoves: 2,
		Page:       1,
		PageSize:   20,
		TotalPages: 1,
	}

	result := formatHistory(history)

	expectedFields := []string{
		"Move History (Page 1/1)",
		"Total: 2",
		"2. left ✓ [+4] spawn=2@(0,3)",
		"1. up ✗",
	}

	for _, field := range expectedFields {
		if !strings.Contains(result, field) {
			t.Errorf("Expected field '%s' in formatted output, got: %s", field, result)
		}
	}
}

func TestClient_handleGameInstructions(t *testing.T) {
	client := NewClient("http://localhost:8080")
	ctx := context.Background()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "game_instructions",
			Arguments: map[string]interface{}{},
		},
	}

	result, err := client.handleGameInstructions(ctx, request)
	if err != nil {
		t.Fatalf("handleGameInstructions failed: %v", err)
	}

	if result == nil {
		t.Fatal("Expected result, got nil")
	}

	// Check that the result contains game instructions
	resultStr, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}

	expectedContent := []string{
		"Twenty48 - Complete Instructions",
		"GAME OBJECTIVE:",
		"GAME MECHANICS:",
		"BOARD LEGEND:",
		"AI AGENTS - STRATEGY NOTES:",
		"CORNER STRATEGY (MOST IMPORTANT):",
		"MONOTONE ROWS:",
		"COMMON FAILURE POINTS:",
		"API USAGE BEST PRACTICES:",
		"SESSION MANAGEMENT:",
		"Good luck building that 2048 tile!",
	}

	for _, content := range expectedContent {
		if !strings.Contains(resultStr.Text, content) {
			t.Errorf("Expected '%s' in instructions, got: %s", content, resultStr.Text)
		}
	}
}

func TestClient_Integration(t *testing.T) {
	// Integration test that verifies the client can be created and initialized without errors
	client := NewClient("http://localhost:8080")

	if client == nil {
		t.Fatal("Failed to create client")
	}

	// Test that the MCP server has been properly configured with tools
	if client.mcpServer == nil {
		t.Fatal("MCP server not initialized")
	}

	// We can't easily test the actual tool execution without setting up a real server,
	// but we can verify that the client structure is properly initialized
	if client.baseURL == "" {
		t.Error("Base URL not set")
	}

	if client.httpClient == nil {
		t.Error("HTTP client not initialized")
	}
}
