package play

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/slidetile/twenty48/game/engine"
	"github.com/slidetile/twenty48/game/service"
)

// Client is the interactive terminal player
type Client struct {
	service service.GameService
	out     io.Writer

	// copyText puts the share text on the system clipboard. Swappable for tests.
	copyText func(string) error

	sessionID string
}

// NewClient creates a terminal client on top of a game service
func NewClient(gameService service.GameService, out io.Writer) *Client {
	return &Client{
		service:  gameService,
		out:      out,
		copyText: clipboard.WriteAll,
	}
}

// Run creates a session and processes line commands until quit or EOF.
// A zero seed means a random game; any other value replays that game.
func (c *Client) Run(ctx context.Context, in io.Reader, seed int64) error {
	info, err := c.service.CreateSession(ctx, seed)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	c.sessionID = info.ID

	fmt.Fprintf(c.out, "Session %s (seed %d)\n", info.ID, info.Seed)
	fmt.Fprintln(c.out, engine.WelcomeMessage)
	c.printState(info.GameState)
	c.printHelp()

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(c.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(c.out)
			return scanner.Err()
		}

		line := strings.ToLower(strings.TrimSpace(scanner.Text()))
		switch line {
		case "":
			continue
		case "q", "quit", "exit":
			fmt.Fprintln(c.out, "Bye!")
			return nil
		case "h", "help", "?":
			c.printHelp()
		case "n", "new":
			c.newGame(ctx)
		case "s", "share":
			c.share(ctx, true)
		default:
			direction, ok := parseCommand(line)
			if !ok {
				fmt.Fprintf(c.out, "Unknown command %q (h for help)\n", line)
				continue
			}
			c.move(ctx, direction)
		}
	}
}

// parseCommand maps a line command to a direction string the service accepts
func parseCommand(line string) (string, bool) {
	switch line {
	case "u", "up":
		return "up", true
	case "d", "down":
		return "down", true
	case "l", "left":
		return "left", true
	case "r", "right":
		return "right", true
	}
	return "", false
}

func (c *Client) move(ctx context.Context, direction string) {
	outcome, err := c.service.Move(ctx, c.sessionID, direction)
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}

	if !outcome.Success {
		fmt.Fprintf(c.out, "Nothing slides %s.\n", outcome.Direction)
	}

	c.printState(outcome.GameState)

	for _, ev := range outcome.Events {
		switch ev.Type {
		case "won":
			fmt.Fprintf(c.out, "🎉 %s Keep going if you like.\n", ev.Message)
		case "game_over":
			fmt.Fprintf(c.out, "💀 %s\n", ev.Message)
			c.share(ctx, false)
		}
	}
}

func (c *Client) newGame(ctx context.Context) {
	state, err := c.service.NewGame(ctx, c.sessionID)
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}

	fmt.Fprintln(c.out, "New game started.")
	c.printState(state)
}

// share prints the share text, and copies it to the clipboard when asked.
// Clipboard failures degrade to print-only; headless terminals are common.
func (c *Client) share(ctx context.Context, copy bool) {
	share, err := c.service.Share(ctx, c.sessionID)
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}

	fmt.Fprintln(c.out, share.Text)

	if copy {
		if err := c.copyText(share.Text); err != nil {
			fmt.Fprintf(c.out, "(clipboard unavailable: %v)\n", err)
			return
		}
		fmt.Fprintln(c.out, "(copied to clipboard)")
	}
}

func (c *Client) printState(state *engine.GameState) {
	if state == nil {
		return
	}

	fmt.Fprintf(c.out, "\nScore: %d   Max tile: %d   Moves: %d\n\n",
		state.Score, state.MaxTile, state.TotalMoves)

	for row := 0; row < engine.Size; row++ {
		for col := 0; col < engine.Size; col++ {
			cell := "."
			if state.Grid[row][col] != 0 {
				cell = strconv.Itoa(state.Grid[row][col])
			}
			fmt.Fprintf(c.out, "%6s", cell)
		}
		fmt.Fprintln(c.out)
	}
	fmt.Fprintln(c.out)
}

func (c *Client) printHelp() {
	fmt.Fprintln(c.out, "Commands: u/d/l/r slide, n new game, s share score, h help, q quit")
}
