// Package play implements the interactive terminal client.
//
// The client talks to the game service directly, no HTTP in between, and
// reads line commands from standard input:
//
//	u, d, l, r   slide (long forms up/down/left/right work too)
//	n            start a new game in the same session
//	s            print the share text and copy it to the clipboard
//	h            help
//	q            quit
//
// The board is redrawn after every accepted or rejected input, and
// milestone events are announced as they happen. When the game ends the
// share text is printed so the result can be pasted somewhere.
package play
