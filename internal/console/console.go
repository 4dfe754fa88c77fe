package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/kumarlokesh/detective-quest/internal/game"
	"github.com/kumarlokesh/detective-quest/internal/mansion"
	"github.com/kumarlokesh/detective-quest/internal/suspects"
)

// Console plays a session over a line-oriented reader and writer
type Console struct {
	in     *bufio.Reader
	out    io.Writer
	logger zerolog.Logger
}

// New creates a console reading player input from in and narrating to out
func New(in io.Reader, out io.Writer, logger zerolog.Logger) *Console {
	return &Console{
		in:     bufio.NewReader(in),
		out:    out,
		logger: logger,
	}
}

// Case is what the console needs besides the walk itself
type Case struct {
	Table  *suspects.Table
	Roster []string
}

// Play runs the walk to completion, then lists the clues and asks for an
// accusation as the session tier requires. The verdict is nil when the tier
// has none or the accusation could not be read.
func (c *Console) Play(s *game.Session, cs Case) (*game.Verdict, error) {
	if err := c.walk(s); err != nil {
		return nil, err
	}

	if !s.Tier().CollectsClues() {
		return nil, nil
	}
	c.listClues(s)

	if !s.Tier().HasVerdict() {
		return nil, nil
	}
	return c.judge(s, cs)
}

func (c *Console) walk(s *game.Session) error {
	c.printf("\n=== Detective Quest: exploring the mansion ===\n")

	for {
		room := s.Current()
		c.describe(s, room)

		if s.State() == game.StateLeaf {
			c.printf("\nYou reached the last room on this path. Ending exploration...\n")
			return nil
		}

		c.printf("Available paths:\n")
		c.printf("  [e] Left : %s\n", exitLabel(room.Left))
		c.printf("  [d] Right: %s\n", exitLabel(room.Right))
		c.printf("  [s] Leave the game\n")

		if err := c.prompt(s); err != nil {
			return err
		}
		if s.State() == game.StateQuit {
			return nil
		}
	}
}

// prompt asks for choices until one is accepted. End of input quits.
func (c *Console) prompt(s *game.Session) error {
	for {
		c.printf("Choose (e/d/s): ")

		line, err := c.readLine()
		if errors.Is(err, io.EOF) {
			c.printf("\nEnd of input, leaving the mansion.\n")
			c.logger.Debug().Str("room", s.Current().Name).Msg("Input closed during walk")
			return s.Apply(game.ChoiceQuit)
		}
		if err != nil {
			return fmt.Errorf("failed to read choice: %w", err)
		}

		choice, err := game.ParseChoice(line)
		if err != nil {
			c.logger.Debug().Err(err).Msg("Rejected input")
			c.printf("Invalid option. Use 'e', 'd' or 's'.\n")
			continue
		}

		err = s.Apply(choice)
		switch {
		case err == nil:
			if choice == game.ChoiceQuit {
				c.printf("Leaving the game at the player's request.\n")
			}
			return nil
		case errors.Is(err, game.ErrNoPath):
			dir := "left"
			if choice == game.ChoiceRight {
				dir = "right"
			}
			c.printf("There is no path to the %s from %s. Choose again.\n", dir, s.Current().Name)
		default:
			return err
		}
	}
}

func (c *Console) describe(s *game.Session, room *mansion.Room) {
	c.printf("\nYou are in: %s\n", room.Name)
	if !s.Tier().CollectsClues() {
		return
	}
	if room.HasClue() {
		c.printf("Clue found here: %q\n", room.Clue)
	} else {
		c.printf("No clue in this room.\n")
	}
}

func (c *Console) listClues(s *game.Session) {
	c.printf("\n=== Collected clues (alphabetical) ===\n")
	if s.Clues().Empty() {
		c.printf("(No clues collected.)\n")
		return
	}
	s.Clues().Traverse(func(clue string) bool {
		c.printf("- %s\n", clue)
		return true
	})
}

func (c *Console) judge(s *game.Session, cs Case) (*game.Verdict, error) {
	c.printf("\n=== Suspects ===\n")
	for _, name := range cs.Roster {
		c.printf("- %s\n", name)
	}

	c.printf("\nEnter the name of the suspect to accuse: ")
	accused, err := c.readLine()
	if err != nil {
		if !errors.Is(err, io.EOF) {
			c.logger.Warn().Err(err).Msg("Failed to read accusation")
		}
		c.printf("Invalid input.\n")
		return nil, nil
	}

	v, err := s.Accuse(cs.Table, accused)
	if err != nil {
		return nil, err
	}

	c.printf("\n=== Final judgement ===\n")
	if v.Won {
		c.printf("You WON! The accusation against %q is confirmed by %d clue(s).\n", v.Accused, v.Count)
	} else {
		c.printf("You LOST. The accusation against %q is not supported: only %d clue(s).\n", v.Accused, v.Count)
	}
	return &v, nil
}

// readLine returns the next line without its terminator. A final line
// without a newline is returned as is; io.EOF is returned only when no data
// is left.
func (c *Console) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, nil
}

func (c *Console) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, format, args...)
}

func exitLabel(r *mansion.Room) string {
	if r == nil {
		return "-- unavailable --"
	}
	return r.Name
}
