package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/kumarlokesh/detective-quest/internal/mansion"
	"github.com/kumarlokesh/detective-quest/internal/suspects"
)

// PrintMap writes the mansion as an indented outline, left exit first
func PrintMap(w io.Writer, tree *mansion.Tree) {
	tree.Walk(func(r *mansion.Room, depth int) bool {
		line := strings.Repeat("  ", depth) + r.Name
		if r.HasClue() {
			line += fmt.Sprintf(" [%s]", r.Clue)
		}
		fmt.Fprintln(w, line)
		return true
	})
}

// PrintSuspects writes the roster followed by the clue associations
func PrintSuspects(w io.Writer, roster []string, table *suspects.Table) {
	fmt.Fprintln(w, "Suspects:")
	for _, name := range roster {
		fmt.Fprintf(w, "- %s\n", name)
	}

	fmt.Fprintln(w, "\nEvidence:")
	for _, a := range table.Associations() {
		fmt.Fprintf(w, "- %s -> %s\n", a.Clue, a.Suspect)
	}
}
