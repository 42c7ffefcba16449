// internal/render/render.go
//
// Terminal output for guesses and games.
//
// Plain mode prints the emoji squares line ("🟩⬜🟨⬜⬜ (crane)"). On a
// terminal the guessed letters are also shown on colored tiles.

package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/TwiN/go-color"
	"golang.org/x/term"

	"github.com/robalobadob/wordle-solver/internal/game"
	"github.com/robalobadob/wordle-solver/internal/wordle"
)

// Printer writes guesses to w.
type Printer struct {
	w     io.Writer
	color bool
}

// New returns a Printer that colors output when w is a terminal and
// NO_COLOR is unset.
func New(w io.Writer) *Printer {
	return &Printer{w: w, color: isTerminal(w) && os.Getenv("NO_COLOR") == ""}
}

// NewPlain returns a Printer that never colors.
func NewPlain(w io.Writer) *Printer { return &Printer{w: w} }

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

var tileColors = map[wordle.LetterStatus]string{
	wordle.Correct: color.Green,
	wordle.Present: color.Yellow,
	wordle.Absent:  color.Gray,
}

// Tiles renders word with each letter colored by its status.
func Tiles(word string, ev wordle.Evaluation) string {
	var b strings.Builder
	for i, s := range ev.Statuses {
		if i >= len(word) {
			break
		}
		b.WriteString(color.Ize(tileColors[s], strings.ToUpper(word[i:i+1])))
	}
	return b.String()
}

// Line renders one guess.
func (p *Printer) Line(g game.Guess) string {
	if !p.color {
		return g.String()
	}
	s := fmt.Sprintf("%s %s (%s)", game.Squares(g.Evaluation), Tiles(g.Word, g.Evaluation), g.Word)
	if g.Solved() {
		s += " " + color.Ize(color.Bold, "Success!")
	}
	return s
}

// Guess prints one guess line.
func (p *Printer) Guess(g game.Guess) {
	fmt.Fprintln(p.w, p.Line(g))
}

// Game prints every guess of g followed by the outcome.
func (p *Printer) Game(g *game.Game) {
	for _, gs := range g.Guesses {
		p.Guess(gs)
	}
	p.Outcome(g)
}

// Outcome prints how a finished game ended. It prints nothing mid-game.
func (p *Printer) Outcome(g *game.Game) {
	switch g.State {
	case game.StateExhausted:
		fmt.Fprintf(p.w, "Out of guesses. The word was %q.\n", g.Answer)
	case game.StateSolved:
		fmt.Fprintf(p.w, "Solved %q in %d.\n", g.Answer, len(g.Guesses))
	}
}

// Candidates prints how many words remain, listing them when few.
func (p *Printer) Candidates(c wordle.CandidateSet, show int) {
	n := c.Len()
	if n > 0 && n <= show {
		fmt.Fprintf(p.w, "%d candidates: %s\n", n, strings.Join(c.Words(), " "))
		return
	}
	fmt.Fprintf(p.w, "%d candidates\n", n)
}
