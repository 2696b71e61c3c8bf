// Package prompt asks the user which file extensions to inventory.
//
// On a terminal the question is an inline Bubble Tea text input; otherwise
// a single line is read from the input stream, so piped and scripted runs
// behave like the interactive one.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/jamesainslie/fileowners/pkg/owners/logging"
)

var logger = logging.Get("prompt")

// Question is the text shown when asking for extensions.
const Question = "Enter file extensions to search for (e.g., .pdf, .txt), separated by commas: "

// ErrCancelled is returned when the user aborts the interactive prompt.
var ErrCancelled = errors.New("prompt cancelled")

// Prompter asks a question and returns the raw answer.
type Prompter interface {
	Ask(question string) (string, error)
}

// LinePrompter writes the question to Out and reads one line from In.
type LinePrompter struct {
	In  io.Reader
	Out io.Writer
}

// Ask implements Prompter. The trailing newline is removed; end of input
// before any newline counts as the answer read so far, possibly empty.
func (p *LinePrompter) Ask(question string) (string, error) {
	if _, err := fmt.Fprint(p.Out, question); err != nil {
		return "", fmt.Errorf("writing prompt: %w", err)
	}

	line, err := bufio.NewReader(p.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading answer: %w", err)
	}

	answer := strings.TrimRight(line, "\r\n")
	logger.Debug("read answer", "answer", answer, "eof", errors.Is(err, io.EOF))
	return answer, nil
}

// New returns a TTY prompter when in and out are both terminals, and a
// LinePrompter otherwise.
func New(in io.Reader, out io.Writer) Prompter {
	if isTerminal(in) && isTerminal(out) {
		return &TTYPrompter{In: in, Out: out}
	}
	return &LinePrompter{In: in, Out: out}
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
