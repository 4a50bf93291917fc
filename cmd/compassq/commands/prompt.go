package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/slok/compassq/internal/matrix"
)

// linePrompter asks for the new hours of a transfer on a line based terminal.
// An empty answer takes the default, end of input cancels.
type linePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newLinePrompter(in io.Reader, out io.Writer) matrix.HoursPrompter {
	return linePrompter{in: bufio.NewReader(in), out: out}
}

func (p linePrompter) RequestHours(ctx context.Context, defaultHours float64) (float64, bool, error) {
	fmt.Fprintf(p.out, "Set hours until due for this task [%s]: ", strconv.FormatFloat(defaultHours, 'f', -1, 64))

	type answer struct {
		line string
		err  error
	}
	answers := make(chan answer, 1)
	go func() {
		line, err := p.in.ReadString('\n')
		answers <- answer{line: line, err: err}
	}()

	var a answer
	select {
	case <-ctx.Done():
		return 0, false, ctx.Err()
	case a = <-answers:
	}

	line := strings.TrimSpace(a.line)
	if a.err != nil {
		if !errors.Is(a.err, io.EOF) {
			return 0, false, fmt.Errorf("could not read answer: %w", a.err)
		}
		if line == "" {
			return 0, false, nil
		}
	}

	if line == "" {
		return defaultHours, true, nil
	}

	hours, err := strconv.ParseFloat(line, 64)
	if err != nil {
		// Rejected by the board with the user facing message.
		return math.NaN(), true, nil
	}

	return hours, true, nil
}
