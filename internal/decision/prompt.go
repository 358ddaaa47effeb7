package decision

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
)

// ReferenceLayout formats the last-used timestamp shown in prompts.
const ReferenceLayout = "2006-01-02 15:04:05"

// Prompt asks on the terminal. Answering y (the default) keeps the
// file, n deletes it. Closed input keeps the file.
type Prompt struct {
	In  io.Reader
	Out io.Writer

	scanner *bufio.Scanner
}

// NewPrompt returns a terminal prompt reading answers from in and
// writing questions to out.
func NewPrompt(in io.Reader, out io.Writer) *Prompt {
	return &Prompt{In: in, Out: out}
}

// Decide implements Source.
func (p *Prompt) Decide(ctx context.Context, req Request) (Disposition, error) {
	if err := ctx.Err(); err != nil {
		return Keep, err
	}

	fmt.Fprintf(p.Out, "Do you want to keep this file?\n")
	fmt.Fprintf(p.Out, "  %s\n", req.Path)
	fmt.Fprintf(p.Out, "  Last used: %s (%s, %s)\n",
		req.Reference.Format(ReferenceLayout),
		humanize.Time(req.Reference),
		humanize.Bytes(uint64(req.Size)))
	fmt.Fprintf(p.Out, "Keep? [Y/n]: ")

	if p.scanner == nil {
		p.scanner = bufio.NewScanner(p.In)
	}
	if !p.scanner.Scan() {
		// EOF or read failure. Keeping is the safe answer.
		if err := p.scanner.Err(); err != nil {
			return Keep, err
		}
		return Keep, nil
	}

	switch strings.ToLower(strings.TrimSpace(p.scanner.Text())) {
	case "n", "no":
		return Delete, nil
	default:
		return Keep, nil
	}
}
