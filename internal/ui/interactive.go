// Package ui is the interactive terminal frontend for an organization
// pass: live progress, one modal question per stale file, and a final
// summary.
package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/elise-bgn/DownloadsCleaner/internal/decision"
	"github.com/elise-bgn/DownloadsCleaner/internal/organizer"
)

// Execute runs one pass behind the interactive TUI. The organizer's
// decision source is replaced so stale-file questions surface as part
// of the interface, and its progress reporter feeds the screen.
// Quitting the interface cancels the pass at the next entry boundary.
func Execute(ctx context.Context, o *organizer.Organizer, simulate bool) (*organizer.Result, error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newAppModel(o.Root(), simulate), tea.WithAltScreen())

	o.SetDecisionSource(decision.Func(func(ctx context.Context, req decision.Request) (decision.Disposition, error) {
		resp := make(chan decision.Disposition, 1)
		p.Send(askMsg{req: req, resp: resp})
		select {
		case d := <-resp:
			return d, nil
		case <-ctx.Done():
			return decision.Keep, ctx.Err()
		}
	}))

	reporter := o.GetProgressReporter()
	updates := reporter.Subscribe()
	defer reporter.Unsubscribe(updates)
	go func() {
		for u := range updates {
			p.Send(progressMsg(u))
		}
	}()

	outcome := make(chan doneMsg, 1)
	go func() {
		result, err := o.Run(runCtx)
		outcome <- doneMsg{result: result, err: err}
		p.Send(doneMsg{result: result, err: err})
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		<-outcome
		return nil, fmt.Errorf("error running interactive mode: %w", err)
	}

	// The interface is gone; stop the pass if it is still going and
	// collect whatever it finished.
	cancel()
	final := <-outcome
	return final.result, final.err
}
