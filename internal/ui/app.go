package ui

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/elise-bgn/DownloadsCleaner/internal/decision"
	"github.com/elise-bgn/DownloadsCleaner/internal/organizer"
	"github.com/elise-bgn/DownloadsCleaner/internal/progress"
	"github.com/elise-bgn/DownloadsCleaner/internal/security"
	"github.com/elise-bgn/DownloadsCleaner/internal/ui/styles"
	uiutils "github.com/elise-bgn/DownloadsCleaner/internal/ui/utils"
)

// phase is the screen currently shown.
type phase int

const (
	phaseRunning phase = iota
	phaseAsking
	phaseDone
	phaseFailed
)

// progressMsg carries an organizer progress update into the program.
type progressMsg progress.Update

// askMsg carries one stale-file question. The model answers on resp;
// the organizer blocks until it does.
type askMsg struct {
	req  decision.Request
	resp chan decision.Disposition
}

// doneMsg carries the finished pass.
type doneMsg struct {
	result *organizer.Result
	err    error
}

// appModel is the root model for the interactive organization run.
type appModel struct {
	root     string
	simulate bool

	phase   phase
	spinner spinner.Model
	update  progress.Update
	started time.Time

	ask    *askMsg
	cursor int // 0 = Keep, 1 = Delete

	result *organizer.Result
	err    error

	width  int
	height int
}

// newAppModel creates the root model.
func newAppModel(root string, simulate bool) *appModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SelectedStyle

	return &appModel{
		root:     root,
		simulate: simulate,
		spinner:  s,
		started:  time.Now(),
	}
}

// Init initializes the model
func (m *appModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles messages
func (m *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case progressMsg:
		m.update = progress.Update(msg)
		return m, nil

	case askMsg:
		ask := msg
		m.ask = &ask
		m.cursor = 0
		m.phase = phaseAsking
		return m, nil

	case doneMsg:
		m.result = msg.result
		m.err = msg.err
		if msg.err != nil {
			m.phase = phaseFailed
		} else {
			m.phase = phaseDone
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey dispatches key presses per phase.
func (m *appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.phase {
	case phaseAsking:
		switch msg.String() {
		case "left", "h":
			if m.cursor > 0 {
				m.cursor--
			}
		case "right", "l":
			if m.cursor < 1 {
				m.cursor++
			}
		case "tab":
			m.cursor = (m.cursor + 1) % 2
		case "y":
			return m.answer(decision.Keep)
		case "n":
			return m.answer(decision.Delete)
		case "enter":
			if m.cursor == 1 {
				return m.answer(decision.Delete)
			}
			return m.answer(decision.Keep)
		}

	case phaseDone, phaseFailed:
		switch msg.String() {
		case "q", "enter":
			return m, tea.Quit
		}

	default:
		if msg.String() == "q" {
			return m, tea.Quit
		}
	}

	return m, nil
}

// answer resolves the pending question and resumes the run.
func (m *appModel) answer(d decision.Disposition) (tea.Model, tea.Cmd) {
	if m.ask != nil {
		m.ask.resp <- d
		m.ask = nil
	}
	m.phase = phaseRunning
	return m, nil
}

// View renders the current phase
func (m *appModel) View() string {
	switch m.phase {
	case phaseAsking:
		return m.viewAsk()
	case phaseDone:
		return m.viewDone()
	case phaseFailed:
		return m.viewFailed()
	default:
		return m.viewRunning()
	}
}

// viewRunning shows scan and organize progress.
func (m *appModel) viewRunning() string {
	var b strings.Builder

	if warning := uiutils.GetSizeWarningBanner(m.width, m.height); warning != "" {
		b.WriteString(warning)
	}

	title := "🗂  Organizing Downloads"
	if m.simulate {
		title += " (simulation)"
	}
	b.WriteString(styles.TitleStyle.Render(title))
	b.WriteString("\n\n")

	b.WriteString(styles.DimStyle.Render("Target: "))
	b.WriteString(styles.FilePathStyle.Render(uiutils.TruncatePath(m.root, 60)))
	b.WriteString("\n\n")

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	switch m.update.Phase {
	case progress.PhaseOrganizing:
		b.WriteString(fmt.Sprintf("Organizing... %d/%d", m.update.Processed, m.update.Total))
	case progress.PhaseScanning:
		b.WriteString("Scanning...")
	default:
		b.WriteString("Working...")
	}
	b.WriteString(" ")
	b.WriteString(styles.DimStyle.Render(fmt.Sprintf("(%s)", time.Since(m.started).Round(time.Second))))
	b.WriteString("\n\n")

	if m.update.Total > 0 {
		b.WriteString(styles.ProgressBar(m.update.Processed, m.update.Total, 30))
		b.WriteString("\n\n")
	}

	if m.update.CurrentName != "" {
		b.WriteString(styles.DimStyle.Render("Current: "))
		b.WriteString(m.update.CurrentName)
		b.WriteString("\n\n")
	}

	b.WriteString(m.counterLine())
	b.WriteString("\n\n")
	b.WriteString(styles.HelpStyle.Render("Press ctrl+c to cancel"))

	return b.String()
}

func (m *appModel) counterLine() string {
	return fmt.Sprintf("Moved: %s (%s)   Deleted: %s (%s)   Kept: %s   Skipped: %s",
		styles.BoldStyle.Render(fmt.Sprintf("%d", m.update.Moved)),
		styles.FileSizeStyle.Render(humanize.Bytes(uint64(m.update.MovedSize))),
		styles.BoldStyle.Render(fmt.Sprintf("%d", m.update.Deleted)),
		styles.FileSizeStyle.Render(humanize.Bytes(uint64(m.update.DeletedSize))),
		styles.BoldStyle.Render(fmt.Sprintf("%d", m.update.Kept)),
		styles.BoldStyle.Render(fmt.Sprintf("%d", m.update.Skipped)))
}

// viewAsk shows the keep-or-delete question for one stale file.
func (m *appModel) viewAsk() string {
	var b strings.Builder

	if warning := uiutils.GetSizeWarningBanner(m.width, m.height); warning != "" {
		b.WriteString(warning)
	}

	b.WriteString(styles.TitleStyle.Render("🕰  Stale File Found"))
	b.WriteString("\n\n")

	req := m.ask.req

	var panel strings.Builder
	panel.WriteString(styles.BoldStyle.Render(req.Name))
	panel.WriteString("\n")
	panel.WriteString(styles.FilePathStyle.Render(uiutils.TruncatePath(req.Path, 56)))
	panel.WriteString("\n\n")
	panel.WriteString("Size:      ")
	panel.WriteString(styles.FileSizeStyle.Render(humanize.Bytes(uint64(req.Size))))
	panel.WriteString("\n")
	panel.WriteString("Last used: ")
	panel.WriteString(req.Reference.Format(decision.ReferenceLayout))
	panel.WriteString(" ")
	panel.WriteString(styles.DimStyle.Render("(" + humanize.Time(req.Reference) + ")"))

	b.WriteString(styles.PanelStyle.Render(panel.String()))
	b.WriteString("\n\n")

	b.WriteString("This file has not been used in a while. Keep it?")
	b.WriteString("\n\n")

	keepBtn := "[ Keep ]"
	deleteBtn := "[ Delete ]"
	switch m.cursor {
	case 0:
		keepBtn = styles.HighlightStyle.Render("[ Keep ]")
	case 1:
		deleteBtn = styles.HighlightStyle.Render("[ Delete ]")
	}
	b.WriteString(fmt.Sprintf("%s  %s", keepBtn, deleteBtn))
	b.WriteString("\n\n")

	if m.simulate {
		b.WriteString(styles.InfoStyle.Render("Simulation: nothing will actually be deleted."))
	} else {
		b.WriteString(styles.DimStyle.Render("Deleted files go to the trash and can be restored."))
	}
	b.WriteString("\n\n")
	b.WriteString(styles.HelpStyle.Render("y:keep  n:delete  ←/→:navigate  enter:confirm"))

	return b.String()
}

// viewDone shows the final summary.
func (m *appModel) viewDone() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("✨ Organization Summary"))
	b.WriteString("\n\n")

	if r := m.result; r != nil {
		b.WriteString(styles.SuccessStyle.Render(fmt.Sprintf("✓ Moved %d entries (%s)",
			len(r.Moved), humanize.Bytes(uint64(r.MovedSize)))))
		b.WriteString("\n")

		if len(r.Deleted) > 0 {
			b.WriteString(styles.BoldStyle.Render(fmt.Sprintf("Deleted: %d entries (%s)",
				len(r.Deleted), humanize.Bytes(uint64(r.DeletedSize)))))
			b.WriteString("\n")
		}
		if len(r.Kept) > 0 {
			b.WriteString(fmt.Sprintf("Kept: %d stale files\n", len(r.Kept)))
		}
		if len(r.Skipped) > 0 {
			b.WriteString(styles.DimStyle.Render(fmt.Sprintf("Skipped: %d entries", len(r.Skipped))))
			b.WriteString("\n")
		}

		if len(r.ByCategory) > 0 {
			b.WriteString("\n")
			b.WriteString(styles.SubtitleStyle.Render("By Category:"))
			b.WriteString("\n")

			categories := make([]string, 0, len(r.ByCategory))
			for c := range r.ByCategory {
				categories = append(categories, c)
			}
			sort.Strings(categories)
			for _, c := range categories {
				b.WriteString(fmt.Sprintf("  %s %d\n",
					styles.CategoryStyle.Render(c+":"), r.ByCategory[c]))
			}
		}

		if len(r.Errors) > 0 {
			b.WriteString("\n")
			b.WriteString(styles.ErrorStyle.Render(fmt.Sprintf("✗ %d entries had errors", len(r.Errors))))
			b.WriteString("\n")
			b.WriteString(organizer.FormatErrorSummary(r.Errors))
		}

		if r.Simulated {
			b.WriteString("\n")
			b.WriteString(styles.InfoStyle.Render("Note: This was a simulation. Nothing was moved or deleted."))
			b.WriteString("\n")
		} else if r.LogPath != "" {
			b.WriteString("\n")
			b.WriteString(styles.DimStyle.Render("Run log: " + r.LogPath))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render("Press q or enter to exit"))

	return b.String()
}

// viewFailed shows a pass that aborted.
func (m *appModel) viewFailed() string {
	var b strings.Builder

	b.WriteString(styles.ErrorStyle.Render("✗ Organization failed"))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(m.err.Error())
		b.WriteString("\n")
		switch {
		case errors.Is(m.err, organizer.ErrDirectoryNotFound):
			b.WriteString("\n")
			b.WriteString(styles.DimStyle.Render("Check that the downloads directory exists, or pass --target."))
			b.WriteString("\n")
		case errors.Is(m.err, security.ErrProtectedPath):
			b.WriteString("\n")
			b.WriteString(styles.DimStyle.Render("System directories cannot be organized. Pass --target with a folder you own."))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render("Press q or enter to exit"))

	return b.String()
}
