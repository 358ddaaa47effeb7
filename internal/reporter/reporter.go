// Package reporter renders organization results for humans and
// machines.
package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"gopkg.in/yaml.v3"

	"github.com/elise-bgn/DownloadsCleaner/internal/organizer"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatYAML    OutputFormat = "yaml"
	FormatSummary OutputFormat = "summary"
)

// Reporter handles report generation
type Reporter struct {
	writer io.Writer
	format OutputFormat
}

// New creates a new Reporter
func New(writer io.Writer, format OutputFormat) *Reporter {
	return &Reporter{
		writer: writer,
		format: format,
	}
}

// Report generates a report from an organization result
func (r *Reporter) Report(result *organizer.Result) error {
	switch r.format {
	case FormatTable:
		return r.reportTable(result)
	case FormatJSON:
		return r.reportJSON(result)
	case FormatYAML:
		return r.reportYAML(result)
	case FormatSummary:
		return r.reportSummary(result)
	default:
		return fmt.Errorf("unsupported format: %s", r.format)
	}
}

// reportSummary generates a summary report
func (r *Reporter) reportSummary(result *organizer.Result) error {
	title := "=== Organization Summary ==="
	if result.Simulated {
		title = "=== Organization Summary (simulated) ==="
	}
	fmt.Fprintf(r.writer, "%s\n", title)
	fmt.Fprintf(r.writer, "Target: %s\n", result.Root)
	fmt.Fprintf(r.writer, "Status: %s\n", result.Status)
	fmt.Fprintf(r.writer, "Moved: %d entries (%s)\n", len(result.Moved), humanize.Bytes(uint64(result.MovedSize)))
	fmt.Fprintf(r.writer, "Deleted: %d entries (%s)\n", len(result.Deleted), humanize.Bytes(uint64(result.DeletedSize)))
	fmt.Fprintf(r.writer, "Kept: %d stale files\n", len(result.Kept))
	fmt.Fprintf(r.writer, "Skipped: %d entries\n", len(result.Skipped))

	if len(result.ByCategory) > 0 {
		fmt.Fprintf(r.writer, "\nBreakdown by Category:\n")
		for _, category := range sortedCategories(result.ByCategory) {
			fmt.Fprintf(r.writer, "  %s: %d entries\n", category, result.ByCategory[category])
		}
	}

	if len(result.Errors) > 0 {
		fmt.Fprintf(r.writer, "\n%s", organizer.FormatErrorSummary(result.Errors))
	}

	if result.LogPath != "" {
		fmt.Fprintf(r.writer, "\nRun log: %s\n", result.LogPath)
	}

	return nil
}

// reportTable generates a table report of every recorded action
func (r *Reporter) reportTable(result *organizer.Result) error {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Action", "Name", "Category", "Size", "Destination"})

	kept := make(map[string]bool, len(result.Kept))
	for _, a := range result.Kept {
		kept[a.Source] = true
	}

	for _, a := range result.Deleted {
		tw.AppendRow(table.Row{"deleted", a.Name, "", humanize.Bytes(uint64(a.Size)), a.Dest})
	}
	for _, a := range result.Moved {
		action := "moved"
		if kept[a.Source] {
			action = "moved (kept)"
		}
		tw.AppendRow(table.Row{action, a.Name, a.Category, humanize.Bytes(uint64(a.Size)), a.Dest})
	}
	for _, a := range result.Skipped {
		tw.AppendRow(table.Row{"skipped", a.Name, "", humanize.Bytes(uint64(a.Size)), a.Reason})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	fmt.Fprintln(r.writer, tw.Render())
	fmt.Fprintf(r.writer, "\nTotal: %d moved (%s), %d deleted (%s)\n",
		len(result.Moved), humanize.Bytes(uint64(result.MovedSize)),
		len(result.Deleted), humanize.Bytes(uint64(result.DeletedSize)))

	if len(result.Errors) > 0 {
		fmt.Fprintf(r.writer, "\n%s", organizer.FormatErrorSummary(result.Errors))
	}

	return nil
}

// reportJSON generates a JSON report
func (r *Reporter) reportJSON(result *organizer.Result) error {
	encoder := json.NewEncoder(r.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildReport(result))
}

// reportYAML generates a YAML report
func (r *Reporter) reportYAML(result *organizer.Result) error {
	encoder := yaml.NewEncoder(r.writer)
	defer encoder.Close()
	return encoder.Encode(buildReport(result))
}

// SaveToFile saves the report to a file
func SaveToFile(result *organizer.Result, path string, format OutputFormat) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	reporter := New(file, format)
	return reporter.Report(result)
}

// reportAction is the serialized form of one recorded action.
type reportAction struct {
	Name     string `json:"name" yaml:"name"`
	Source   string `json:"source" yaml:"source"`
	Dest     string `json:"dest,omitempty" yaml:"dest,omitempty"`
	Category string `json:"category,omitempty" yaml:"category,omitempty"`
	Size     int64  `json:"size" yaml:"size"`
	Stale    bool   `json:"stale,omitempty" yaml:"stale,omitempty"`
	Renamed  bool   `json:"renamed,omitempty" yaml:"renamed,omitempty"`
	Reason   string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// reportError is the serialized form of one per-entry failure.
type reportError struct {
	Path   string `json:"path" yaml:"path"`
	Op     string `json:"op" yaml:"op"`
	Reason string `json:"reason" yaml:"reason"`
}

type report struct {
	RunID       string         `json:"run_id" yaml:"run_id"`
	Root        string         `json:"root" yaml:"root"`
	Status      string         `json:"status" yaml:"status"`
	Simulated   bool           `json:"simulated" yaml:"simulated"`
	StartedAt   string         `json:"started_at" yaml:"started_at"`
	Duration    string         `json:"duration" yaml:"duration"`
	LogPath     string         `json:"log_path,omitempty" yaml:"log_path,omitempty"`
	Moved       []reportAction `json:"moved" yaml:"moved"`
	Deleted     []reportAction `json:"deleted" yaml:"deleted"`
	Kept        []reportAction `json:"kept" yaml:"kept"`
	Skipped     []reportAction `json:"skipped" yaml:"skipped"`
	Errors      []reportError  `json:"errors" yaml:"errors"`
	MovedSize   int64          `json:"moved_size" yaml:"moved_size"`
	DeletedSize int64          `json:"deleted_size" yaml:"deleted_size"`
	ByCategory  map[string]int `json:"by_category" yaml:"by_category"`
}

func buildReport(result *organizer.Result) *report {
	rep := &report{
		RunID:       result.RunID,
		Root:        result.Root,
		Status:      result.Status.String(),
		Simulated:   result.Simulated,
		StartedAt:   result.StartedAt.Format(time.RFC3339),
		Duration:    result.Duration.Round(time.Millisecond).String(),
		LogPath:     result.LogPath,
		Moved:       toReportActions(result.Moved),
		Deleted:     toReportActions(result.Deleted),
		Kept:        toReportActions(result.Kept),
		Skipped:     toReportActions(result.Skipped),
		Errors:      make([]reportError, 0, len(result.Errors)),
		MovedSize:   result.MovedSize,
		DeletedSize: result.DeletedSize,
		ByCategory:  result.ByCategory,
	}

	for _, e := range result.Errors {
		rep.Errors = append(rep.Errors, reportError{
			Path:   e.Path,
			Op:     string(e.Op),
			Reason: e.Reason.String(),
		})
	}

	return rep
}

func toReportActions(actions []organizer.Action) []reportAction {
	out := make([]reportAction, 0, len(actions))
	for _, a := range actions {
		out = append(out, reportAction{
			Name:     a.Name,
			Source:   a.Source,
			Dest:     a.Dest,
			Category: a.Category,
			Size:     a.Size,
			Stale:    a.Stale,
			Renamed:  a.Renamed,
			Reason:   a.Reason,
		})
	}
	return out
}

func sortedCategories(counts map[string]int) []string {
	categories := make([]string, 0, len(counts))
	for c := range counts {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	return categories
}
