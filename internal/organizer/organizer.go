// Package organizer runs the single synchronous pass over one
// directory: classify and file every child into its category folder,
// resolve stale files through a decision source, trash what the user
// gives up, and record every action in the run log.
package organizer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/elise-bgn/DownloadsCleaner/internal/config"
	"github.com/elise-bgn/DownloadsCleaner/internal/decision"
	"github.com/elise-bgn/DownloadsCleaner/internal/fileutil"
	"github.com/elise-bgn/DownloadsCleaner/internal/logging"
	"github.com/elise-bgn/DownloadsCleaner/internal/placement"
	"github.com/elise-bgn/DownloadsCleaner/internal/platform"
	"github.com/elise-bgn/DownloadsCleaner/internal/progress"
	"github.com/elise-bgn/DownloadsCleaner/internal/runlog"
	"github.com/elise-bgn/DownloadsCleaner/internal/scanner"
	"github.com/elise-bgn/DownloadsCleaner/internal/security"
	"github.com/elise-bgn/DownloadsCleaner/internal/trash"
)

// Organizer performs organization passes over a target directory.
type Organizer struct {
	cfg      *config.Config
	root     string
	planner  *placement.Planner
	guard    *security.Guard
	source   decision.Source
	trasher  trash.Trasher
	sink     runlog.Sink
	reporter *progress.Reporter
	logger   logging.Logger
	clock    func() time.Time
}

// New creates an Organizer from configuration. An empty target
// directory resolves to the platform downloads folder. Live runs get a
// platform trash bin; simulate runs never delete, so they get none.
func New(cfg *config.Config) (*Organizer, error) {
	root := cfg.TargetDir
	if root == "" {
		info, err := platform.GetInfo()
		if err != nil {
			return nil, err
		}
		root = info.DownloadsDir
	}

	registry, err := cfg.Registry()
	if err != nil {
		return nil, err
	}

	o := &Organizer{
		cfg:      cfg,
		root:     root,
		planner:  placement.New(root, registry),
		guard:    security.NewGuard(),
		reporter: progress.NewReporter(),
		logger:   logging.Nop(),
		clock:    time.Now,
	}

	switch cfg.Decision {
	case config.DecisionKeep:
		o.source = decision.Static(decision.Keep)
	case config.DecisionDelete:
		o.source = decision.Static(decision.Delete)
	default:
		o.source = decision.NewPrompt(os.Stdin, os.Stderr)
	}

	if !cfg.Simulate {
		bin, err := trash.NewBin()
		if err != nil {
			return nil, err
		}
		o.trasher = bin
	}

	return o, nil
}

// Root returns the resolved target directory.
func (o *Organizer) Root() string {
	return o.root
}

// SetDecisionSource replaces the stale-file decision source.
func (o *Organizer) SetDecisionSource(src decision.Source) {
	o.source = src
}

// SetTrasher replaces the trash used for deletions.
func (o *Organizer) SetTrasher(t trash.Trasher) {
	o.trasher = t
}

// SetSink replaces the run log sink. By default each live run writes a
// fresh log file into the target directory and each simulate run keeps
// its log in memory.
func (o *Organizer) SetSink(s runlog.Sink) {
	o.sink = s
}

// SetLogger sets the diagnostic logger.
func (o *Organizer) SetLogger(l logging.Logger) {
	o.logger = l
}

// SetProgressReporter sets a custom progress reporter.
func (o *Organizer) SetProgressReporter(r *progress.Reporter) {
	o.reporter = r
}

// GetProgressReporter returns the organizer's progress reporter.
func (o *Organizer) GetProgressReporter() *progress.Reporter {
	return o.reporter
}

// SetClock overrides the time source.
func (o *Organizer) SetClock(fn func() time.Time) {
	o.clock = fn
}

// Run executes one pass. Entries are processed strictly sequentially;
// the only suspension point is the decision source. Per-entry failures
// are collected on the result and never abort the pass; only a missing
// or protected root or cancellation does.
func (o *Organizer) Run(ctx context.Context) (*Result, error) {
	start := o.clock()
	result := &Result{
		RunID:      uuid.NewString(),
		Root:       o.root,
		Status:     StatusCompleted,
		Simulated:  o.cfg.Simulate,
		StartedAt:  start,
		ByCategory: make(map[string]int),
	}

	log := o.logger.With().Str("run_id", result.RunID).Str("root", o.root).Logger()
	log.Info().Bool("simulate", o.cfg.Simulate).Int("threshold_months", o.cfg.AgeThresholdMonths).Msg("organization pass starting")

	// Refuse protected roots before the sink exists so not even a run
	// log is written into the refused directory.
	if err := o.guard.ValidateRoot(o.root); err != nil {
		log.Error().Err(err).Msg("target directory refused")
		return o.finish(result, runlog.NewMemorySink(), start, StatusFailed), err
	}

	sink := o.sink
	if sink == nil {
		if o.cfg.Simulate {
			sink = runlog.NewMemorySink()
		} else {
			fileSink := runlog.NewFileSink(o.root, start)
			defer fileSink.Close()
			sink = fileSink
		}
	}

	fi, err := os.Stat(o.root)
	if err != nil || !fi.IsDir() {
		o.appendLog(sink, fmt.Sprintf("ERROR: Downloads directory '%s' not found.", o.root))
		log.Error().Msg("target directory missing")
		return o.finish(result, sink, start, StatusFailed),
			fmt.Errorf("%w: %s", ErrDirectoryNotFound, o.root)
	}

	o.appendLog(sink, "=== File Organization Started ===")

	entries, err := scanner.Snapshot(o.root)
	if err != nil {
		// The root was just there; losing it now is pass-fatal.
		o.appendLog(sink, fmt.Sprintf("ERROR: Downloads directory '%s' not found.", o.root))
		log.Error().Err(err).Msg("target directory became unreadable")
		return o.finish(result, sink, start, StatusFailed),
			fmt.Errorf("reading %s: %w", o.root, err)
	}

	o.publish(progress.PhaseScanning, "", 0, len(entries), result, start)
	log.Debug().Int("entries", len(entries)).Msg("snapshot taken")

	threshold := scanner.ThresholdFromMonths(o.cfg.AgeThresholdMonths)
	now := o.clock()

	for i, e := range entries {
		if ctx.Err() != nil {
			log.Warn().Msg("pass cancelled")
			return o.finish(result, sink, start, StatusFailed), ctx.Err()
		}

		o.publish(progress.PhaseOrganizing, e.Name, i, len(entries), result, start)

		errsBefore := len(result.Errors)
		if err := o.processEntry(ctx, e, threshold, now, i, len(entries), sink, result, log); err != nil {
			log.Warn().Err(err).Msg("pass cancelled mid-entry")
			return o.finish(result, sink, start, StatusFailed), err
		}

		// An entry failure can mean the root itself is gone. Losing the
		// root is pass-fatal; any other failure keeps going.
		if len(result.Errors) > errsBefore {
			if rfi, rerr := os.Stat(o.root); rerr != nil || !rfi.IsDir() {
				o.appendLog(sink, fmt.Sprintf("ERROR: Downloads directory '%s' not found.", o.root))
				log.Error().Msg("target directory lost mid-pass")
				return o.finish(result, sink, start, StatusFailed),
					fmt.Errorf("%w: %s", ErrDirectoryNotFound, o.root)
			}
		}
	}

	o.appendLog(sink, "=== File Organization Completed ===")
	log.Info().
		Int("moved", len(result.Moved)).
		Int("deleted", len(result.Deleted)).
		Int("kept", len(result.Kept)).
		Int("skipped", len(result.Skipped)).
		Int("errors", len(result.Errors)).
		Msg("organization pass completed")

	return o.finish(result, sink, start, StatusCompleted), nil
}

// finish stamps the result and publishes the terminal progress update.
func (o *Organizer) finish(result *Result, sink runlog.Sink, start time.Time, status Status) *Result {
	result.Status = status
	result.Duration = o.clock().Sub(start)
	result.LogPath = sink.Path()

	phase := progress.PhaseComplete
	if status == StatusFailed {
		phase = progress.PhaseError
	}
	o.publish(phase, "", len(result.Moved)+len(result.Deleted)+len(result.Skipped), 0, result, start)

	return result
}

// processEntry runs the full per-entry pipeline: skip rules, staleness,
// disposition, placement, move. processed and total locate the entry in
// the pass for progress updates. The returned error is non-nil only for
// cancellation; everything else is recorded and survives.
func (o *Organizer) processEntry(ctx context.Context, e scanner.Entry, threshold time.Duration, now time.Time, processed, total int, sink runlog.Sink, result *Result, log logging.Logger) error {
	// The run's own artifacts stay put, or the pass would relocate the
	// log it is writing.
	if !e.IsDir && runlog.IsArtifact(e.Name) {
		o.skip(e, "run log artifact", result, log)
		return nil
	}

	// Destination folders from this or earlier runs are never
	// reorganized, which keeps repeated passes idempotent.
	if e.IsDir && o.planner.IsReserved(e.Name) {
		o.skip(e, "destination folder", result, log)
		return nil
	}

	if o.excludedName(e.Name) {
		o.skip(e, "matches exclude pattern", result, log)
		return nil
	}

	// Unreadable metadata: the entry stays in place.
	if e.StatErr != nil {
		o.recordError(CategorizeError(e.Path, OpStat, e.StatErr), sink, result, log)
		return nil
	}

	// Only files age out. Directories move as opaque units regardless
	// of their timestamps.
	if !e.IsDir {
		verdict := scanner.Evaluate(e, threshold, now)
		if verdict.Stale {
			// Deciding can block on the user; the update keeps the loop
			// position so progress displays do not reset during prompts.
			o.publish(progress.PhaseDeciding, e.Name, processed, total, result, result.StartedAt)

			disp, err := o.source.Decide(ctx, decision.Request{
				Path:      e.Path,
				Name:      e.Name,
				Size:      e.Size,
				Reference: verdict.Reference,
				Age:       verdict.Age,
			})
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				// An unanswerable question never costs a file.
				log.Warn().Err(err).Str("name", e.Name).Msg("decision source failed, keeping file")
				disp = decision.Keep
			}

			if disp == decision.Delete {
				if o.deleteEntry(ctx, e, sink, result, log) {
					return nil
				}
				// Deletion failed; fall through to placement as kept.
			} else {
				o.appendLog(sink, "Kept: "+e.Path)
				result.Kept = append(result.Kept, Action{
					Name:   e.Name,
					Source: e.Path,
					Size:   e.Size,
					Stale:  true,
				})
				log.Debug().Str("name", e.Name).Msg("stale file kept")
			}
		}
	}

	o.placeEntry(e, sink, result, log)
	return nil
}

// deleteEntry sends a stale file to the trash. It reports whether the
// entry is fully handled; false means the caller should fall back to
// filing it.
func (o *Organizer) deleteEntry(ctx context.Context, e scanner.Entry, sink runlog.Sink, result *Result, log logging.Logger) bool {
	if o.cfg.Simulate {
		o.appendLog(sink, "Deleted: "+e.Path)
		result.Deleted = append(result.Deleted, Action{
			Name:   e.Name,
			Source: e.Path,
			Size:   e.Size,
			Stale:  true,
		})
		result.DeletedSize += e.Size
		log.Debug().Str("name", e.Name).Msg("simulated deletion")
		return true
	}

	if o.trasher == nil {
		o.recordError(&EntryError{
			Path:     e.Path,
			Op:       OpTrash,
			Reason:   ErrorUnknown,
			Original: fmt.Errorf("no trash available"),
		}, sink, result, log)
		return false
	}

	rec, err := o.trasher.Trash(ctx, e.Path)
	if err != nil {
		o.recordError(CategorizeError(e.Path, OpTrash, err), sink, result, log)
		return false
	}

	o.appendLog(sink, "Deleted: "+e.Path)
	result.Deleted = append(result.Deleted, Action{
		Name:   e.Name,
		Source: e.Path,
		Dest:   rec.TrashedPath,
		Size:   e.Size,
		Stale:  true,
	})
	result.DeletedSize += e.Size
	log.Debug().Str("name", e.Name).Str("trashed_to", rec.TrashedPath).Msg("file trashed")
	return true
}

// placeEntry files an entry into its category folder.
func (o *Organizer) placeEntry(e scanner.Entry, sink runlog.Sink, result *Result, log logging.Logger) {
	plan, err := o.planner.PlanFor(e)
	if err != nil {
		o.recordError(CategorizeError(e.Path, OpPlan, err), sink, result, log)
		return
	}

	if !o.cfg.Simulate {
		if err := fileutil.EnsureDir(plan.Dir); err != nil {
			o.recordError(CategorizeError(e.Path, OpMove, err), sink, result, log)
			return
		}
		if err := moveEntry(e, plan.Path); err != nil {
			o.recordError(CategorizeError(e.Path, OpMove, err), sink, result, log)
			return
		}
	}

	o.appendLog(sink, fmt.Sprintf("Moved: %s → %s", e.Path, plan.Path))
	result.Moved = append(result.Moved, Action{
		Name:     e.Name,
		Source:   e.Path,
		Dest:     plan.Path,
		Category: plan.Category,
		Size:     e.Size,
		Renamed:  plan.Renamed,
	})
	result.MovedSize += e.Size
	result.ByCategory[plan.Category]++
	log.Debug().Str("name", e.Name).Str("category", plan.Category).Str("dest", plan.Path).Msg("entry filed")
}

// moveEntry relocates one entry. Files survive cross-device moves;
// directories move as opaque units and only within one filesystem.
func moveEntry(e scanner.Entry, destPath string) error {
	if e.IsDir {
		return os.Rename(e.Path, destPath)
	}
	return fileutil.MoveFile(e.Path, destPath)
}

// skip records a deliberately untouched entry.
func (o *Organizer) skip(e scanner.Entry, reason string, result *Result, log logging.Logger) {
	result.Skipped = append(result.Skipped, Action{
		Name:   e.Name,
		Source: e.Path,
		Size:   e.Size,
		Reason: reason,
	})
	log.Debug().Str("name", e.Name).Str("reason", reason).Msg("entry skipped")
}

// recordError logs a per-entry failure to both the run log and the
// diagnostic logger.
func (o *Organizer) recordError(entryErr *EntryError, sink runlog.Sink, result *Result, log logging.Logger) {
	result.Errors = append(result.Errors, entryErr)
	o.appendLog(sink, fmt.Sprintf("ERROR: Failed to %s: %s (%v)", entryErr.Op, entryErr.Path, entryErr.Original))
	log.Warn().Err(entryErr.Original).Str("op", string(entryErr.Op)).Str("path", entryErr.Path).Msg("entry failed")
}

// appendLog writes one run-log line. A sink failure must not take the
// pass down with it.
func (o *Organizer) appendLog(sink runlog.Sink, message string) {
	if err := sink.Append(message); err != nil {
		o.logger.Warn().Err(err).Str("message", message).Msg("run log write failed")
	}
}

// excludedName reports whether a name matches a configured exclude
// pattern.
func (o *Organizer) excludedName(name string) bool {
	for _, pattern := range o.cfg.ExcludePatterns {
		if ok, err := filepath.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}

// publish emits a progress update when a reporter is attached.
func (o *Organizer) publish(phase progress.Phase, current string, processed, total int, result *Result, start time.Time) {
	if o.reporter == nil {
		return
	}
	o.reporter.Publish(progress.Update{
		Phase:       phase,
		CurrentName: current,
		Processed:   processed,
		Total:       total,
		Moved:       len(result.Moved),
		Deleted:     len(result.Deleted),
		Kept:        len(result.Kept),
		Skipped:     len(result.Skipped),
		MovedSize:   result.MovedSize,
		DeletedSize: result.DeletedSize,
		StartTime:   start,
	})
}
