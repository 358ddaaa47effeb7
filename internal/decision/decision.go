// Package decision answers the one question the organizer cannot answer
// alone: keep a stale file or delete it. Sources are injectable so the
// interactive UI, the command line flags and the tests can all supply
// their own policy.
package decision

import (
	"context"
	"time"
)

// Disposition is the verdict for a single stale file.
type Disposition int

const (
	// Keep files the entry like any fresh one.
	Keep Disposition = iota
	// Delete sends the entry to the trash.
	Delete
)

func (d Disposition) String() string {
	switch d {
	case Keep:
		return "keep"
	case Delete:
		return "delete"
	default:
		return "unknown"
	}
}

// Request describes one stale file awaiting a verdict.
type Request struct {
	// Path is the absolute path of the file.
	Path string

	// Name is the base name, for compact prompts.
	Name string

	// Size in bytes.
	Size int64

	// Reference is the timestamp the staleness call was based on.
	Reference time.Time

	// Age is how far in the past Reference lies.
	Age time.Duration
}

// Source decides what happens to a stale file. Implementations must be
// safe to call sequentially; the organizer never asks concurrently.
type Source interface {
	Decide(ctx context.Context, req Request) (Disposition, error)
}

// Func adapts a plain function to the Source interface.
type Func func(ctx context.Context, req Request) (Disposition, error)

// Decide implements Source.
func (f Func) Decide(ctx context.Context, req Request) (Disposition, error) {
	return f(ctx, req)
}

// Static returns a source that always answers d.
func Static(d Disposition) Source {
	return Func(func(context.Context, Request) (Disposition, error) {
		return d, nil
	})
}
