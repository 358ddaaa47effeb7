package decision

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestDispositionString(t *testing.T) {
	cases := []struct {
		d    Disposition
		want string
	}{
		{Keep, "keep"},
		{Delete, "delete"},
		{Disposition(42), "unknown"},
	}
	for _, c := range cases {
		if got := c.d.String(); got != c.want {
			t.Errorf("Disposition(%d).String() = %q, want %q", c.d, got, c.want)
		}
	}
}

func TestStatic(t *testing.T) {
	ctx := context.Background()
	req := Request{Path: "/tmp/old.pdf"}

	if got, err := Static(Keep).Decide(ctx, req); err != nil || got != Keep {
		t.Errorf("Static(Keep) = (%v, %v), want (Keep, nil)", got, err)
	}
	if got, err := Static(Delete).Decide(ctx, req); err != nil || got != Delete {
		t.Errorf("Static(Delete) = (%v, %v), want (Delete, nil)", got, err)
	}
}

func TestFuncAdapter(t *testing.T) {
	var seen Request
	src := Func(func(_ context.Context, req Request) (Disposition, error) {
		seen = req
		return Delete, nil
	})

	req := Request{Path: "/tmp/a", Name: "a", Size: 12}
	got, err := src.Decide(context.Background(), req)
	if err != nil {
		t.Fatalf("Decide failed: %v", err)
	}
	if got != Delete {
		t.Errorf("expected Delete, got %v", got)
	}
	if seen.Path != req.Path || seen.Size != req.Size {
		t.Errorf("request not forwarded: %+v", seen)
	}
}

// =============================================================================
// Prompt Tests
// =============================================================================

func promptRequest() Request {
	ref := time.Date(2025, 4, 1, 10, 22, 11, 0, time.UTC)
	return Request{
		Path:      "/downloads/report.pdf",
		Name:      "report.pdf",
		Size:      2048,
		Reference: ref,
		Age:       120 * 24 * time.Hour,
	}
}

func TestPromptAnswers(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  Disposition
	}{
		{"yes keeps", "y\n", Keep},
		{"yes word keeps", "yes\n", Keep},
		{"empty line keeps", "\n", Keep},
		{"no deletes", "n\n", Delete},
		{"no word deletes", "no\n", Delete},
		{"uppercase no deletes", "NO\n", Delete},
		{"padded no deletes", "  n  \n", Delete},
		{"garbage keeps", "whatever\n", Keep},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewPrompt(strings.NewReader(c.input), &out)

			got, err := p.Decide(context.Background(), promptRequest())
			if err != nil {
				t.Fatalf("Decide failed: %v", err)
			}
			if got != c.want {
				t.Errorf("answer %q: got %v, want %v", c.input, got, c.want)
			}
		})
	}
}

func TestPromptShowsFileDetails(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompt(strings.NewReader("y\n"), &out)

	if _, err := p.Decide(context.Background(), promptRequest()); err != nil {
		t.Fatalf("Decide failed: %v", err)
	}

	text := out.String()
	if !strings.Contains(text, "Do you want to keep this file?") {
		t.Errorf("prompt missing question: %q", text)
	}
	if !strings.Contains(text, "/downloads/report.pdf") {
		t.Errorf("prompt missing path: %q", text)
	}
	if !strings.Contains(text, "Last used: 2025-04-01 10:22:11") {
		t.Errorf("prompt missing last-used timestamp: %q", text)
	}
}

func TestPromptClosedInputKeeps(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompt(strings.NewReader(""), &out)

	got, err := p.Decide(context.Background(), promptRequest())
	if err != nil {
		t.Fatalf("closed input should not error: %v", err)
	}
	if got != Keep {
		t.Errorf("closed input should keep, got %v", got)
	}
}

func TestPromptCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	p := NewPrompt(strings.NewReader("n\n"), &out)

	got, err := p.Decide(ctx, promptRequest())
	if err == nil {
		t.Error("expected context error")
	}
	if got != Keep {
		t.Errorf("cancelled prompt should keep, got %v", got)
	}
}

func TestPromptSequentialAnswers(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompt(strings.NewReader("n\ny\nn\n"), &out)

	want := []Disposition{Delete, Keep, Delete}
	for i, w := range want {
		got, err := p.Decide(context.Background(), promptRequest())
		if err != nil {
			t.Fatalf("Decide %d failed: %v", i, err)
		}
		if got != w {
			t.Errorf("answer %d: got %v, want %v", i, got, w)
		}
	}
}
