package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLevelAllBranches(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"trace", "trace"},
		{"debug", "debug"},
		{"info", "info"},
		{"warn", "warn"},
		{"warning", "warn"},
		{"error", "error"},
		{"fatal", "fatal"},
		{"", "info"},
		{"   nonsense   ", "info"},
	}
	for _, c := range cases {
		lvl := parseLevel(c.in)
		if strings.ToLower(lvl.String()) != c.want {
			t.Fatalf("parseLevel(%q) = %q, want %q", c.in, lvl, c.want)
		}
	}
}

func TestNewConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "debug", Format: "console", Writer: &buf})

	log.Info().Str("name", "photo.jpg").Msg("classified")

	out := buf.String()
	if !strings.Contains(out, "classified") {
		t.Errorf("expected message in output, got: %q", out)
	}
	if !strings.Contains(out, "photo.jpg") {
		t.Errorf("expected field value in output, got: %q", out)
	}
}

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "debug", Format: "json", Writer: &buf})

	log.Info().Str("name", "photo.jpg").Msg("classified")

	out := buf.String()
	if !strings.Contains(out, `"message":"classified"`) {
		t.Errorf("expected JSON message key, got: %q", out)
	}
	if !strings.Contains(out, `"name":"photo.jpg"`) {
		t.Errorf("expected JSON field, got: %q", out)
	}
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "warn", Format: "json", Writer: &buf})

	log.Debug().Msg("hidden")
	log.Warn().Msg("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line should be suppressed at warn level: %q", out)
	}
	if !strings.Contains(out, "visible") {
		t.Errorf("warn line should be emitted: %q", out)
	}
}

func TestNamedAddsComponent(t *testing.T) {
	named := Named("organizer")
	if named == nil {
		t.Fatal("Named returned nil")
	}

	// Empty component falls back to the root logger.
	if Named("") != Get() {
		t.Error("Named(\"\") should return the root logger")
	}
}

func TestNopStaysSilent(t *testing.T) {
	log := Nop()
	log.Error().Msg("nothing to see")
}
