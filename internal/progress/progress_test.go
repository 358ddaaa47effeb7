package progress

import (
	"strings"
	"testing"
	"time"
)

func TestPublishAndCurrent(t *testing.T) {
	r := NewReporter()

	if r.Current() != nil {
		t.Error("expected nil before first publish")
	}

	r.Publish(Update{Phase: PhaseScanning, Total: 7})

	cur := r.Current()
	if cur == nil {
		t.Fatal("expected an update after publish")
	}
	if cur.Phase != PhaseScanning || cur.Total != 7 {
		t.Errorf("unexpected current update: %+v", cur)
	}
}

func TestSubscribeReceivesUpdates(t *testing.T) {
	r := NewReporter()
	ch := r.Subscribe()

	r.Publish(Update{Phase: PhaseOrganizing, Processed: 3, Total: 10})

	select {
	case u := <-ch:
		if u.Processed != 3 {
			t.Errorf("expected Processed 3, got %d", u.Processed)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for update")
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	r := NewReporter()
	ch := r.Subscribe()
	r.Unsubscribe(ch)

	if _, ok := <-ch; ok {
		t.Error("expected closed channel after unsubscribe")
	}

	// Publishing after unsubscribe must not panic.
	r.Publish(Update{Phase: PhaseComplete})
}

func TestPublishDoesNotBlockOnFullListener(t *testing.T) {
	r := NewReporter()
	r.Subscribe() // never drained

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			r.Publish(Update{Phase: PhaseOrganizing, Processed: i})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a full listener channel")
	}
}

func TestFormatUpdate(t *testing.T) {
	start := time.Now()

	cases := []struct {
		name   string
		update *Update
		want   string
	}{
		{"nil", nil, "Initializing"},
		{"scanning", &Update{Phase: PhaseScanning, Total: 12, StartTime: start}, "Found 12 entries"},
		{"deciding", &Update{Phase: PhaseDeciding, CurrentName: "old.pdf"}, "old.pdf"},
		{"organizing", &Update{Phase: PhaseOrganizing, Processed: 5, Total: 10, Moved: 4, Deleted: 1, StartTime: start}, "5/10 entries (50%)"},
		{"complete", &Update{Phase: PhaseComplete, Moved: 4, Deleted: 1, Kept: 2, StartTime: start}, "4 moved, 1 deleted, 2 kept"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := FormatUpdate(c.update)
			if !strings.Contains(got, c.want) {
				t.Errorf("FormatUpdate = %q, want substring %q", got, c.want)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{5 * time.Second, "5s"},
		{90 * time.Second, "1m30s"},
		{3*time.Hour + 4*time.Minute + 5*time.Second, "3h4m5s"},
		{0, "0s"},
	}

	for _, c := range cases {
		if got := FormatDuration(c.d); got != c.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", c.d, got, c.want)
		}
	}
}
