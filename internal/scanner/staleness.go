package scanner

import "time"

// DaysPerMonth is the fixed month length used when converting a
// whole-month threshold into a duration.
const DaysPerMonth = 30

// ReferenceLayout is how reference timestamps appear in prompts and
// the run log.
const ReferenceLayout = "2006-01-02 15:04:05"

// Verdict is the outcome of a staleness evaluation.
type Verdict struct {
	Stale     bool
	Reference time.Time
	Age       time.Duration
}

// ThresholdFromMonths converts whole months to a duration, counting
// every month as exactly 30 days.
func ThresholdFromMonths(months int) time.Duration {
	return time.Duration(months) * DaysPerMonth * 24 * time.Hour
}

// Evaluate reports whether an entry is at least threshold old at the
// given instant. The reference timestamp is the entry's recorded last
// modification; access times are too unreliable under relatime mounts
// to drive the verdict. Entries whose metadata could not be read never
// evaluate stale.
func Evaluate(e Entry, threshold time.Duration, now time.Time) Verdict {
	if e.StatErr != nil {
		return Verdict{}
	}

	ref := e.ModTime
	age := now.Sub(ref)
	return Verdict{
		Stale:     age >= threshold,
		Reference: ref,
		Age:       age,
	}
}

// FormatReference renders a reference timestamp for prompts and logs.
func FormatReference(t time.Time) string {
	return t.Format(ReferenceLayout)
}
