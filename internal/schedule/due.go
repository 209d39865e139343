package schedule

import "time"

// DefaultTolerance matches the default sweep period so that under ideal
// timing every trigger instant is covered by exactly one tick, and by at
// most two under worst-case jitter.
const DefaultTolerance = 60 * time.Second

// TriggerInstant returns the ideal moment a reminder with the given offset
// should fire: the event instant minus the offset. Offsets are always
// subtracted, so a reminder never fires after its event.
func TriggerInstant(eventInstant time.Time, offset time.Duration) time.Time {
	return eventInstant.Add(-offset)
}

// IsDue reports whether now falls within tolerance of the reminder's trigger
// instant. Both early and late deltas count as due, to tolerate scheduler
// jitter; the boundary at exactly tolerance is inclusive. Pure function:
// identical inputs always yield the same answer.
func IsDue(eventInstant time.Time, offset time.Duration, now time.Time, tolerance time.Duration) bool {
	delta := now.Sub(TriggerInstant(eventInstant, offset))
	if delta < 0 {
		delta = -delta
	}
	return delta <= tolerance
}
