package age

import "time"

// AgeData returns how long ago since was, and false when since is unset.
// Future timestamps clamp to zero.
func AgeData(since time.Time, now time.Time) (time.Duration, bool) {
	if since.IsZero() {
		return 0, false
	}
	age := now.Sub(since)
	if age < 0 {
		age = 0
	}
	return age, true
}

// UntilData returns how long remains until deadline, and false when
// deadline is unset. The result is negative once deadline has passed.
func UntilData(deadline time.Time, now time.Time) (time.Duration, bool) {
	if deadline.IsZero() {
		return 0, false
	}
	return deadline.Sub(now), true
}
