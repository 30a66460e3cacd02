package library

import "time"

// referenceEpoch is the Core Data reference instant (2001-01-01T00:00:00Z).
// Date columns in the Podcasts database hold seconds relative to this, not
// the Unix epoch.
var referenceEpoch = time.Date(2001, time.January, 1, 0, 0, 0, 0, time.UTC)

// timeFromReference converts a Core Data timestamp to a normalized time.
// The zero time is returned when the column was NULL.
func timeFromReference(seconds float64, valid bool) time.Time {
	if !valid {
		return time.Time{}
	}
	whole := int64(seconds)
	frac := seconds - float64(whole)
	return referenceEpoch.Add(time.Duration(whole)*time.Second + time.Duration(frac*float64(time.Second)))
}
