package logging

import "time"

const logTimestampLayout = "2006-01-02 15:04:05"

// formatTimestamp renders console timestamps in local time; JSON records keep UTC RFC3339.
func formatTimestamp(ts time.Time) string {
	if ts.IsZero() {
		return time.Now().In(time.Local).Format(logTimestampLayout)
	}
	return ts.In(time.Local).Format(logTimestampLayout)
}
