// FilePath: internal/timefmt/timefmt.go

// Package timefmt renders instants in the fixed display timezone used by
// every human-facing view (Taipei, UTC+8, no DST).
package timefmt

import "time"

// DisplayZone is the fixed zone all instants are rendered in.
var DisplayZone = time.FixedZone("Asia/Taipei", 8*60*60)

const layout = "2006-01-02 15:04:05"

// Format converts t to the display timezone and renders it as
// "YYYY-MM-DD HH:MM:SS". A zero time yields an empty string.
func Format(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(DisplayZone).Format(layout)
}

// Now returns the current instant formatted like Format. It is only used
// for display metadata such as the export page footer, never persisted.
func Now() string {
	return time.Now().In(DisplayZone).Format(layout)
}
