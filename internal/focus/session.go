// Package focus keeps the record of completed focus sessions and answers
// the rolling-window questions the stat views ask: how much time today,
// how much over the trailing week. Totals are pure reductions over the
// canonical collection, recomputed on every call.
package focus

import (
	"fmt"
	"time"
)

// Session is one finished stretch of focused work. Duration is always
// derived from the two timestamps, never stored. Nothing enforces
// EndTime > StartTime; a negative duration flows through the totals as-is.
type Session struct {
	ID        string    `yaml:"id" json:"id"`
	Tag       string    `yaml:"tag" json:"tag"`
	StartTime time.Time `yaml:"start_time" json:"startTime"`
	EndTime   time.Time `yaml:"end_time" json:"endTime"`
}

// Duration returns EndTime minus StartTime.
func (s Session) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}

// FormatDuration renders d the way the stat views display it: hours and
// minutes for long stretches, minutes and seconds below an hour, bare
// seconds below a minute.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		return "-" + FormatDuration(-d)
	}
	d = d.Round(time.Second)
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	sec := int(d % time.Minute / time.Second)
	switch {
	case h > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case m > 0:
		return fmt.Sprintf("%dm %ds", m, sec)
	default:
		return fmt.Sprintf("%ds", sec)
	}
}
