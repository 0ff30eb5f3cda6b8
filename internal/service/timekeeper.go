package service

import (
	"time"

	"github.com/AtizaD/school-assessment-system-sub006/internal/model"
)

// PartialResetWindow is the fixed duration granted by a "partial" reset,
// regardless of the assessment's nominal duration.
const PartialResetWindow = 5 * time.Minute

// EffectiveDuration resolves the time limit that applies to a student's
// attempt. A zero duration means untimed.
func EffectiveDuration(assessment *model.Assessment, reset *model.AssessmentReset) time.Duration {
	if reset != nil && reset.ResetType == model.ResetTypePartial {
		return PartialResetWindow
	}
	if assessment.Duration == nil || *assessment.Duration <= 0 {
		return 0
	}
	return time.Duration(*assessment.Duration) * time.Minute
}

// Remaining computes the seconds left on an attempt against the server
// clock. Terminal attempts report zero without recomputation. The second
// return value is false for untimed attempts, whose remaining value is
// meaningless and for which forced expiry must never fire.
func Remaining(attempt *model.Attempt, assessment *model.Assessment, reset *model.AssessmentReset, now time.Time) (int64, bool) {
	if attempt.IsTerminal() {
		return 0, true
	}
	duration := EffectiveDuration(assessment, reset)
	if duration == 0 {
		return 0, false
	}
	deadline := attempt.StartTime.Add(duration)
	remaining := deadline.Sub(now)
	if remaining <= 0 {
		return 0, true
	}
	return int64(remaining.Seconds()), true
}

// ClockSync is the response of the clock echo. The server clock stays
// authoritative; the offset exists purely for client display correction.
type ClockSync struct {
	ServerTimestamp int64 `json:"serverTimestamp"`
	OffsetMs        int64 `json:"offsetMs"`
}

// SyncClock echoes the server time (unix milliseconds) and the
// difference from the supplied client timestamp.
func SyncClock(clientTimestamp int64, now time.Time) ClockSync {
	server := now.UnixMilli()
	return ClockSync{
		ServerTimestamp: server,
		OffsetMs:        server - clientTimestamp,
	}
}
