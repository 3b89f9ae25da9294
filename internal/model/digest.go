package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultDigestSchedule is Monday at 09:00.
const DefaultDigestSchedule = "0 9 * * 1"

// ErrInvalidSchedule is returned for a digest schedule cron cannot parse.
var ErrInvalidSchedule = errors.New("invalid digest schedule")

// NextDigest returns the first digest time strictly after t, in t's location.
func (p Preferences) NextDigest(t time.Time) (time.Time, error) {
	sched, err := cron.ParseStandard(p.DigestSchedule)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: %v", ErrInvalidSchedule, p.DigestSchedule, err)
	}
	return sched.Next(t), nil
}

// DigestSummary is the one-line weekly digest.
func DigestSummary(s TaskStats) string {
	return fmt.Sprintf("Weekly digest: %d of %d tasks completed, %d in progress, %d pending",
		s.Completed, s.Total, s.InProgress, s.Pending)
}
