// Package progress holds the pure completion and percentage rules shared by the
// completion engine and the progress reporter. Both paths derive module and course
// completion through Complete so they can never disagree.
package progress

import "math"

// Counts is the raw material every progress figure is derived from.
type Counts struct {
	TotalLessons     int64
	CompletedLessons int64
	TotalModules     int64
	CompletedModules int64
}

// Complete reports whether a parent with total children is complete once done of
// them are. A parent without children is never complete.
func Complete(total, done int64) bool {
	return total > 0 && done >= total
}

// Ratio is done/total clamped to [0,1]. A zero denominator yields 0.
func Ratio(done, total int64) float64 {
	if total <= 0 {
		return 0
	}
	r := float64(done) / float64(total)
	switch {
	case r < 0:
		return 0
	case r > 1:
		return 1
	default:
		return r
	}
}

// Percent is the unweighted mean of the lesson ratio and the module ratio scaled to
// [0,100]. An empty side still takes part in the mean and contributes 0.
func Percent(c Counts) float64 {
	return (Ratio(c.CompletedLessons, c.TotalLessons) + Ratio(c.CompletedModules, c.TotalModules)) / 2 * 100
}

// PercentInt truncates Percent toward zero and clamps it to [0,100].
func PercentInt(c Counts) int {
	p := math.Trunc(Percent(c))
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	default:
		return int(p)
	}
}

// CourseComplete applies Complete to the module counts.
func (c Counts) CourseComplete() bool {
	return Complete(c.TotalModules, c.CompletedModules)
}

// ModulePercent is the integer module-only percentage used in course listings.
func ModulePercent(completed, total int64) int64 {
	if total <= 0 {
		return 0
	}
	if completed > total {
		completed = total
	}
	return completed * 100 / total
}
