package datemath

import (
	"strings"
	"time"
)

// SpanForStatus infers a start/end date pair for a task from its status and
// description, relative to base. Completed work is assumed to have just
// ended, with the start pushed back further for research- or build-heavy
// descriptions; in-progress work started yesterday and runs a couple of
// days; upcoming work starts tomorrow; anything held gets a week of slack.
func (p *Parser) SpanForStatus(description, status string, base time.Time) (time.Time, time.Time) {
	today := p.startOfDay(base)
	desc := strings.ToLower(description)

	switch status {
	case "Complete":
		end := today
		start := today.AddDate(0, 0, -1)
		if containsAny(desc, "research", "analysis", "study") {
			start = today.AddDate(0, 0, -3)
		} else if containsAny(desc, "implement", "build", "create", "develop") {
			start = today.AddDate(0, 0, -5)
		}
		return start, end

	case "In Progress":
		return today.AddDate(0, 0, -1), today.AddDate(0, 0, 2)

	case "Upcoming":
		return today.AddDate(0, 0, 1), today.AddDate(0, 0, 5)

	default: // On Hold and anything unrecognized
		return today, today.AddDate(0, 0, 7)
	}
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
