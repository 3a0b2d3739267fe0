package datemath

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Parser resolves the relative date phrases that show up in status updates
// ("yesterday", "last friday", "in 2 weeks") against a base time, in a
// fixed timezone.
type Parser struct {
	location *time.Location
}

// NewParser creates a parser for the given IANA timezone, e.g. "UTC" or
// "Asia/Ho_Chi_Minh".
func NewParser(timezone string) (*Parser, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return &Parser{location: loc}, nil
}

var weekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

var (
	inRe  = regexp.MustCompile(`^in (\d+) (day|days|week|weeks|month|months)$`)
	agoRe = regexp.MustCompile(`^(\d+) (day|days|week|weeks|month|months) ago$`)
)

// Parse resolves a relative date phrase to the start of the day it names.
// Unrecognized phrases return an error so callers can fall back to their
// own date inference.
func (p *Parser) Parse(phrase string, base time.Time) (time.Time, error) {
	phrase = strings.ToLower(strings.TrimSpace(phrase))

	switch phrase {
	case "today":
		return p.startOfDay(base), nil
	case "tomorrow":
		return p.startOfDay(base.AddDate(0, 0, 1)), nil
	case "yesterday":
		return p.startOfDay(base.AddDate(0, 0, -1)), nil
	case "next week":
		return p.startOfDay(base.AddDate(0, 0, 7)), nil
	case "last week":
		return p.startOfDay(base.AddDate(0, 0, -7)), nil
	}

	if day, ok := strings.CutPrefix(phrase, "next "); ok {
		return p.nearestWeekday(day, base, 1)
	}
	if day, ok := strings.CutPrefix(phrase, "last "); ok {
		return p.nearestWeekday(day, base, -1)
	}

	if m := inRe.FindStringSubmatch(phrase); m != nil {
		return p.shift(base, m[1], m[2], 1), nil
	}
	if m := agoRe.FindStringSubmatch(phrase); m != nil {
		return p.shift(base, m[1], m[2], -1), nil
	}

	return time.Time{}, fmt.Errorf("unrecognized date phrase %q", phrase)
}

// nearestWeekday finds the named weekday strictly after (dir > 0) or
// strictly before (dir < 0) the base day.
func (p *Parser) nearestWeekday(name string, base time.Time, dir int) (time.Time, error) {
	target, ok := weekdays[name]
	if !ok {
		return time.Time{}, fmt.Errorf("unknown weekday %q", name)
	}

	delta := int(target - base.Weekday())
	if dir > 0 && delta <= 0 {
		delta += 7
	}
	if dir < 0 && delta >= 0 {
		delta -= 7
	}
	return p.startOfDay(base.AddDate(0, 0, delta)), nil
}

func (p *Parser) shift(base time.Time, amount, unit string, dir int) time.Time {
	n, _ := strconv.Atoi(amount)
	n *= dir
	switch {
	case strings.HasPrefix(unit, "day"):
		return p.startOfDay(base.AddDate(0, 0, n))
	case strings.HasPrefix(unit, "week"):
		return p.startOfDay(base.AddDate(0, 0, n*7))
	default:
		return p.startOfDay(base.AddDate(0, n, 0))
	}
}

// startOfDay returns midnight at the start of the given day in the
// parser's timezone.
func (p *Parser) startOfDay(t time.Time) time.Time {
	t = t.In(p.location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, p.location)
}
