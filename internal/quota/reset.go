// Package quota computes how long to wait for a vendor API quota reset.
//
// The vendor reports quota exhaustion as free text in its request logs
// ("Daily quota exceeded, resets 9pm (Asia/Jerusalem)"). ParseResetMessage
// pulls the reset wall-clock time out of that text and SecondsUntilReset
// turns it into a wait duration, resolving the zone's real UTC offset for
// the target date so DST transitions are handled correctly.
package quota

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrBadZone marks an unresolvable IANA time zone name. This is a
// configuration problem, not a log parsing problem.
var ErrBadZone = errors.New("unknown time zone")

// ErrBadTimestamp marks a record timestamp that is not a valid absolute
// instant. Unlike an unparsable message, this halts processing of the
// record: without a valid instant no wait can be computed.
var ErrBadTimestamp = errors.New("invalid timestamp")

// ResetSpec is a parsed reset time: a 24-hour wall-clock time plus an
// optional IANA zone name. Zone is empty when the message carried none and
// the caller must supply a default.
type ResetSpec struct {
	Zone   string
	Hour   int
	Minute int
}

// resetPattern matches "resets 15:00", "resets at 9pm", "reset 9:30PM"
// with an optional parenthesized zone name.
var resetPattern = regexp.MustCompile(`(?i)\bresets?\s+(?:at\s+)?(\d{1,2})(?::([0-5]\d))?\s*(am|pm)?(?:\s*\(([^)]+)\))?`)

// ParseResetMessage extracts a reset time from free text. The second return
// value is false when the text carries no usable reset time; that is a
// normal outcome and callers should simply not act on the record.
func ParseResetMessage(text string) (ResetSpec, bool) {
	m := resetPattern.FindStringSubmatch(text)
	if m == nil {
		return ResetSpec{}, false
	}

	hour, err := strconv.Atoi(m[1])
	if err != nil {
		return ResetSpec{}, false
	}
	minute := 0
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}

	switch strings.ToLower(m[3]) {
	case "am":
		if hour < 1 || hour > 12 {
			return ResetSpec{}, false
		}
		if hour == 12 {
			hour = 0
		}
	case "pm":
		if hour < 1 || hour > 12 {
			return ResetSpec{}, false
		}
		if hour != 12 {
			hour += 12
		}
	default:
		if hour > 23 {
			return ResetSpec{}, false
		}
	}

	return ResetSpec{Hour: hour, Minute: minute, Zone: strings.TrimSpace(m[4])}, true
}

// ResolveZone loads an IANA zone by name. The error wraps ErrBadZone so
// callers can distinguish configuration problems from record problems.
func ResolveZone(name string) (*time.Location, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrBadZone, name, err)
	}
	return loc, nil
}

// SecondsUntilReset returns the number of seconds from instant until the
// next time the wall clock in loc reads hour:minute. The candidate moment
// is built with the zone's own offset rules for that calendar date, never a
// cached offset, so the result stays correct across DST transitions. A
// reset time at or before instant rolls to the next day: a quota that
// resets at 21:00 checked at exactly 21:00 has already reset.
func SecondsUntilReset(instant time.Time, hour, minute int, loc *time.Location) (int64, error) {
	if loc == nil {
		return 0, fmt.Errorf("%w: no zone provided", ErrBadZone)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("reset time %02d:%02d is out of range", hour, minute)
	}

	local := instant.In(loc)
	candidate := resetCandidate(local.Year(), local.Month(), local.Day(), hour, minute, loc)
	if !candidate.After(instant) {
		next := local.AddDate(0, 0, 1)
		candidate = resetCandidate(next.Year(), next.Month(), next.Day(), hour, minute, loc)
	}

	secs := int64(candidate.Sub(instant) / time.Second)
	if secs < 0 {
		secs = 0
	}
	return secs, nil
}

// resetCandidate builds the instant at which the wall clock in loc reads
// hour:minute on the given calendar date. A spring-forward transition can
// skip that reading entirely (02:30 does not exist on the transition
// night); time.Date then normalizes to a nearby reading on either side of
// the gap. The reset effectively occurs when the clocks jump, so the
// candidate becomes the transition instant itself: the first moment at or
// after the missing wall-clock time.
func resetCandidate(year int, month time.Month, day, hour, minute int, loc *time.Location) time.Time {
	candidate := time.Date(year, month, day, hour, minute, 0, 0, loc)
	if candidate.Hour() == hour && candidate.Minute() == minute {
		return candidate
	}

	// The normalized candidate sits in the zone on one side of the gap;
	// the transition is whichever zone bound the offset jumps forward at.
	start, end := candidate.ZoneBounds()
	_, offset := candidate.Zone()
	if !end.IsZero() {
		if _, offsetAfter := end.Zone(); offsetAfter > offset {
			return end
		}
	}
	if !start.IsZero() {
		return start
	}
	return candidate
}
